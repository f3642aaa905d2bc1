package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
)

// SearchGraphHandler finds entities by substring match on label or type.
func SearchGraphHandler(c echo.Context) error {
	type searchBody struct {
		Query string `json:"query" validate:"required"`
		Limit int    `json:"limit"`
	}

	data := new(searchBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := c.Validate(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: query is required", common.ErrValidation))
	}

	results, err := app(c).Storage.SearchEntities(c.Request().Context(), data.Query, data.Limit)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results": results,
		"count":   len(results),
	})
}
