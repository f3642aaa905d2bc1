package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/logger"
)

// ClearGraphHandler wipes the entire graph and reports what was removed.
func ClearGraphHandler(c echo.Context) error {
	result, err := app(c).Storage.ClearAll(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	logger.Info("[API] Graph cleared",
		"entities", result.Entities,
		"relationships", result.Relationships,
		"documents", result.Documents,
	)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "cleared",
		"cleared": result,
	})
}
