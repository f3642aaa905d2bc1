package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetGraphHandler returns the full graph in one response.
func GetGraphHandler(c echo.Context) error {
	ctx := c.Request().Context()
	storage := app(c).Storage

	entities, err := storage.GetAllEntities(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	relationships, err := storage.GetAllRelationships(ctx, "")
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entities":      entities,
		"relationships": relationships,
	})
}
