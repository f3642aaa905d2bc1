package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
)

// GetEntitiesHandler lists entities, optionally scoped to one document via
// the document_id query parameter.
func GetEntitiesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	storage := app(c).Storage

	var entities []common.Entity
	var err error
	if documentID := c.QueryParam("document_id"); documentID != "" {
		entities, err = storage.GetEntitiesByDocument(ctx, documentID)
	} else {
		entities, err = storage.GetAllEntities(ctx)
	}
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entities": entities,
		"count":    len(entities),
	})
}
