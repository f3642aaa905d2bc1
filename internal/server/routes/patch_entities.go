package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
)

// EditEntityHandler applies a partial update to an entity. Only fields
// present in the body change.
func EditEntityHandler(c echo.Context) error {
	type editEntityBody struct {
		Type       *string           `json:"type"`
		Label      *string           `json:"label"`
		Properties common.Properties `json:"properties"`
	}

	id := c.Param("id")

	data := new(editEntityBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	ctx := c.Request().Context()
	storage := app(c).Storage

	entity, err := storage.GetEntity(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}

	if data.Type != nil {
		entity.Type = *data.Type
	}
	if data.Label != nil {
		entity.Label = *data.Label
	}
	if data.Properties != nil {
		entity.Properties = common.SanitizeProperties(data.Properties)
	}

	if err := storage.UpdateEntity(ctx, *entity); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, entity)
}
