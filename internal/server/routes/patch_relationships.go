package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
)

// EditRelationshipHandler applies a partial update to a relationship.
func EditRelationshipHandler(c echo.Context) error {
	type editRelationshipBody struct {
		Type       *string           `json:"type"`
		Properties common.Properties `json:"properties"`
		Confidence *float64          `json:"confidence"`
	}

	id := c.Param("id")

	data := new(editRelationshipBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}

	ctx := c.Request().Context()
	storage := app(c).Storage

	rel, err := storage.GetRelationship(ctx, id)
	if err != nil {
		return jsonError(c, err)
	}

	if data.Type != nil {
		rel.Type = *data.Type
	}
	if data.Properties != nil {
		rel.Properties = common.SanitizeProperties(data.Properties)
	}
	if data.Confidence != nil {
		rel.Confidence = *data.Confidence
	}

	if err := storage.UpdateRelationship(ctx, *rel); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, rel)
}
