package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/graphloom/graphloom/pkg/common"
)

// CreateEntityHandler creates one entity from a JSON body.
func CreateEntityHandler(c echo.Context) error {
	type createEntityBody struct {
		Type       string            `json:"type" validate:"required"`
		Label      string            `json:"label" validate:"required"`
		Properties common.Properties `json:"properties"`
	}

	data := new(createEntityBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := c.Validate(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: type and label are required", common.ErrValidation))
	}

	id, err := gonanoid.New()
	if err != nil {
		return jsonError(c, fmt.Errorf("failed to generate entity ID: %w", err))
	}

	now := time.Now().UTC()
	entity := common.Entity{
		ID:         id,
		Type:       data.Type,
		Label:      data.Label,
		Properties: common.SanitizeProperties(data.Properties),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := app(c).Storage.CreateEntity(c.Request().Context(), entity); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, entity)
}
