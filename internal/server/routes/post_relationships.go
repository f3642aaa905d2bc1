package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/graphloom/graphloom/pkg/common"
)

// CreateRelationshipHandler creates one relationship from a JSON body.
// Confidence defaults to 1.0 and the source is recorded as manual.
func CreateRelationshipHandler(c echo.Context) error {
	type createRelationshipBody struct {
		FromID     string            `json:"from_id" validate:"required"`
		ToID       string            `json:"to_id" validate:"required"`
		Type       string            `json:"type" validate:"required"`
		Properties common.Properties `json:"properties"`
		Confidence *float64          `json:"confidence"`
		DocumentID string            `json:"document_id"`
	}

	data := new(createRelationshipBody)
	if err := c.Bind(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
	}
	if err := c.Validate(data); err != nil {
		return jsonError(c, fmt.Errorf("%w: from_id, to_id and type are required", common.ErrValidation))
	}

	confidence := 1.0
	if data.Confidence != nil {
		confidence = *data.Confidence
	}

	id, err := gonanoid.New()
	if err != nil {
		return jsonError(c, fmt.Errorf("failed to generate relationship ID: %w", err))
	}

	rel := common.Relationship{
		ID:         id,
		FromID:     data.FromID,
		ToID:       data.ToID,
		Type:       data.Type,
		Properties: common.SanitizeProperties(data.Properties),
		Confidence: confidence,
		Source:     common.SourceManual,
		DocumentID: data.DocumentID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := app(c).Storage.CreateRelationship(c.Request().Context(), rel); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, rel)
}
