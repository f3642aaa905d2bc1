package routes

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/graph"
	"github.com/graphloom/graphloom/pkg/loader"
)

// ProcessDocumentHandler ingests one document into the graph. The request
// carries either a multipart `file` or a form `text` field, never both.
func ProcessDocumentHandler(c echo.Context) error {
	type processResponse struct {
		Success       bool                  `json:"success"`
		Document      common.Document       `json:"document"`
		Entities      []common.Entity       `json:"entities"`
		Relationships []common.Relationship `json:"relationships"`
		Failures      []graph.ChunkFailure  `json:"failures,omitempty"`
		Stats         graph.RunStats        `json:"stats"`
	}

	fileHeader, fileErr := c.FormFile("file")
	rawText := c.FormValue("text")

	hasFile := fileErr == nil && fileHeader != nil
	hasText := rawText != ""
	if hasFile == hasText {
		return jsonError(c, fmt.Errorf("%w: provide either a file or a text field", common.ErrValidation))
	}

	filename := "text-input.txt"
	text := rawText
	if hasFile {
		filename = fileHeader.Filename

		src, err := fileHeader.Open()
		if err != nil {
			return jsonError(c, fmt.Errorf("failed to open upload: %w", err))
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return jsonError(c, fmt.Errorf("failed to read upload: %w", err))
		}

		text, err = loader.Parse(filename, data)
		if err != nil {
			return jsonError(c, err)
		}
	}

	result, err := app(c).Pipeline.Process(c.Request().Context(), filename, text)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, processResponse{
		Success:       true,
		Document:      result.Document,
		Entities:      result.Entities,
		Relationships: result.Relationships,
		Failures:      result.Failures,
		Stats:         result.Stats,
	})
}
