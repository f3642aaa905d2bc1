package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetDocumentsHandler lists the ingested documents.
func GetDocumentsHandler(c echo.Context) error {
	documents, err := app(c).Storage.GetAllDocuments(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"documents": documents,
		"count":     len(documents),
	})
}
