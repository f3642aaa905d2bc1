package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteDocumentHandler removes a document together with the entities and
// relationships extracted from it.
func DeleteDocumentHandler(c echo.Context) error {
	id := c.Param("id")

	if err := app(c).Storage.DeleteDocument(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "document deleted",
		"id":      id,
	})
}
