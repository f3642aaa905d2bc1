package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetRelationshipsHandler lists relationships, optionally scoped to one
// document via the document_id query parameter.
func GetRelationshipsHandler(c echo.Context) error {
	relationships, err := app(c).Storage.GetAllRelationships(c.Request().Context(), c.QueryParam("document_id"))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"relationships": relationships,
		"count":         len(relationships),
	})
}
