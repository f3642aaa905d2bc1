package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteRelationshipHandler removes one relationship.
func DeleteRelationshipHandler(c echo.Context) error {
	id := c.Param("id")

	if err := app(c).Storage.DeleteRelationship(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "relationship deleted",
		"id":      id,
	})
}
