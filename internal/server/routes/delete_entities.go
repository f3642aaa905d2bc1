package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DeleteEntityHandler removes one entity and, on the full driver, its
// attached relationships.
func DeleteEntityHandler(c echo.Context) error {
	id := c.Param("id")

	if err := app(c).Storage.DeleteEntity(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "entity deleted",
		"id":      id,
	})
}
