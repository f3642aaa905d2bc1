package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/internal/server/middleware"
	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"
)

func app(c echo.Context) *middleware.App {
	return c.(*middleware.AppContext).App
}

// jsonError maps the shared error taxonomy onto HTTP status codes:
// unsupported driver capability 501, validation 400, missing record 404,
// transient backend failure 503, anything else 500.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUnsupported):
		status = http.StatusNotImplemented
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrTransient):
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{
		"message": err.Error(),
	})
}
