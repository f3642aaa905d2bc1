package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/internal/config"
	"github.com/graphloom/graphloom/pkg/extract"
	"github.com/graphloom/graphloom/pkg/graph"
	"github.com/graphloom/graphloom/pkg/store"
)

// App bundles the shared dependencies every handler needs: the active
// storage driver, the ingestion pipeline, and the loaded configuration.
// Summarizer is nil when the extraction adapter cannot run free-text chat;
// handlers that use it must degrade without it.
type App struct {
	Storage    store.GraphStorage
	Pipeline   *graph.Pipeline
	Summarizer extract.Summarizer
	Config     *config.Config
}

// AppContext wraps the echo context with the shared application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the shared App to every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
