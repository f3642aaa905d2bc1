package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/internal/server/middleware"
	"github.com/graphloom/graphloom/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"backend": c.(*middleware.AppContext).App.Config.GraphBackend,
		})
	})

	apiRoutes := e.Group("/api")

	// Ingestion
	apiRoutes.POST("/process", routes.ProcessDocumentHandler)

	// Entity routes
	apiRoutes.GET("/entities", routes.GetEntitiesHandler)
	apiRoutes.POST("/entities", routes.CreateEntityHandler)
	apiRoutes.PATCH("/entities/:id", routes.EditEntityHandler)
	apiRoutes.DELETE("/entities/:id", routes.DeleteEntityHandler)

	// Relationship routes
	apiRoutes.GET("/relationships", routes.GetRelationshipsHandler)
	apiRoutes.POST("/relationships", routes.CreateRelationshipHandler)
	apiRoutes.PATCH("/relationships/:id", routes.EditRelationshipHandler)
	apiRoutes.DELETE("/relationships/:id", routes.DeleteRelationshipHandler)

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.POST("/graph/neighbors", routes.GetNeighborsHandler)
	apiRoutes.POST("/graph/search", routes.SearchGraphHandler)
	apiRoutes.POST("/graph/analyze", routes.AnalyzeNodeHandler)
	apiRoutes.GET("/graph/stats", routes.GetStatsHandler)

	// Document routes
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.DELETE("/documents/:id", routes.DeleteDocumentHandler)

	apiRoutes.POST("/clear", routes.ClearGraphHandler)
}
