package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetStatsHandler reports totals and per-type counts for the whole graph.
func GetStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	storage := app(c).Storage

	entities, err := storage.GetAllEntities(ctx)
	if err != nil {
		return jsonError(c, err)
	}
	relationships, err := storage.GetAllRelationships(ctx, "")
	if err != nil {
		return jsonError(c, err)
	}
	documents, err := storage.GetAllDocuments(ctx)
	if err != nil {
		return jsonError(c, err)
	}

	entityTypes := make(map[string]int)
	for _, entity := range entities {
		entityTypes[entity.Type]++
	}
	relationshipTypes := make(map[string]int)
	for _, rel := range relationships {
		relationshipTypes[rel.Type]++
	}

	return c.JSON(http.StatusOK, echo.Map{
		"entity_count":       len(entities),
		"relationship_count": len(relationships),
		"document_count":     len(documents),
		"entity_types":       entityTypes,
		"relationship_types": relationshipTypes,
	})
}
