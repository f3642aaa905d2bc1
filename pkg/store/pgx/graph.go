package pgx

import (
	"context"
	"fmt"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"
)

// GetNeighbors returns the subgraph reachable from entityID within the
// given number of hops, following relationships in both directions. The
// start entity is included.
func (s *GraphDBStorage) GetNeighbors(ctx context.Context, entityID string, depth int) (*common.Subgraph, error) {
	if depth <= 0 {
		depth = 1
	}

	start, err := s.GetEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{entityID: true}
	entities := []common.Entity{*start}
	relationships := make([]common.Relationship, 0)
	seenRels := map[string]bool{}

	frontier := []string{entityID}
	for round := 0; round < depth && len(frontier) > 0; round++ {
		rows, err := s.pool.Query(ctx, fmt.Sprintf(`
			SELECT %s FROM kg_relationships
			WHERE from_id = ANY($1) OR to_id = ANY($1)`, relationshipColumns),
			frontier,
		)
		if err != nil {
			return nil, wrapError("get neighbors", err)
		}
		edges, err := collectRelationships(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}

		next := make([]string, 0)
		for _, edge := range edges {
			if !seenRels[edge.ID] {
				seenRels[edge.ID] = true
				relationships = append(relationships, edge)
			}
			for _, id := range []string{edge.FromID, edge.ToID} {
				if !visited[id] {
					visited[id] = true
					next = append(next, id)
				}
			}
		}

		if len(next) > 0 {
			found, err := s.getEntitiesByIDs(ctx, next)
			if err != nil {
				return nil, err
			}
			entities = append(entities, found...)
		}
		frontier = next
	}

	return &common.Subgraph{Entities: entities, Relationships: relationships}, nil
}

// GetSubgraph returns the given entities plus every relationship whose
// both endpoints are in the set. Unknown ids are ignored.
func (s *GraphDBStorage) GetSubgraph(ctx context.Context, entityIDs []string) (*common.Subgraph, error) {
	if len(entityIDs) == 0 {
		return &common.Subgraph{
			Entities:      []common.Entity{},
			Relationships: []common.Relationship{},
		}, nil
	}

	entities, err := s.getEntitiesByIDs(ctx, entityIDs)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM kg_relationships
		WHERE from_id = ANY($1) AND to_id = ANY($1)`, relationshipColumns),
		entityIDs,
	)
	if err != nil {
		return nil, wrapError("get subgraph", err)
	}
	defer rows.Close()
	relationships, err := collectRelationships(rows)
	if err != nil {
		return nil, err
	}

	return &common.Subgraph{Entities: entities, Relationships: relationships}, nil
}

func (s *GraphDBStorage) getEntitiesByIDs(ctx context.Context, ids []string) ([]common.Entity, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM kg_entities WHERE id = ANY($1)`, entityColumns), ids)
	if err != nil {
		return nil, wrapError("get entities by ids", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

var _ store.GraphStorage = (*GraphDBStorage)(nil)
