package store

import (
	"context"

	"github.com/graphloom/graphloom/pkg/common"
)

// ClearResult reports how many records a ClearAll call removed.
type ClearResult struct {
	Entities      int `json:"entities"`
	Relationships int `json:"relationships"`
	Documents     int `json:"documents"`
}

// GraphStorage defines the interface for persisting and querying the
// knowledge graph. Both drivers implement it; the capability-limited one
// answers unsupported operations with ErrUnsupported instead of degrading
// silently.
//
// Lookups signal absence with ErrNotFound; transient backend problems are
// wrapped in ErrTransient so callers can retry.
type GraphStorage interface {
	CreateEntity(ctx context.Context, entity common.Entity) error
	UpdateEntity(ctx context.Context, entity common.Entity) error
	DeleteEntity(ctx context.Context, id string) error
	GetEntity(ctx context.Context, id string) (*common.Entity, error)
	GetAllEntities(ctx context.Context) ([]common.Entity, error)
	SearchEntities(ctx context.Context, query string, limit int) ([]common.Entity, error)
	GetEntitiesByDocument(ctx context.Context, documentID string) ([]common.Entity, error)

	CreateRelationship(ctx context.Context, rel common.Relationship) error
	UpdateRelationship(ctx context.Context, rel common.Relationship) error
	DeleteRelationship(ctx context.Context, id string) error
	GetRelationship(ctx context.Context, id string) (*common.Relationship, error)
	// GetAllRelationships returns every relationship, or only those scoped
	// to documentID when it is non-empty.
	GetAllRelationships(ctx context.Context, documentID string) ([]common.Relationship, error)

	GetNeighbors(ctx context.Context, entityID string, depth int) (*common.Subgraph, error)
	GetSubgraph(ctx context.Context, entityIDs []string) (*common.Subgraph, error)

	CreateDocument(ctx context.Context, doc common.Document) error
	UpdateDocument(ctx context.Context, doc common.Document) error
	DeleteDocument(ctx context.Context, id string) error
	GetAllDocuments(ctx context.Context) ([]common.Document, error)

	ClearAll(ctx context.Context) (*ClearResult, error)
	Close() error
}
