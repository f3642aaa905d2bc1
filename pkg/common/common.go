package common

import (
	"time"
)

// Properties is an open-schema property bag attached to entities and
// relationships. Values must be JSON-serializable; use SanitizeProperties
// before persisting values that came from an extraction model.
type Properties map[string]any

// Entity represents a node in the graph. An entity can be a person,
// organization, location, or any other typed concept surfaced from a
// document. The Type doubles as the partition key for storage backends
// that require one.
//
// Metadata carries ingestion bookkeeping:
//   - mention_count: how many chunk-level mentions were folded into this entity
//   - source_chunks: indices of the chunks the entity was seen in
//   - source_document_id: the document the entity was extracted from
type Entity struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Label      string     `json:"label"`
	Properties Properties `json:"properties,omitempty"`
	Metadata   Properties `json:"metadata,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Relationship represents a directional edge between two entities.
// Confidence is a score in [0,1]; manually created relationships default
// to 1.0. Source is a provenance tag ("llm-extraction" or "manual").
type Relationship struct {
	ID         string     `json:"id"`
	FromID     string     `json:"from_id"`
	ToID       string     `json:"to_id"`
	Type       string     `json:"type"`
	Properties Properties `json:"properties,omitempty"`
	Confidence float64    `json:"confidence"`
	Source     string     `json:"source,omitempty"`
	DocumentID string     `json:"document_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Document records a processed input file and the counts of graph records
// that were produced from it. Counts are recomputed at the end of each
// ingestion run.
type Document struct {
	ID                string    `json:"id"`
	Filename          string    `json:"filename"`
	UploadedAt        time.Time `json:"uploaded_at"`
	EntityCount       int       `json:"entity_count"`
	RelationshipCount int       `json:"relationship_count"`
}

// Subgraph is a self-contained slice of the graph, used for neighborhood
// queries and id-set lookups. Relationships only reference entities that
// are present in Entities.
type Subgraph struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Provenance tags for relationships.
const (
	SourceExtraction = "llm-extraction"
	SourceManual     = "manual"
)

// Metadata keys written by the ingestion pipeline.
const (
	MetaMentionCount     = "mention_count"
	MetaSourceChunks     = "source_chunks"
	MetaSourceDocumentID = "source_document_id"
	MetaSources          = "sources"
)
