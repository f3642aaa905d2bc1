package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"
)

func newTestStorage(t *testing.T) *GraphKVStorage {
	t.Helper()

	s, err := NewGraphKVStorage("")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEntity(id, entityType, label string) common.Entity {
	now := time.Now().UTC()
	return common.Entity{
		ID:        id,
		Type:      entityType,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestEntityRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	entity := testEntity("ent-1", "Person", "Alice Smith")
	entity.Properties = common.Properties{"role": "claimant"}

	if err := s.CreateEntity(ctx, entity); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.GetEntity(ctx, "ent-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Label != "Alice Smith" || got.Type != "Person" {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if got.Properties["role"] != "claimant" {
		t.Fatalf("unexpected properties: %v", got.Properties)
	}

	if _, err := s.GetEntity(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateEntityDuplicate(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	entity := testEntity("ent-1", "Person", "Alice")
	if err := s.CreateEntity(ctx, entity); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.CreateEntity(ctx, entity); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error for duplicate id, got %v", err)
	}
}

func TestRelationshipRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, e := range []common.Entity{
		testEntity("a", "Person", "Alice"),
		testEntity("b", "Organization", "Acme"),
	} {
		if err := s.CreateEntity(ctx, e); err != nil {
			t.Fatalf("create entity failed: %v", err)
		}
	}

	rel := common.Relationship{
		ID:         "rel-1",
		FromID:     "a",
		ToID:       "b",
		Type:       "WORKS_FOR",
		Confidence: 0.8,
		Source:     common.SourceExtraction,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.CreateRelationship(ctx, rel); err != nil {
		t.Fatalf("create relationship failed: %v", err)
	}

	got, err := s.GetRelationship(ctx, "rel-1")
	if err != nil {
		t.Fatalf("get relationship failed: %v", err)
	}
	if got.FromID != "a" || got.ToID != "b" || got.Confidence != 0.8 {
		t.Fatalf("unexpected relationship: %+v", got)
	}

	if err := s.CreateRelationship(ctx, rel); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error for duplicate id, got %v", err)
	}
}

func TestCreateRelationshipDanglingEndpoint(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.CreateEntity(ctx, testEntity("a", "Person", "Alice")); err != nil {
		t.Fatalf("create entity failed: %v", err)
	}

	rel := common.Relationship{
		ID:         "rel-1",
		FromID:     "a",
		ToID:       "ghost",
		Type:       "KNOWS",
		Confidence: 1,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.CreateRelationship(ctx, rel); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected validation error for dangling endpoint, got %v", err)
	}
}

func TestClearAll(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, e := range []common.Entity{
		testEntity("a", "Person", "Alice"),
		testEntity("b", "Person", "Bob"),
		testEntity("c", "Organization", "Acme"),
	} {
		if err := s.CreateEntity(ctx, e); err != nil {
			t.Fatalf("create entity failed: %v", err)
		}
	}
	rel := common.Relationship{ID: "r1", FromID: "a", ToID: "b", Type: "KNOWS", Confidence: 1, CreatedAt: time.Now().UTC()}
	if err := s.CreateRelationship(ctx, rel); err != nil {
		t.Fatalf("create relationship failed: %v", err)
	}

	result, err := s.ClearAll(ctx)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if result.Entities != 3 || result.Relationships != 1 {
		t.Fatalf("unexpected clear counts: %+v", result)
	}
	if result.Documents != 0 {
		t.Fatalf("limited driver tracks no documents, got %d", result.Documents)
	}

	if _, err := s.GetEntity(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected entities to be gone, got %v", err)
	}
	if _, err := s.GetRelationship(ctx, "r1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected relationships to be gone, got %v", err)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	entity := testEntity("a", "Person", "Alice")
	rel := common.Relationship{ID: "r", FromID: "a", ToID: "a", Type: "X", Confidence: 1}

	cases := []struct {
		name string
		call func() error
	}{
		{"UpdateEntity", func() error { return s.UpdateEntity(ctx, entity) }},
		{"DeleteEntity", func() error { return s.DeleteEntity(ctx, "a") }},
		{"GetAllEntities", func() error { _, err := s.GetAllEntities(ctx); return err }},
		{"SearchEntities", func() error { _, err := s.SearchEntities(ctx, "q", 10); return err }},
		{"GetEntitiesByDocument", func() error { _, err := s.GetEntitiesByDocument(ctx, "d"); return err }},
		{"UpdateRelationship", func() error { return s.UpdateRelationship(ctx, rel) }},
		{"DeleteRelationship", func() error { return s.DeleteRelationship(ctx, "r") }},
		{"GetAllRelationships", func() error { _, err := s.GetAllRelationships(ctx, ""); return err }},
		{"GetNeighbors", func() error { _, err := s.GetNeighbors(ctx, "a", 1); return err }},
		{"GetSubgraph", func() error { _, err := s.GetSubgraph(ctx, []string{"a"}); return err }},
		{"CreateDocument", func() error { return s.CreateDocument(ctx, common.Document{ID: "d"}) }},
		{"UpdateDocument", func() error { return s.UpdateDocument(ctx, common.Document{ID: "d"}) }},
		{"DeleteDocument", func() error { return s.DeleteDocument(ctx, "d") }},
		{"GetAllDocuments", func() error { _, err := s.GetAllDocuments(ctx); return err }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.call(); !errors.Is(err, store.ErrUnsupported) {
				t.Fatalf("expected unsupported error, got %v", err)
			}
		})
	}
}
