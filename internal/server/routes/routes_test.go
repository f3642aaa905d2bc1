package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/graphloom/graphloom/internal/config"
	"github.com/graphloom/graphloom/internal/server/middleware"
	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/extract"
	"github.com/graphloom/graphloom/pkg/graph"
	"github.com/graphloom/graphloom/pkg/store"
)

// fakeStorage is an in-memory GraphStorage used to exercise the handlers
// without a database.
type fakeStorage struct {
	mu            sync.Mutex
	entities      map[string]common.Entity
	relationships map[string]common.Relationship
	documents     map[string]common.Document
	unsupported   bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		entities:      make(map[string]common.Entity),
		relationships: make(map[string]common.Relationship),
		documents:     make(map[string]common.Document),
	}
}

func (s *fakeStorage) CreateEntity(_ context.Context, entity common.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity.ID] = entity
	return nil
}

func (s *fakeStorage) UpdateEntity(_ context.Context, entity common.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[entity.ID]; !ok {
		return store.NotFound("entity", entity.ID)
	}
	s.entities[entity.ID] = entity
	return nil
}

func (s *fakeStorage) DeleteEntity(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[id]; !ok {
		return store.NotFound("entity", id)
	}
	delete(s.entities, id)
	return nil
}

func (s *fakeStorage) GetEntity(_ context.Context, id string) (*common.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.entities[id]
	if !ok {
		return nil, store.NotFound("entity", id)
	}
	return &entity, nil
}

func (s *fakeStorage) GetAllEntities(_ context.Context) ([]common.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStorage) SearchEntities(_ context.Context, query string, limit int) ([]common.Entity, error) {
	if s.unsupported {
		return nil, store.Unsupported("fake", "SearchEntities")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Entity, 0)
	for _, e := range s.entities {
		if strings.Contains(strings.ToLower(e.Label), strings.ToLower(query)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStorage) GetEntitiesByDocument(_ context.Context, documentID string) ([]common.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Entity, 0)
	for _, e := range s.entities {
		if e.Metadata[common.MetaSourceDocumentID] == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStorage) CreateRelationship(_ context.Context, rel common.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationships[rel.ID] = rel
	return nil
}

func (s *fakeStorage) UpdateRelationship(_ context.Context, rel common.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.relationships[rel.ID]; !ok {
		return store.NotFound("relationship", rel.ID)
	}
	s.relationships[rel.ID] = rel
	return nil
}

func (s *fakeStorage) DeleteRelationship(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.relationships[id]; !ok {
		return store.NotFound("relationship", id)
	}
	delete(s.relationships, id)
	return nil
}

func (s *fakeStorage) GetRelationship(_ context.Context, id string) (*common.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.relationships[id]
	if !ok {
		return nil, store.NotFound("relationship", id)
	}
	return &rel, nil
}

func (s *fakeStorage) GetAllRelationships(_ context.Context, documentID string) ([]common.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Relationship, 0)
	for _, r := range s.relationships {
		if documentID == "" || r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStorage) GetNeighbors(_ context.Context, entityID string, depth int) (*common.Subgraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, ok := s.entities[entityID]
	if !ok {
		return nil, store.NotFound("entity", entityID)
	}
	sub := &common.Subgraph{Entities: []common.Entity{start}, Relationships: []common.Relationship{}}
	for _, r := range s.relationships {
		if r.FromID == entityID || r.ToID == entityID {
			sub.Relationships = append(sub.Relationships, r)
		}
	}
	return sub, nil
}

func (s *fakeStorage) GetSubgraph(_ context.Context, entityIDs []string) (*common.Subgraph, error) {
	return &common.Subgraph{}, nil
}

func (s *fakeStorage) CreateDocument(_ context.Context, doc common.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

func (s *fakeStorage) UpdateDocument(_ context.Context, doc common.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc
	return nil
}

func (s *fakeStorage) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return store.NotFound("document", id)
	}
	delete(s.documents, id)
	return nil
}

func (s *fakeStorage) GetAllDocuments(_ context.Context) ([]common.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]common.Document, 0, len(s.documents))
	for _, d := range s.documents {
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStorage) ClearAll(_ context.Context) (*store.ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := &store.ClearResult{
		Entities:      len(s.entities),
		Relationships: len(s.relationships),
		Documents:     len(s.documents),
	}
	s.entities = make(map[string]common.Entity)
	s.relationships = make(map[string]common.Relationship)
	s.documents = make(map[string]common.Document)
	return result, nil
}

func (s *fakeStorage) Close() error { return nil }

var _ store.GraphStorage = (*fakeStorage)(nil)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i any) error {
	return v.validator.Struct(i)
}

func newTestApp(t *testing.T, storage *fakeStorage) (*echo.Echo, *middleware.App) {
	t.Helper()

	extractor := extract.ExtractorFunc(func(_ context.Context, chunkText string) (*extract.Result, error) {
		result := &extract.Result{}
		if strings.Contains(chunkText, "Alice") {
			result.Entities = append(result.Entities, extract.CandidateEntity{
				Mention: "alice", Label: "Alice", Type: "Person",
			})
		}
		if strings.Contains(chunkText, "Acme") {
			result.Entities = append(result.Entities, extract.CandidateEntity{
				Mention: "acme", Label: "Acme", Type: "Company",
			})
			result.Relationships = append(result.Relationships, extract.CandidateRelationship{
				From: "alice", To: "acme", Type: "WORKS_FOR", Confidence: 0.9,
			})
		}
		return result, nil
	})

	pipeline, err := graph.NewPipeline(extractor, storage, graph.Options{MaxChunkSize: 2400, OverlapSize: 200})
	if err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	app := &middleware.App{
		Storage:  storage,
		Pipeline: pipeline,
		Config:   &config.Config{GraphBackend: config.BackendPostgres},
	}
	return e, app
}

func doRequest(e *echo.Echo, app *middleware.App, req *http.Request, handler echo.HandlerFunc, pathParams ...string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(pathParams) == 2 {
		c.SetParamNames(pathParams[0])
		c.SetParamValues(pathParams[1])
	}
	cc := &middleware.AppContext{Context: c, App: app}
	if err := handler(cc); err != nil {
		e.HTTPErrorHandler(err, cc)
	}
	return rec
}

func TestProcessTextInput(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	form := strings.NewReader("text=Alice works for Acme.")
	req := httptest.NewRequest(http.MethodPost, "/api/process", form)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := doRequest(e, app, req, ProcessDocumentHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool            `json:"success"`
		Document common.Document `json:"document"`
		Entities []common.Entity `json:"entities"`
		Stats    graph.RunStats  `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if len(resp.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(resp.Entities))
	}
	if resp.Stats.RelationshipCount != 1 {
		t.Fatalf("expected 1 relationship, got %d", resp.Stats.RelationshipCount)
	}
	if len(storage.entities) != 2 {
		t.Fatalf("expected entities to be persisted, got %d", len(storage.entities))
	}
}

func TestProcessMissingInput(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := doRequest(e, app, req, ProcessDocumentHandler)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateEntity(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	body := `{"type":"Person","label":"Alice","properties":{"role":"claimant"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/entities", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, CreateEntityHandler)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entity common.Entity
	if err := json.Unmarshal(rec.Body.Bytes(), &entity); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if entity.ID == "" || entity.Label != "Alice" {
		t.Fatalf("unexpected entity: %+v", entity)
	}
	if _, ok := storage.entities[entity.ID]; !ok {
		t.Fatal("entity was not persisted")
	}
}

func TestCreateEntityMissingFields(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/entities", strings.NewReader(`{"type":"Person"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, CreateEntityHandler)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEditEntity(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	storage.entities["e1"] = common.Entity{ID: "e1", Type: "Person", Label: "Alice", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	req := httptest.NewRequest(http.MethodPatch, "/api/entities/e1", strings.NewReader(`{"label":"Alice Smith"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, EditEntityHandler, "id", "e1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if storage.entities["e1"].Label != "Alice Smith" {
		t.Fatalf("expected label update, got %q", storage.entities["e1"].Label)
	}
	if storage.entities["e1"].Type != "Person" {
		t.Fatalf("expected type to be unchanged, got %q", storage.entities["e1"].Type)
	}
}

func TestEditEntityNotFound(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPatch, "/api/entities/ghost", strings.NewReader(`{"label":"X"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, EditEntityHandler, "id", "ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteEntityNotFound(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodDelete, "/api/entities/ghost", nil)
	rec := doRequest(e, app, req, DeleteEntityHandler, "id", "ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateRelationshipDefaults(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	body := `{"from_id":"a","to_id":"b","type":"KNOWS"}`
	req := httptest.NewRequest(http.MethodPost, "/api/relationships", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, CreateRelationshipHandler)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var rel common.Relationship
	if err := json.Unmarshal(rec.Body.Bytes(), &rel); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rel.Confidence != 1.0 {
		t.Fatalf("expected default confidence 1.0, got %v", rel.Confidence)
	}
	if rel.Source != common.SourceManual {
		t.Fatalf("expected manual source, got %q", rel.Source)
	}
}

func TestSearchGraph(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	storage.entities["e1"] = common.Entity{ID: "e1", Type: "Person", Label: "Alice Smith"}
	storage.entities["e2"] = common.Entity{ID: "e2", Type: "Person", Label: "Bob"}

	req := httptest.NewRequest(http.MethodPost, "/api/graph/search", strings.NewReader(`{"query":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, SearchGraphHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Results []common.Entity `json:"results"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].ID != "e1" {
		t.Fatalf("unexpected search results: %+v", resp)
	}
}

func TestSearchUnsupportedBackend(t *testing.T) {
	storage := newFakeStorage()
	storage.unsupported = true
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/graph/search", strings.NewReader(`{"query":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, SearchGraphHandler)
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestGetNeighborsUnknownNode(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/graph/neighbors", strings.NewReader(`{"node_id":"ghost"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, GetNeighborsHandler)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type fakeSummarizer struct {
	summary string
	err     error
	prompt  string
}

func (s *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.summary, s.err
}

func analyzeFixture(storage *fakeStorage) {
	storage.entities["e1"] = common.Entity{ID: "e1", Type: "Event", Label: "Claim Intake"}
	storage.entities["e2"] = common.Entity{ID: "e2", Type: "Person", Label: "Alice"}
	storage.entities["e3"] = common.Entity{ID: "e3", Type: "Event", Label: "Assessment"}
	storage.relationships["r1"] = common.Relationship{ID: "r1", FromID: "e2", ToID: "e1", Type: "FILED"}
	storage.relationships["r2"] = common.Relationship{ID: "r2", FromID: "e1", ToID: "e3", Type: "TRIGGERS"}
}

func TestAnalyzeNodeStructuralFallback(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)
	analyzeFixture(storage)

	req := httptest.NewRequest(http.MethodPost, "/api/graph/analyze", strings.NewReader(`{"node_id":"e1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, AnalyzeNodeHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Summary, "Claim Intake is a key node in the graph.") {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}
	if !strings.Contains(resp.Summary, "1 upstream") || !strings.Contains(resp.Summary, "1 downstream") {
		t.Fatalf("expected degree counts in summary: %q", resp.Summary)
	}
}

func TestAnalyzeNodeUsesSummarizer(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)
	analyzeFixture(storage)

	summarizer := &fakeSummarizer{summary: "Claim Intake starts the claims process."}
	app.Summarizer = summarizer

	req := httptest.NewRequest(http.MethodPost, "/api/graph/analyze", strings.NewReader(`{"node_id":"e1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, AnalyzeNodeHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Summary != summarizer.summary {
		t.Fatalf("expected model summary, got %q", resp.Summary)
	}
	if !strings.Contains(summarizer.prompt, "Claim Intake") {
		t.Fatalf("expected the prompt to name the node, got %q", summarizer.prompt)
	}
	if !strings.Contains(summarizer.prompt, "FILED") || !strings.Contains(summarizer.prompt, "TRIGGERS") {
		t.Fatalf("expected the prompt to list 1-hop links, got %q", summarizer.prompt)
	}
}

func TestAnalyzeNodeSummarizerFailureFallsBack(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)
	analyzeFixture(storage)
	app.Summarizer = &fakeSummarizer{err: errors.New("model down")}

	req := httptest.NewRequest(http.MethodPost, "/api/graph/analyze", strings.NewReader(`{"node_id":"e1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, AnalyzeNodeHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Summary, "Claim Intake is a key node in the graph.") {
		t.Fatalf("expected structural fallback, got %q", resp.Summary)
	}
}

func TestAnalyzeNodeUnknown(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/graph/analyze", strings.NewReader(`{"node_id":"ghost"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, AnalyzeNodeHandler)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAnalyzeNodeMissingID(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	req := httptest.NewRequest(http.MethodPost, "/api/graph/analyze", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := doRequest(e, app, req, AnalyzeNodeHandler)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClearGraph(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	storage.entities["e1"] = common.Entity{ID: "e1", Type: "Person", Label: "Alice"}
	storage.relationships["r1"] = common.Relationship{ID: "r1", FromID: "e1", ToID: "e1", Type: "X"}

	req := httptest.NewRequest(http.MethodPost, "/api/clear", nil)
	rec := doRequest(e, app, req, ClearGraphHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status  string            `json:"status"`
		Cleared store.ClearResult `json:"cleared"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "cleared" || resp.Cleared.Entities != 1 || resp.Cleared.Relationships != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(storage.entities) != 0 {
		t.Fatal("expected storage to be empty")
	}
}

func TestGetStats(t *testing.T) {
	storage := newFakeStorage()
	e, app := newTestApp(t, storage)

	storage.entities["e1"] = common.Entity{ID: "e1", Type: "Person", Label: "Alice"}
	storage.entities["e2"] = common.Entity{ID: "e2", Type: "Person", Label: "Bob"}
	storage.entities["e3"] = common.Entity{ID: "e3", Type: "Organization", Label: "Acme"}
	storage.relationships["r1"] = common.Relationship{ID: "r1", FromID: "e1", ToID: "e3", Type: "WORKS_FOR"}

	req := httptest.NewRequest(http.MethodGet, "/api/graph/stats", nil)
	rec := doRequest(e, app, req, GetStatsHandler)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		EntityCount       int            `json:"entity_count"`
		RelationshipCount int            `json:"relationship_count"`
		EntityTypes       map[string]int `json:"entity_types"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EntityCount != 3 || resp.RelationshipCount != 1 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if resp.EntityTypes["Person"] != 2 || resp.EntityTypes["Organization"] != 1 {
		t.Fatalf("unexpected type counts: %+v", resp.EntityTypes)
	}
}
