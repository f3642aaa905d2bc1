package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/graphloom/graphloom/internal/util"
	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/extract"
	"github.com/graphloom/graphloom/pkg/logger"
	"github.com/graphloom/graphloom/pkg/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

// ChunkFailure records a chunk whose extraction failed. Failures are
// reported alongside the run result; they do not abort the run.
type ChunkFailure struct {
	ChunkIndex int    `json:"chunk_index"`
	Error      string `json:"error"`
}

// RunStats summarizes one ingestion run.
type RunStats struct {
	EntityCount          int `json:"entity_count"`
	RelationshipCount    int `json:"relationship_count"`
	ChunksTotal          int `json:"chunks_total"`
	ChunksFailed         int `json:"chunks_failed"`
	RelationshipsDropped int `json:"relationships_dropped"`
}

// RunResult is the full outcome of processing one document.
type RunResult struct {
	Document      common.Document       `json:"document"`
	Entities      []common.Entity       `json:"entities"`
	Relationships []common.Relationship `json:"relationships"`
	Failures      []ChunkFailure        `json:"failures,omitempty"`
	Stats         RunStats              `json:"stats"`
}

// Options configures an ingestion pipeline.
//
// MaxRetries is the number of additional extraction attempts per chunk
// (0 means a single attempt). PersistPartial controls whether results
// gathered before a context cancellation are still persisted.
type Options struct {
	MaxChunkSize   int
	OverlapSize    int
	MaxParallel    int
	MaxRetries     int
	PersistPartial bool
}

// Pipeline runs the full ingestion flow: split, extract in parallel,
// resolve entities, reconcile relationships, persist.
//
// A Pipeline should be created using NewPipeline.
type Pipeline struct {
	extractor extract.Extractor
	storage   store.GraphStorage
	opts      Options
}

// NewPipeline creates a pipeline over the given extractor and storage.
// Zero option values fall back to defaults (2400-char chunks, 200-char
// overlap, 4 parallel extractions).
func NewPipeline(extractor extract.Extractor, storage store.GraphStorage, opts Options) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("%w: extractor is required", common.ErrValidation)
	}
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is required", common.ErrValidation)
	}

	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = 2400
		if opts.OverlapSize == 0 {
			opts.OverlapSize = 200
		}
	}
	if opts.OverlapSize < 0 {
		opts.OverlapSize = 0
	}
	if opts.OverlapSize >= opts.MaxChunkSize {
		return nil, fmt.Errorf("%w: overlap size %d must be smaller than max chunk size %d", common.ErrValidation, opts.OverlapSize, opts.MaxChunkSize)
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 4
	}

	return &Pipeline{
		extractor: extractor,
		storage:   storage,
		opts:      opts,
	}, nil
}

// Process ingests one document: the text is chunked, each chunk goes
// through the extractor under a bounded worker pool, and the resolved
// graph is persisted. Per-chunk extraction failures are recorded and the
// run continues; an empty input is a validation error.
func (p *Pipeline) Process(ctx context.Context, filename, text string) (*RunResult, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document text is empty", common.ErrValidation)
	}

	chunks, err := SplitText(text, p.opts.MaxChunkSize, p.opts.OverlapSize)
	if err != nil {
		return nil, err
	}

	documentID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate document ID: %w", err)
	}

	logger.Info("[Pipeline] Processing document", "filename", filename, "chunks", len(chunks))

	results := make([]chunkResult, 0, len(chunks))
	failures := make([]ChunkFailure, 0)
	mergeMu := sync.Mutex{}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.MaxParallel)
	for _, chunk := range chunks {
		c := chunk
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
				res, err := util.RetryWithContext(gCtx, p.opts.MaxRetries+1, func(ctx context.Context) (*extract.Result, error) {
					return p.extractor.Extract(ctx, c.Text)
				})

				mergeMu.Lock()
				defer mergeMu.Unlock()
				if err != nil {
					logger.Warn("[Pipeline] Chunk extraction failed", "chunk", c.Index, "err", err)
					failures = append(failures, ChunkFailure{ChunkIndex: c.Index, Error: err.Error()})
					return nil
				}
				results = append(results, chunkResult{index: c.Index, result: res})
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to process chunks:\n%w", err)
	}
	if ctx.Err() != nil && !p.opts.PersistPartial {
		return nil, ctx.Err()
	}

	entities, mentions, err := resolveEntities(results, documentID)
	if err != nil {
		return nil, err
	}
	relationships, dropped, err := reconcileRelationships(results, mentions, documentID)
	if err != nil {
		return nil, err
	}

	doc := common.Document{
		ID:         documentID,
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
	}
	persistCtx := ctx
	if ctx.Err() != nil {
		// Partial results outlive the cancelled request.
		persistCtx = context.WithoutCancel(ctx)
	}
	if err := p.persist(persistCtx, &doc, entities, relationships); err != nil {
		return nil, err
	}

	logger.Info("[Pipeline] Document processed",
		"filename", filename,
		"entities", len(entities),
		"relationships", len(relationships),
		"failed_chunks", len(failures),
	)

	return &RunResult{
		Document:      doc,
		Entities:      entities,
		Relationships: relationships,
		Failures:      failures,
		Stats: RunStats{
			EntityCount:          len(entities),
			RelationshipCount:    len(relationships),
			ChunksTotal:          len(chunks),
			ChunksFailed:         len(failures),
			RelationshipsDropped: dropped,
		},
	}, nil
}

// persist writes the run output in dependency order: document first, then
// entities, then relationships, then the final document counts. A run with
// zero successful chunks still produces a zero-count document record.
//
// Capability-limited drivers reject document bookkeeping; that is reported
// in the log and the graph payload is persisted anyway.
func (p *Pipeline) persist(
	ctx context.Context,
	doc *common.Document,
	entities []common.Entity,
	relationships []common.Relationship,
) error {
	trackDocuments := true
	if err := p.storage.CreateDocument(ctx, *doc); err != nil {
		if !errors.Is(err, store.ErrUnsupported) {
			return fmt.Errorf("failed to save document: %w", err)
		}
		trackDocuments = false
		logger.Warn("[Pipeline] Backend does not track documents", "err", err)
	}

	for _, entity := range entities {
		if err := p.storage.CreateEntity(ctx, entity); err != nil {
			return fmt.Errorf("failed to save entity %q: %w", entity.Label, err)
		}
	}
	for _, rel := range relationships {
		if err := p.storage.CreateRelationship(ctx, rel); err != nil {
			return fmt.Errorf("failed to save relationship %s: %w", rel.Type, err)
		}
	}

	doc.EntityCount = len(entities)
	doc.RelationshipCount = len(relationships)
	if trackDocuments {
		if err := p.storage.UpdateDocument(ctx, *doc); err != nil {
			return fmt.Errorf("failed to update document counts: %w", err)
		}
	}

	return nil
}
