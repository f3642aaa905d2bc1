package extract

import (
	"context"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
)

// CandidateEntity is a single entity mention produced by an extraction model
// for one chunk. Mention is the chunk-local mention id derived from the label;
// it is only unique within the chunk that produced it.
type CandidateEntity struct {
	Mention    string
	Label      string
	Type       string
	Properties common.Properties
}

// CandidateRelationship is a relationship proposed by an extraction model.
// From and To reference mention ids of entities in the same chunk.
type CandidateRelationship struct {
	From       string
	To         string
	Type       string
	Confidence float64
	Properties common.Properties
}

// Result is the full extraction output for one chunk.
type Result struct {
	Entities      []CandidateEntity
	Relationships []CandidateRelationship
}

// Extractor turns a chunk of text into candidate entities and relationships.
// Implementations call an external model; failures are reported per chunk by
// the caller, so Extract should not retry internally.
type Extractor interface {
	Extract(ctx context.Context, chunkText string) (*Result, error)
}

// Summarizer produces a short free-text answer for a prompt. Adapters that
// can run unconstrained chat implement it alongside Extractor; callers fall
// back to non-AI output when it is absent.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, chunkText string) (*Result, error)

func (f ExtractorFunc) Extract(ctx context.Context, chunkText string) (*Result, error) {
	return f(ctx, chunkText)
}

// MentionID derives the chunk-local mention id from an entity label.
func MentionID(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
