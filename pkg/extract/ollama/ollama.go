package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/graphloom/graphloom/pkg/extract"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "o200k_base"

// Extractor runs extraction against a locally hosted Ollama model using
// JSON-schema constrained output.
//
// An Extractor should be created using NewExtractor.
type Extractor struct {
	model       string
	entityTypes []string

	client *api.Client
}

// NewExtractorParams contains configuration options for creating an Extractor.
type NewExtractorParams struct {
	Model   string
	BaseURL string

	EntityTypes []string
}

// NewExtractor creates a new Ollama-backed extractor. BaseURL may be empty
// to use the default local server.
func NewExtractor(params NewExtractorParams) (*Extractor, error) {
	var (
		u   *url.URL
		err error
	)

	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	client := api.NewClient(u, http.DefaultClient)

	return &Extractor{
		model:       params.Model,
		entityTypes: params.EntityTypes,
		client:      client,
	}, nil
}

// Extract sends one chunk to the model and returns the parsed candidates.
func (e *Extractor) Extract(ctx context.Context, chunkText string) (*extract.Result, error) {
	schemaObj := extract.GenerateSchema(&extract.ModelResponse{})
	formatBytes, err := json.Marshal(schemaObj)
	if err != nil {
		return nil, err
	}
	var format json.RawMessage = formatBytes

	stream := false
	req := &api.ChatRequest{
		Model: e.model,
		Messages: []api.Message{
			{Role: "system", Content: extract.SystemPrompt(e.entityTypes)},
			{Role: "user", Content: chunkText},
		},
		Stream:  &stream,
		Format:  format,
		Options: map[string]any{"temperature": 0.1},
	}

	// Grow the context window for oversized chunks, matching the prompt size.
	tokens := 200
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return nil, err
	}
	tokens += len(enc.Encode(chunkText, nil, nil))
	if tokens > 4096 {
		req.Options["num_ctx"] = tokens
	}

	var final api.ChatResponse
	if err := e.client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
		}
		return nil
	}); err != nil {
		return nil, err
	}

	var res extract.ModelResponse
	if err := extract.UnmarshalFlexible(final.Message.Content, &res); err != nil {
		return nil, err
	}
	return res.ToResult(), nil
}

// Summarize runs an unconstrained chat for short analysis text.
func (e *Extractor) Summarize(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: e.model,
		Messages: []api.Message{
			{Role: "system", Content: extract.SummarySystemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream:  &stream,
		Options: map[string]any{"temperature": 0.3},
	}

	var out strings.Builder
	if err := e.client.Chat(ctx, req, func(cr api.ChatResponse) error {
		out.WriteString(cr.Message.Content)
		return nil
	}); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
