package openai

import (
	"context"
	"fmt"

	"github.com/graphloom/graphloom/pkg/extract"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "o200k_base"

// Extractor calls an OpenAI-compatible chat endpoint with a strict response
// schema and parses the result into extraction candidates.
//
// An Extractor should be created using NewExtractor.
type Extractor struct {
	model           string
	entityTypes     []string
	maxPromptTokens int

	client *openai.Client
}

// NewExtractorParams defines the configuration for creating an Extractor.
//
// Model is the chat model identifier. BaseURL may point at any
// OpenAI-compatible endpoint; empty means the default API. MaxPromptTokens
// caps the chunk size sent to the model (0 disables the guard).
type NewExtractorParams struct {
	Model   string
	BaseURL string
	APIKey  string

	EntityTypes     []string
	MaxPromptTokens int
}

// NewExtractor creates a new OpenAI-backed extractor.
func NewExtractor(params NewExtractorParams) *Extractor {
	options := []option.RequestOption{
		option.WithAPIKey(params.APIKey),
	}
	if params.BaseURL != "" {
		options = append(options, option.WithBaseURL(params.BaseURL))
	}
	client := openai.NewClient(options...)

	return &Extractor{
		model:           params.Model,
		entityTypes:     params.EntityTypes,
		maxPromptTokens: params.MaxPromptTokens,
		client:          &client,
	}
}

// Extract sends one chunk to the model and returns the parsed candidates.
func (e *Extractor) Extract(ctx context.Context, chunkText string) (*extract.Result, error) {
	prompt, err := e.boundPrompt(chunkText)
	if err != nil {
		return nil, err
	}

	schema := extract.GenerateSchema(&extract.ModelResponse{})
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "extract_entities_and_relationships",
		Description: openai.String("Extract entities and relationships from a provided document chunk."),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extract.SystemPrompt(e.entityTypes)),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.1),
	}

	response, err := e.client.Chat.Completions.New(ctx, body)
	if err != nil {
		return nil, err
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response from model")
	}
	message := response.Choices[0].Message.Content
	if message == "" {
		return nil, fmt.Errorf("empty response from model (finish_reason: %s)", response.Choices[0].FinishReason)
	}

	var res extract.ModelResponse
	if err := extract.UnmarshalFlexible(message, &res); err != nil {
		return nil, err
	}
	return res.ToResult(), nil
}

// Summarize runs an unconstrained chat completion for short analysis text.
func (e *Extractor) Summarize(ctx context.Context, prompt string) (string, error) {
	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extract.SummarySystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.3),
	}

	response, err := e.client.Chat.Completions.New(ctx, body)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model")
	}
	message := response.Choices[0].Message.Content
	if message == "" {
		return "", fmt.Errorf("empty response from model (finish_reason: %s)", response.Choices[0].FinishReason)
	}
	return message, nil
}

// boundPrompt truncates the chunk to the configured token budget.
// Chunks normally fit well within it; the guard exists for pathological
// single-paragraph inputs.
func (e *Extractor) boundPrompt(chunkText string) (string, error) {
	if e.maxPromptTokens <= 0 {
		return chunkText, nil
	}

	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return "", err
	}
	tokens := enc.Encode(chunkText, nil, nil)
	if len(tokens) <= e.maxPromptTokens {
		return chunkText, nil
	}
	return enc.Decode(tokens[:e.maxPromptTokens]), nil
}
