package config

import (
	"errors"
	"fmt"

	"github.com/graphloom/graphloom/internal/util"
)

// Graph storage backends selectable via GRAPH_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// Extraction adapters selectable via AI_ADAPTER.
const (
	AdapterOpenAI = "openai"
	AdapterOllama = "ollama"
)

// ErrConfiguration marks a startup configuration problem. The server must
// refuse to start when Load returns it; ingestion never runs on a partially
// configured backend.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds all runtime configuration, resolved once at startup from the
// environment.
type Config struct {
	Port  string
	Debug bool

	GraphBackend string
	DatabaseURL  string
	BadgerPath   string

	AIAdapter       string
	ExtractionModel string
	AIBaseURL       string
	AIKey           string

	MaxChunkSize      int
	OverlapSize       int
	MaxParallel       int
	ExtractionRetries int
	PersistPartial    bool
}

// Load reads configuration from the environment and validates it.
// Missing backend credentials are a fatal configuration error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:  util.GetEnvString("PORT", "8080"),
		Debug: util.GetEnvBool("DEBUG", false),

		GraphBackend: util.GetEnvString("GRAPH_BACKEND", BackendPostgres),
		DatabaseURL:  util.GetEnv("DATABASE_URL"),
		BadgerPath:   util.GetEnvString("BADGER_PATH", "data/badger"),

		AIAdapter:       util.GetEnvString("AI_ADAPTER", AdapterOpenAI),
		ExtractionModel: util.GetEnvString("AI_EXTRACT_MODEL", "gpt-4o-mini"),
		AIBaseURL:       util.GetEnv("AI_BASE_URL"),
		AIKey:           util.GetEnv("AI_KEY"),

		MaxChunkSize:      util.GetEnvInt("MAX_CHUNK_SIZE", 2400),
		OverlapSize:       util.GetEnvInt("CHUNK_OVERLAP", 200),
		MaxParallel:       util.GetEnvInt("EXTRACTION_PARALLEL", 4),
		ExtractionRetries: util.GetEnvInt("EXTRACTION_RETRIES", 0),
		PersistPartial:    util.GetEnvBool("PERSIST_PARTIAL", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.GraphBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the %s backend", ErrConfiguration, BackendPostgres)
		}
	case BackendBadger:
		if c.BadgerPath == "" {
			return fmt.Errorf("%w: BADGER_PATH is required for the %s backend", ErrConfiguration, BackendBadger)
		}
	default:
		return fmt.Errorf("%w: unknown graph backend %q", ErrConfiguration, c.GraphBackend)
	}

	switch c.AIAdapter {
	case AdapterOpenAI:
		if c.AIKey == "" {
			return fmt.Errorf("%w: AI_KEY is required for the %s adapter", ErrConfiguration, AdapterOpenAI)
		}
	case AdapterOllama:
	default:
		return fmt.Errorf("%w: unknown AI adapter %q", ErrConfiguration, c.AIAdapter)
	}

	if c.OverlapSize >= c.MaxChunkSize {
		return fmt.Errorf("%w: CHUNK_OVERLAP (%d) must be smaller than MAX_CHUNK_SIZE (%d)", ErrConfiguration, c.OverlapSize, c.MaxChunkSize)
	}
	if c.MaxParallel < 1 {
		return fmt.Errorf("%w: EXTRACTION_PARALLEL must be at least 1", ErrConfiguration)
	}

	return nil
}
