package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/graphloom/graphloom/internal/config"
	mid "github.com/graphloom/graphloom/internal/server/middleware"
	"github.com/graphloom/graphloom/pkg/extract"
	ollamaext "github.com/graphloom/graphloom/pkg/extract/ollama"
	openaiext "github.com/graphloom/graphloom/pkg/extract/openai"
	"github.com/graphloom/graphloom/pkg/graph"
	"github.com/graphloom/graphloom/pkg/logger"
	"github.com/graphloom/graphloom/pkg/store"
	badgerstore "github.com/graphloom/graphloom/pkg/store/badger"
	pgxstore "github.com/graphloom/graphloom/pkg/store/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewStorage builds the graph storage driver named by the configuration.
func NewStorage(ctx context.Context, cfg *config.Config) (store.GraphStorage, error) {
	switch cfg.GraphBackend {
	case config.BackendPostgres:
		return pgxstore.NewGraphDBStorage(ctx, cfg.DatabaseURL)
	case config.BackendBadger:
		return badgerstore.NewGraphKVStorage(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("%w: unknown graph backend %q", config.ErrConfiguration, cfg.GraphBackend)
	}
}

// NewExtractor builds the extraction adapter named by the configuration.
func NewExtractor(cfg *config.Config) (extract.Extractor, error) {
	switch cfg.AIAdapter {
	case config.AdapterOllama:
		return ollamaext.NewExtractor(ollamaext.NewExtractorParams{
			Model:   cfg.ExtractionModel,
			BaseURL: cfg.AIBaseURL,
		})
	case config.AdapterOpenAI:
		return openaiext.NewExtractor(openaiext.NewExtractorParams{
			Model:   cfg.ExtractionModel,
			BaseURL: cfg.AIBaseURL,
			APIKey:  cfg.AIKey,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown AI adapter %q", config.ErrConfiguration, cfg.AIAdapter)
	}
}

func Init(cfg *config.Config) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "err", err)
	}
	defer storage.Close()

	extractor, err := NewExtractor(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize extractor", "err", err)
	}

	pipeline, err := graph.NewPipeline(extractor, storage, graph.Options{
		MaxChunkSize:   cfg.MaxChunkSize,
		OverlapSize:    cfg.OverlapSize,
		MaxParallel:    cfg.MaxParallel,
		MaxRetries:     cfg.ExtractionRetries,
		PersistPartial: cfg.PersistPartial,
	})
	if err != nil {
		logger.Fatal("Failed to initialize pipeline", "err", err)
	}

	app := &mid.App{
		Storage:  storage,
		Pipeline: pipeline,
		Config:   cfg,
	}
	if summarizer, ok := extractor.(extract.Summarizer); ok {
		app.Summarizer = summarizer
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(echomw.CORS())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("256M"))

	RegisterRoutes(e)

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.GraphBackend)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
