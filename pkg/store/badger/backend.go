// Package badger implements the capability-limited GraphStorage driver on
// embedded BadgerDB. It supports inserts, id lookups, and bulk drop;
// everything else fails fast with ErrUnsupported instead of emulating the
// full contract.
package badger

import (
	"fmt"
	"os"

	"github.com/graphloom/graphloom/pkg/logger"

	badger "github.com/dgraph-io/badger/v4"
)

const backendName = "badger"

// badgerLoggerAdapter routes badger's internal logging through the shared
// logger facade.
type badgerLoggerAdapter struct{}

var _ badger.Logger = badgerLoggerAdapter{}

func (badgerLoggerAdapter) Errorf(msg string, items ...any) {
	logger.Error("[Badger] " + fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Warningf(msg string, items ...any) {
	logger.Warn("[Badger] " + fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Infof(msg string, items ...any) {
	logger.Debug("[Badger] " + fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Debugf(msg string, items ...any) {
	logger.Debug("[Badger] " + fmt.Sprintf(msg, items...))
}

// GraphKVStorage is the BadgerDB-backed GraphStorage implementation.
type GraphKVStorage struct {
	db *badger.DB
}

// NewGraphKVStorage opens the database at path, creating the directory if
// needed. An empty path opens an in-memory database, used in tests.
func NewGraphKVStorage(path string) (*GraphKVStorage, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create badger directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = badgerLoggerAdapter{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Info("[Store] Opened BadgerDB", "path", path, "in_memory", path == "")
	return &GraphKVStorage{db: db}, nil
}

// Close closes the underlying database.
func (s *GraphKVStorage) Close() error {
	return s.db.Close()
}
