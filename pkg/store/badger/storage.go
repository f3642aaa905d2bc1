package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"

	badger "github.com/dgraph-io/badger/v4"
)

// CreateEntity inserts a vertex. Inserts are strict: an existing id in the
// same partition is a validation error, not an update.
func (s *GraphKVStorage) CreateEntity(ctx context.Context, entity common.Entity) error {
	if err := common.ValidateEntity(entity); err != nil {
		return err
	}
	if entity.ID == "" {
		return fmt.Errorf("%w: entity id is required", common.ErrValidation)
	}

	partition := partitionOf(entity.Type)
	value, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode entity: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := vertexKey(partition, entity.ID)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: entity %q already exists", common.ErrValidation, entity.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(key, value); err != nil {
			return err
		}
		return txn.Set(partitionKey(partition), []byte(partition))
	})
	return s.wrap("create entity", err)
}

// GetEntity looks a vertex up by id. The partition is not part of the
// call contract, so every registered partition is probed.
func (s *GraphKVStorage) GetEntity(ctx context.Context, id string) (*common.Entity, error) {
	var entity *common.Entity

	err := s.db.View(func(txn *badger.Txn) error {
		partitions, err := listPartitions(txn)
		if err != nil {
			return err
		}

		for _, partition := range partitions {
			item, err := txn.Get(vertexKey(partition, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				entity = &common.Entity{}
				return json.Unmarshal(val, entity)
			})
		}
		return store.NotFound("entity", id)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, s.wrap("get entity", err)
	}
	return entity, nil
}

// CreateRelationship inserts an edge. Endpoint existence is checked so a
// dangling edge cannot be written.
func (s *GraphKVStorage) CreateRelationship(ctx context.Context, rel common.Relationship) error {
	if err := common.ValidateRelationship(rel); err != nil {
		return err
	}
	if rel.ID == "" {
		return fmt.Errorf("%w: relationship id is required", common.ErrValidation)
	}

	value, err := json.Marshal(rel)
	if err != nil {
		return fmt.Errorf("failed to encode relationship: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := edgeKey(rel.ID)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("%w: relationship %q already exists", common.ErrValidation, rel.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		for _, endpoint := range []string{rel.FromID, rel.ToID} {
			if err := vertexExists(txn, endpoint); err != nil {
				return err
			}
		}
		return txn.Set(key, value)
	})
	return s.wrap("create relationship", err)
}

// GetRelationship looks an edge up by id.
func (s *GraphKVStorage) GetRelationship(ctx context.Context, id string) (*common.Relationship, error) {
	var rel *common.Relationship

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(edgeKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.NotFound("relationship", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rel = &common.Relationship{}
			return json.Unmarshal(val, rel)
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, s.wrap("get relationship", err)
	}
	return rel, nil
}

// ClearAll drops the whole graph: edges first, then vertices, so that no
// edge ever references a missing vertex mid-wipe.
func (s *GraphKVStorage) ClearAll(ctx context.Context) (*store.ClearResult, error) {
	result := &store.ClearResult{}

	err := s.db.Update(func(txn *badger.Txn) error {
		edges, err := deletePrefix(txn, edgePrefix)
		if err != nil {
			return err
		}
		result.Relationships = edges

		vertices, err := deletePrefix(txn, vertexPrefix)
		if err != nil {
			return err
		}
		result.Entities = vertices

		_, err = deletePrefix(txn, partitionPrefix)
		return err
	})
	if err != nil {
		return nil, s.wrap("clear all", err)
	}
	return result, nil
}

// Unsupported operations. The limited driver fails these fast instead of
// emulating them.

func (s *GraphKVStorage) UpdateEntity(ctx context.Context, entity common.Entity) error {
	return store.Unsupported(backendName, "UpdateEntity")
}

func (s *GraphKVStorage) DeleteEntity(ctx context.Context, id string) error {
	return store.Unsupported(backendName, "DeleteEntity")
}

func (s *GraphKVStorage) GetAllEntities(ctx context.Context) ([]common.Entity, error) {
	return nil, store.Unsupported(backendName, "GetAllEntities")
}

func (s *GraphKVStorage) SearchEntities(ctx context.Context, query string, limit int) ([]common.Entity, error) {
	return nil, store.Unsupported(backendName, "SearchEntities")
}

func (s *GraphKVStorage) GetEntitiesByDocument(ctx context.Context, documentID string) ([]common.Entity, error) {
	return nil, store.Unsupported(backendName, "GetEntitiesByDocument")
}

func (s *GraphKVStorage) UpdateRelationship(ctx context.Context, rel common.Relationship) error {
	return store.Unsupported(backendName, "UpdateRelationship")
}

func (s *GraphKVStorage) DeleteRelationship(ctx context.Context, id string) error {
	return store.Unsupported(backendName, "DeleteRelationship")
}

func (s *GraphKVStorage) GetAllRelationships(ctx context.Context, documentID string) ([]common.Relationship, error) {
	return nil, store.Unsupported(backendName, "GetAllRelationships")
}

func (s *GraphKVStorage) GetNeighbors(ctx context.Context, entityID string, depth int) (*common.Subgraph, error) {
	return nil, store.Unsupported(backendName, "GetNeighbors")
}

func (s *GraphKVStorage) GetSubgraph(ctx context.Context, entityIDs []string) (*common.Subgraph, error) {
	return nil, store.Unsupported(backendName, "GetSubgraph")
}

func (s *GraphKVStorage) CreateDocument(ctx context.Context, doc common.Document) error {
	return store.Unsupported(backendName, "CreateDocument")
}

func (s *GraphKVStorage) UpdateDocument(ctx context.Context, doc common.Document) error {
	return store.Unsupported(backendName, "UpdateDocument")
}

func (s *GraphKVStorage) DeleteDocument(ctx context.Context, id string) error {
	return store.Unsupported(backendName, "DeleteDocument")
}

func (s *GraphKVStorage) GetAllDocuments(ctx context.Context) ([]common.Document, error) {
	return nil, store.Unsupported(backendName, "GetAllDocuments")
}

// wrap folds backend failures into ErrTransient while passing taxonomy
// errors through untouched.
func (s *GraphKVStorage) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrValidation) || errors.Is(err, store.ErrNotFound) {
		return err
	}
	return store.Transient(op, err)
}

func listPartitions(txn *badger.Txn) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(partitionPrefix)

	it := txn.NewIterator(opts)
	defer it.Close()

	var partitions []string
	for it.Rewind(); it.Valid(); it.Next() {
		key := string(it.Item().Key())
		partitions = append(partitions, strings.TrimPrefix(key, partitionPrefix))
	}
	return partitions, nil
}

func vertexExists(txn *badger.Txn, id string) error {
	partitions, err := listPartitions(txn)
	if err != nil {
		return err
	}
	for _, partition := range partitions {
		if _, err := txn.Get(vertexKey(partition, id)); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
	}
	return fmt.Errorf("%w: relationship endpoint %q does not exist", common.ErrValidation, id)
}

func deletePrefix(txn *badger.Txn, prefix string) (int, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)

	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

var _ store.GraphStorage = (*GraphKVStorage)(nil)
