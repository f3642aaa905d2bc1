package pgx

import (
	"context"
	"fmt"

	"github.com/graphloom/graphloom/internal/util"
	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"

	pgxlib "github.com/jackc/pgx/v5"
)

const entityColumns = "id, type, label, properties, metadata, created_at, updated_at"

// CreateEntity inserts an entity. The label is sanitized for Postgres
// text storage before writing.
func (s *GraphDBStorage) CreateEntity(ctx context.Context, entity common.Entity) error {
	if err := common.ValidateEntity(entity); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO kg_entities (id, type, label, properties, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entity.ID,
		entity.Type,
		util.SanitizePostgresText(entity.Label),
		entity.Properties,
		entity.Metadata,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		return wrapError("create entity", err)
	}
	return nil
}

// UpdateEntity replaces the mutable fields of an existing entity.
func (s *GraphDBStorage) UpdateEntity(ctx context.Context, entity common.Entity) error {
	if err := common.ValidateEntity(entity); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE kg_entities
		SET type = $2, label = $3, properties = $4, metadata = $5, updated_at = now()
		WHERE id = $1`,
		entity.ID,
		entity.Type,
		util.SanitizePostgresText(entity.Label),
		entity.Properties,
		entity.Metadata,
	)
	if err != nil {
		return wrapError("update entity", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("entity", entity.ID)
	}
	return nil
}

// DeleteEntity removes an entity; attached relationships go with it via
// the foreign key cascade.
func (s *GraphDBStorage) DeleteEntity(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM kg_entities WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete entity", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("entity", id)
	}
	return nil
}

// GetEntity returns a single entity by id.
func (s *GraphDBStorage) GetEntity(ctx context.Context, id string) (*common.Entity, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM kg_entities WHERE id = $1`, entityColumns), id)

	entity, err := scanEntity(row)
	if err != nil {
		if isNoRows(err) {
			return nil, store.NotFound("entity", id)
		}
		return nil, wrapError("get entity", err)
	}
	return entity, nil
}

// GetAllEntities returns every entity ordered by label.
func (s *GraphDBStorage) GetAllEntities(ctx context.Context) ([]common.Entity, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM kg_entities ORDER BY label, id`, entityColumns))
	if err != nil {
		return nil, wrapError("get all entities", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

// SearchEntities matches the query case-insensitively against label and
// type.
func (s *GraphDBStorage) SearchEntities(ctx context.Context, query string, limit int) ([]common.Entity, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + util.SanitizePostgresText(query) + "%"
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM kg_entities
		WHERE label ILIKE $1 OR type ILIKE $1
		ORDER BY label, id
		LIMIT $2`, entityColumns),
		pattern, limit,
	)
	if err != nil {
		return nil, wrapError("search entities", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

// GetEntitiesByDocument returns the entities whose metadata records the
// given source document.
func (s *GraphDBStorage) GetEntitiesByDocument(ctx context.Context, documentID string) ([]common.Entity, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM kg_entities
		WHERE metadata ->> 'source_document_id' = $1
		ORDER BY label, id`, entityColumns),
		documentID,
	)
	if err != nil {
		return nil, wrapError("get entities by document", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

func scanEntity(row pgxlib.Row) (*common.Entity, error) {
	var entity common.Entity
	err := row.Scan(
		&entity.ID,
		&entity.Type,
		&entity.Label,
		&entity.Properties,
		&entity.Metadata,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func collectEntities(rows pgxlib.Rows) ([]common.Entity, error) {
	entities := make([]common.Entity, 0)
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, wrapError("scan entity", err)
		}
		entities = append(entities, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("read entities", err)
	}
	return entities, nil
}
