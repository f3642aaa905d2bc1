package pgx

import (
	"context"
	"fmt"

	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"

	pgxlib "github.com/jackc/pgx/v5"
)

const relationshipColumns = "id, from_id, to_id, type, properties, confidence, source, document_id, created_at"

// CreateRelationship inserts a relationship. Both endpoints must already
// exist; a missing endpoint surfaces as a validation error through the
// foreign key.
func (s *GraphDBStorage) CreateRelationship(ctx context.Context, rel common.Relationship) error {
	if err := common.ValidateRelationship(rel); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO kg_relationships (id, from_id, to_id, type, properties, confidence, source, document_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rel.ID,
		rel.FromID,
		rel.ToID,
		rel.Type,
		rel.Properties,
		rel.Confidence,
		rel.Source,
		nullableText(rel.DocumentID),
		rel.CreatedAt,
	)
	if err != nil {
		return wrapError("create relationship", err)
	}
	return nil
}

// UpdateRelationship replaces the mutable fields of a relationship.
func (s *GraphDBStorage) UpdateRelationship(ctx context.Context, rel common.Relationship) error {
	if err := common.ValidateRelationship(rel); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE kg_relationships
		SET from_id = $2, to_id = $3, type = $4, properties = $5, confidence = $6
		WHERE id = $1`,
		rel.ID,
		rel.FromID,
		rel.ToID,
		rel.Type,
		rel.Properties,
		rel.Confidence,
	)
	if err != nil {
		return wrapError("update relationship", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("relationship", rel.ID)
	}
	return nil
}

// DeleteRelationship removes a relationship by id.
func (s *GraphDBStorage) DeleteRelationship(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM kg_relationships WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete relationship", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("relationship", id)
	}
	return nil
}

// GetRelationship returns a single relationship by id.
func (s *GraphDBStorage) GetRelationship(ctx context.Context, id string) (*common.Relationship, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM kg_relationships WHERE id = $1`, relationshipColumns), id)

	rel, err := scanRelationship(row)
	if err != nil {
		if isNoRows(err) {
			return nil, store.NotFound("relationship", id)
		}
		return nil, wrapError("get relationship", err)
	}
	return rel, nil
}

// GetAllRelationships returns every relationship, or only those from one
// document when documentID is non-empty.
func (s *GraphDBStorage) GetAllRelationships(ctx context.Context, documentID string) ([]common.Relationship, error) {
	query := fmt.Sprintf(`SELECT %s FROM kg_relationships ORDER BY created_at, id`, relationshipColumns)
	args := []any{}
	if documentID != "" {
		query = fmt.Sprintf(`SELECT %s FROM kg_relationships WHERE document_id = $1 ORDER BY created_at, id`, relationshipColumns)
		args = append(args, documentID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("get all relationships", err)
	}
	defer rows.Close()

	return collectRelationships(rows)
}

func scanRelationship(row pgxlib.Row) (*common.Relationship, error) {
	var rel common.Relationship
	var documentID *string
	err := row.Scan(
		&rel.ID,
		&rel.FromID,
		&rel.ToID,
		&rel.Type,
		&rel.Properties,
		&rel.Confidence,
		&rel.Source,
		&documentID,
		&rel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if documentID != nil {
		rel.DocumentID = *documentID
	}
	return &rel, nil
}

func collectRelationships(rows pgxlib.Rows) ([]common.Relationship, error) {
	relationships := make([]common.Relationship, 0)
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, wrapError("scan relationship", err)
		}
		relationships = append(relationships, *rel)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("read relationships", err)
	}
	return relationships, nil
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
