package pgx

import (
	"context"
	"fmt"

	"github.com/graphloom/graphloom/internal/util"
	"github.com/graphloom/graphloom/pkg/common"
	"github.com/graphloom/graphloom/pkg/store"
)

// CreateDocument inserts a document record.
func (s *GraphDBStorage) CreateDocument(ctx context.Context, doc common.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: document id is required", common.ErrValidation)
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO kg_documents (id, filename, uploaded_at, entity_count, relationship_count)
		VALUES ($1, $2, $3, $4, $5)`,
		doc.ID,
		util.SanitizePostgresText(doc.Filename),
		doc.UploadedAt,
		doc.EntityCount,
		doc.RelationshipCount,
	)
	if err != nil {
		return wrapError("create document", err)
	}
	return nil
}

// UpdateDocument replaces filename and counts of an existing document.
func (s *GraphDBStorage) UpdateDocument(ctx context.Context, doc common.Document) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE kg_documents
		SET filename = $2, entity_count = $3, relationship_count = $4
		WHERE id = $1`,
		doc.ID,
		util.SanitizePostgresText(doc.Filename),
		doc.EntityCount,
		doc.RelationshipCount,
	)
	if err != nil {
		return wrapError("update document", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("document", doc.ID)
	}
	return nil
}

// DeleteDocument removes a document along with the entities and
// relationships extracted from it.
func (s *GraphDBStorage) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapError("delete document", err)
	}
	defer tx.Rollback(ctx)

	// Relationships attached to the document's entities fall away through
	// the cascade; document-scoped relationships between surviving
	// entities are removed explicitly.
	if _, err := tx.Exec(ctx, `DELETE FROM kg_relationships WHERE document_id = $1`, id); err != nil {
		return wrapError("delete document relationships", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM kg_entities WHERE metadata ->> 'source_document_id' = $1`, id); err != nil {
		return wrapError("delete document entities", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM kg_documents WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete document", err)
	}
	if tag.RowsAffected() == 0 {
		return store.NotFound("document", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapError("delete document", err)
	}
	return nil
}

// GetAllDocuments returns every document, newest first.
func (s *GraphDBStorage) GetAllDocuments(ctx context.Context) ([]common.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, uploaded_at, entity_count, relationship_count
		FROM kg_documents
		ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, wrapError("get all documents", err)
	}
	defer rows.Close()

	documents := make([]common.Document, 0)
	for rows.Next() {
		var doc common.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.UploadedAt, &doc.EntityCount, &doc.RelationshipCount); err != nil {
			return nil, wrapError("scan document", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("read documents", err)
	}
	return documents, nil
}

// ClearAll wipes the graph and reports how much was removed.
func (s *GraphDBStorage) ClearAll(ctx context.Context) (*store.ClearResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, wrapError("clear all", err)
	}
	defer tx.Rollback(ctx)

	result := &store.ClearResult{}

	tag, err := tx.Exec(ctx, `DELETE FROM kg_relationships`)
	if err != nil {
		return nil, wrapError("clear relationships", err)
	}
	result.Relationships = int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `DELETE FROM kg_entities`)
	if err != nil {
		return nil, wrapError("clear entities", err)
	}
	result.Entities = int(tag.RowsAffected())

	tag, err = tx.Exec(ctx, `DELETE FROM kg_documents`)
	if err != nil {
		return nil, wrapError("clear documents", err)
	}
	result.Documents = int(tag.RowsAffected())

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapError("clear all", err)
	}
	return result, nil
}
