package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
)

type documentRepository struct {
	*DB
}

func NewDocumentRepository(db *DB) DocumentRepository {
	return &documentRepository{DB: db}
}

func (d *documentRepository) GetDocument(ctx context.Context, documentID string) (models.Document, error) {
	var doc models.Document

	err := d.QueryRowContext(ctx, getDocument, documentID).
		Scan(&doc.ID, &doc.ProjectID, &doc.Kind, &doc.Content, &doc.Version, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("document_id", documentID).
			Msg("failed to get document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

// SaveDocument upserts the document. A stored version newer than doc is
// left untouched.
func (d *documentRepository) SaveDocument(ctx context.Context, doc models.Document) error {
	_, err := d.ExecContext(ctx, saveDocument, doc.ID, doc.ProjectID, doc.Kind, doc.Content, doc.Version, doc.UpdatedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "documentRepository.SaveDocument").
			Str("document_id", doc.ID).
			Int64("version", doc.Version).
			Msg("failed to save document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
