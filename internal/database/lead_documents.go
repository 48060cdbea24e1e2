package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"greenloop/internal/leads"
)

// LeadDocument is a file attached to a lead, stored in the lead-documents
// bucket and referenced here by its storage path. FileHash is the SHA-256 of
// the bytes recorded at upload time, used to verify the stored object later.
type LeadDocument struct {
	ID          string         `json:"id"`
	LeadType    leads.LeadType `json:"lead_type"`
	LeadID      string         `json:"lead_id"`
	FileName    string         `json:"file_name"`
	StoragePath string         `json:"storage_path"`
	PublicURL   string         `json:"public_url"`
	FileSize    int64          `json:"file_size"`
	ContentType string         `json:"content_type"`
	FileHash    string         `json:"file_hash"`
	UploadedAt  time.Time      `json:"uploaded_at"`
}

// CreateLeadDocument records an uploaded file and fills in the generated id
// and timestamp.
func (s *service) CreateLeadDocument(ctx context.Context, doc *LeadDocument) error {
	query := `
		INSERT INTO lead_documents
			(lead_type, lead_id, file_name, storage_path, public_url, file_size, content_type, file_hash, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, uploaded_at`

	err := s.db.QueryRowContext(ctx, query,
		doc.LeadType, doc.LeadID, doc.FileName, doc.StoragePath,
		doc.PublicURL, doc.FileSize, doc.ContentType, doc.FileHash,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead document: %w", err)
	}

	return nil
}

// GetLeadDocuments lists the document folder of one lead, newest first.
func (s *service) GetLeadDocuments(ctx context.Context, leadType leads.LeadType, leadID string) ([]LeadDocument, error) {
	query := `
		SELECT id, lead_type, lead_id, file_name, storage_path, public_url, file_size, content_type, file_hash, uploaded_at
		FROM lead_documents
		WHERE lead_type = $1 AND lead_id = $2
		ORDER BY uploaded_at DESC`

	rows, err := s.db.QueryContext(ctx, query, leadType, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead documents: %w", err)
	}
	defer rows.Close()

	var docs []LeadDocument
	for rows.Next() {
		var d LeadDocument
		err := rows.Scan(&d.ID, &d.LeadType, &d.LeadID, &d.FileName, &d.StoragePath,
			&d.PublicURL, &d.FileSize, &d.ContentType, &d.FileHash, &d.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// GetLeadDocument fetches a single document record by id.
func (s *service) GetLeadDocument(ctx context.Context, id string) (*LeadDocument, error) {
	query := `
		SELECT id, lead_type, lead_id, file_name, storage_path, public_url, file_size, content_type, file_hash, uploaded_at
		FROM lead_documents
		WHERE id = $1`

	var d LeadDocument
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.LeadType, &d.LeadID, &d.FileName, &d.StoragePath,
		&d.PublicURL, &d.FileSize, &d.ContentType, &d.FileHash, &d.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lead document: %w", err)
	}

	return &d, nil
}

// DeleteLeadDocument removes a document record and returns it so the caller
// can delete the underlying object from storage.
func (s *service) DeleteLeadDocument(ctx context.Context, id string) (*LeadDocument, error) {
	query := `
		DELETE FROM lead_documents WHERE id = $1
		RETURNING id, lead_type, lead_id, file_name, storage_path, public_url, file_size, content_type, file_hash, uploaded_at`

	var d LeadDocument
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.LeadType, &d.LeadID, &d.FileName, &d.StoragePath,
		&d.PublicURL, &d.FileSize, &d.ContentType, &d.FileHash, &d.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete lead document: %w", err)
	}

	return &d, nil
}
