package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GeneratedDocument is a submitted template fill: the answers, the chosen
// language and, when the document was signed, the serialized signature and
// its content hash.
type GeneratedDocument struct {
	ID            string            `json:"id"`
	TemplateID    string            `json:"template_id"`
	TemplateName  string            `json:"template_name"`
	Language      string            `json:"language"`
	FieldValues   map[string]string `json:"field_values"`
	IsSigned      bool              `json:"is_signed"`
	SignatureData json.RawMessage   `json:"signature_data,omitempty"`
	SignatureHash *string           `json:"signature_hash,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// SignatureLogEntry is one row of the signature audit trail, appended after
// a signed document record was created.
type SignatureLogEntry struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	SignerName    string    `json:"signer_name"`
	SignerEmail   string    `json:"signer_email"`
	SignatureType string    `json:"signature_type"`
	SignatureHash string    `json:"signature_hash"`
	SignedAt      time.Time `json:"signed_at"`
}

// CreateGeneratedDocument inserts a submission record and fills in the
// generated id, which the caller then uses to namespace file uploads.
func (s *service) CreateGeneratedDocument(ctx context.Context, doc *GeneratedDocument) error {
	values, err := json.Marshal(doc.FieldValues)
	if err != nil {
		return fmt.Errorf("failed to encode field values: %w", err)
	}

	query := `
		INSERT INTO generated_documents
			(template_id, template_name, language, field_values, is_signed, signature_data, signature_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	var sigData interface{}
	if len(doc.SignatureData) > 0 {
		sigData = []byte(doc.SignatureData)
	}

	err = s.db.QueryRowContext(ctx, query,
		doc.TemplateID, doc.TemplateName, doc.Language, values,
		doc.IsSigned, sigData, doc.SignatureHash,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create generated document: %w", err)
	}

	return nil
}

// GetGeneratedDocuments lists all submissions, newest first.
func (s *service) GetGeneratedDocuments(ctx context.Context) ([]GeneratedDocument, error) {
	query := `
		SELECT id, template_id, template_name, language, field_values, is_signed, signature_data, signature_hash, created_at
		FROM generated_documents
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated documents: %w", err)
	}
	defer rows.Close()

	var docs []GeneratedDocument
	for rows.Next() {
		var d GeneratedDocument
		var values []byte
		var sigData []byte
		err := rows.Scan(&d.ID, &d.TemplateID, &d.TemplateName, &d.Language,
			&values, &d.IsSigned, &sigData, &d.SignatureHash, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generated document: %w", err)
		}
		if len(values) > 0 {
			if err := json.Unmarshal(values, &d.FieldValues); err != nil {
				return nil, fmt.Errorf("failed to decode field values for document %s: %w", d.ID, err)
			}
		}
		d.SignatureData = sigData
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// AddSignatureLogEntry appends to the signature audit log.
func (s *service) AddSignatureLogEntry(ctx context.Context, entry *SignatureLogEntry) error {
	query := `
		INSERT INTO signature_log (document_id, signer_name, signer_email, signature_type, signature_hash, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		entry.DocumentID, entry.SignerName, entry.SignerEmail,
		entry.SignatureType, entry.SignatureHash, entry.SignedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append signature log entry: %w", err)
	}

	return nil
}
