package database

import (
	"context"
	"fmt"
	"time"

	"greenloop/internal/leads"
)

// LeadNote is a free-text note a sales admin attaches to a lead.
type LeadNote struct {
	ID        string         `json:"id"`
	LeadType  leads.LeadType `json:"lead_type"`
	LeadID    string         `json:"lead_id"`
	Author    string         `json:"author"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"created_at"`
}

// GetLeadNotes returns the notes for one lead, newest first.
func (s *service) GetLeadNotes(ctx context.Context, leadType leads.LeadType, leadID string) ([]LeadNote, error) {
	query := `
		SELECT id, lead_type, lead_id, author, note, created_at
		FROM lead_notes
		WHERE lead_type = $1 AND lead_id = $2
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, leadType, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead notes: %w", err)
	}
	defer rows.Close()

	var notes []LeadNote
	for rows.Next() {
		var n LeadNote
		if err := rows.Scan(&n.ID, &n.LeadType, &n.LeadID, &n.Author, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead note: %w", err)
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// AddLeadNote inserts a note and fills in the generated id and timestamp.
func (s *service) AddLeadNote(ctx context.Context, note *LeadNote) error {
	query := `
		INSERT INTO lead_notes (lead_type, lead_id, author, note, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query, note.LeadType, note.LeadID, note.Author, note.Note).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add lead note: %w", err)
	}

	return nil
}
