package database

import (
	"context"
	"fmt"

	"greenloop/internal/leads"
)

const contactColumns = `id, name, email, company, phone, country, message,
	status, lead_level, priority, channel, next_action, next_action_date, created_at`

// GetContacts returns every contact submission, newest first. Both plain
// contact-form rows and OTR source indications live here; the channel column
// distinguishes them.
func (s *service) GetContacts(ctx context.Context) ([]leads.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts ORDER BY created_at DESC`, contactColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []leads.Contact
	for rows.Next() {
		var c leads.Contact
		err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.Country, &c.Message,
			&c.Status, &c.LeadLevel, &c.Priority, &c.Channel,
			&c.NextAction, &c.NextActionDate, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

// CreateContact inserts a contact-form submission and fills in the generated
// id and timestamp.
func (s *service) CreateContact(ctx context.Context, contact *leads.Contact) error {
	query := `
		INSERT INTO contacts (name, email, company, phone, country, message, channel, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		contact.Name, contact.Email, contact.Company, contact.Phone,
		contact.Country, contact.Message, contact.Channel,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}
