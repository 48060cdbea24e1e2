package database

import (
	"context"
	"encoding/json"
	"fmt"

	"greenloop/internal/leads"
)

const registrationColumns = `id, name, email, company, phone, country, message,
	status, lead_level, priority, company_type, products_interest, estimated_volume,
	next_action, next_action_date, created_at`

// GetMarketplaceRegistrations returns every marketplace registration, newest
// first. products_interest is stored as a JSONB array.
func (s *service) GetMarketplaceRegistrations(ctx context.Context) ([]leads.MarketplaceRegistration, error) {
	query := fmt.Sprintf(`SELECT %s FROM marketplace_registrations ORDER BY created_at DESC`, registrationColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query marketplace registrations: %w", err)
	}
	defer rows.Close()

	var registrations []leads.MarketplaceRegistration
	for rows.Next() {
		var r leads.MarketplaceRegistration
		var productsJSON []byte
		err := rows.Scan(
			&r.ID, &r.Name, &r.Email, &r.Company, &r.Phone, &r.Country, &r.Message,
			&r.Status, &r.LeadLevel, &r.Priority,
			&r.CompanyType, &productsJSON, &r.EstimatedVolume,
			&r.NextAction, &r.NextActionDate, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan marketplace registration: %w", err)
		}
		if len(productsJSON) > 0 {
			if err := json.Unmarshal(productsJSON, &r.ProductsInterest); err != nil {
				return nil, fmt.Errorf("failed to decode products_interest for registration %s: %w", r.ID, err)
			}
		}
		registrations = append(registrations, r)
	}

	return registrations, rows.Err()
}

// CreateMarketplaceRegistration inserts a marketplace registration and fills
// in the generated id and timestamp.
func (s *service) CreateMarketplaceRegistration(ctx context.Context, reg *leads.MarketplaceRegistration) error {
	productsJSON, err := json.Marshal(reg.ProductsInterest)
	if err != nil {
		return fmt.Errorf("failed to encode products_interest: %w", err)
	}

	query := `
		INSERT INTO marketplace_registrations
			(name, email, company, phone, country, message, company_type,
			 products_interest, estimated_volume, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at`

	err = s.db.QueryRowContext(ctx, query,
		reg.Name, reg.Email, reg.Company, reg.Phone, reg.Country, reg.Message,
		reg.CompanyType, productsJSON, reg.EstimatedVolume,
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create marketplace registration: %w", err)
	}

	return nil
}
