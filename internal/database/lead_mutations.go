package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"greenloop/internal/leads"
)

// originTable maps a lead type to the table its mutations are written to.
// Ids are only unique per source type, so every mutation is keyed by both.
func originTable(leadType leads.LeadType) string {
	if leadType == leads.TypeMarketplace {
		return "marketplace_registrations"
	}
	return "contacts"
}

// UpdateLeadStage moves a lead to another pipeline stage.
func (s *service) UpdateLeadStage(ctx context.Context, leadType leads.LeadType, id string, level leads.LeadLevel) error {
	query := fmt.Sprintf(`UPDATE %s SET lead_level = $1, updated_at = NOW() WHERE id = $2`, originTable(leadType))
	return s.execLeadUpdate(ctx, query, leadType, id, string(level))
}

// UpdateLeadPriority changes a lead's priority.
func (s *service) UpdateLeadPriority(ctx context.Context, leadType leads.LeadType, id string, priority leads.Priority) error {
	query := fmt.Sprintf(`UPDATE %s SET priority = $1, updated_at = NOW() WHERE id = $2`, originTable(leadType))
	return s.execLeadUpdate(ctx, query, leadType, id, string(priority))
}

// UpdateLeadFollowUp sets or clears a lead's next action and its due date.
func (s *service) UpdateLeadFollowUp(ctx context.Context, leadType leads.LeadType, id string, nextAction *string, nextActionDate *time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET next_action = $1, next_action_date = $2, updated_at = NOW() WHERE id = $3`, originTable(leadType))

	result, err := s.db.ExecContext(ctx, query, nextAction, nextActionDate, id)
	if err != nil {
		return fmt.Errorf("failed to update follow-up for %s lead %s: %w", leadType, id, err)
	}
	return checkLeadUpdated(result, leadType, id)
}

func (s *service) execLeadUpdate(ctx context.Context, query string, leadType leads.LeadType, id, value string) error {
	result, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update %s lead %s: %w", leadType, id, err)
	}
	return checkLeadUpdated(result, leadType, id)
}

func checkLeadUpdated(result sql.Result, leadType leads.LeadType, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s lead %s not found", leadType, id)
	}
	return nil
}
