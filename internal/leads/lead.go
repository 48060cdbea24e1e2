// Package leads merges the heterogeneous lead sources (contact form
// submissions, marketplace registrations and OTR source indications) into one
// normalized pipeline view for the admin console.
package leads

import (
	"time"
)

// LeadType identifies the source collection a unified lead came from.
type LeadType string

type LeadLevel string
type Priority string

const (
	TypeContact     LeadType = "contact"
	TypeMarketplace LeadType = "marketplace"
	TypeOTR         LeadType = "otr"

	LevelInitial   LeadLevel = "initial"
	LevelQualified LeadLevel = "qualified"
	LevelProject   LeadLevel = "project"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// OTRChannel is the channel tag that marks a contact submission as an OTR
// source indication. It is a content convention, not a separate table.
const OTRChannel = "otr-source-indication"

// Contact is a row from the contacts table.
type Contact struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Company        *string    `json:"company"`
	Phone          *string    `json:"phone"`
	Country        *string    `json:"country"`
	Message        *string    `json:"message"`
	Status         *string    `json:"status"`
	LeadLevel      *string    `json:"lead_level"`
	Priority       *string    `json:"priority"`
	Channel        *string    `json:"channel"`
	NextAction     *string    `json:"next_action"`
	NextActionDate *time.Time `json:"next_action_date"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MarketplaceRegistration is a row from the marketplace_registrations table.
type MarketplaceRegistration struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Company          *string    `json:"company"`
	Phone            *string    `json:"phone"`
	Country          *string    `json:"country"`
	Message          *string    `json:"message"`
	Status           *string    `json:"status"`
	LeadLevel        *string    `json:"lead_level"`
	Priority         *string    `json:"priority"`
	CompanyType      *string    `json:"company_type"`
	ProductsInterest []string   `json:"products_interest"`
	EstimatedVolume  *string    `json:"estimated_volume"`
	NextAction       *string    `json:"next_action"`
	NextActionDate   *time.Time `json:"next_action_date"`
	CreatedAt        time.Time  `json:"created_at"`
}

// UnifiedLead is the normalized projection over the three lead sources.
// IDs are only unique within a source type, so a lead is always addressed by
// the (Type, ID) pair.
type UnifiedLead struct {
	ID             string     `json:"id"`
	Type           LeadType   `json:"type"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Company        *string    `json:"company"`
	Phone          *string    `json:"phone"`
	Country        *string    `json:"country"`
	Message        *string    `json:"message"`
	Status         string     `json:"status"`
	LeadLevel      LeadLevel  `json:"lead_level"`
	Priority       Priority   `json:"priority"`
	Channel        *string    `json:"channel"`
	NextAction     *string    `json:"next_action"`
	NextActionDate *time.Time `json:"next_action_date"`
	CreatedAt      time.Time  `json:"created_at"`

	// Marketplace-only fields, nil/empty for contact and otr leads.
	CompanyType      *string  `json:"company_type,omitempty"`
	ProductsInterest []string `json:"products_interest,omitempty"`
	EstimatedVolume  *string  `json:"estimated_volume,omitempty"`
}

// OriginTable returns the table a mutation for this lead must be written to.
// OTR leads live in the contacts table, split out only by channel tag.
func (l *UnifiedLead) OriginTable() string {
	if l.Type == TypeMarketplace {
		return "marketplace_registrations"
	}
	return "contacts"
}
