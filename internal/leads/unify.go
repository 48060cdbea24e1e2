package leads

import (
	"sort"
)

// Unify merges contact submissions and marketplace registrations into one
// list of unified leads, newest first. Callers that failed to fetch one of
// the sources pass a nil slice; the merge treats that as an empty collection.
func Unify(contacts []Contact, registrations []MarketplaceRegistration) []UnifiedLead {
	unified := make([]UnifiedLead, 0, len(contacts)+len(registrations))

	for _, c := range contacts {
		leadType := TypeContact
		defaultStatus := "new"
		if c.Channel != nil && *c.Channel == OTRChannel {
			leadType = TypeOTR
			defaultStatus = "pending"
		}
		unified = append(unified, UnifiedLead{
			ID:             c.ID,
			Type:           leadType,
			Name:           c.Name,
			Email:          c.Email,
			Company:        c.Company,
			Phone:          c.Phone,
			Country:        c.Country,
			Message:        c.Message,
			Status:         stringOrDefault(c.Status, defaultStatus),
			LeadLevel:      LeadLevel(stringOrDefault(c.LeadLevel, string(LevelInitial))),
			Priority:       Priority(stringOrDefault(c.Priority, string(PriorityMedium))),
			Channel:        c.Channel,
			NextAction:     c.NextAction,
			NextActionDate: c.NextActionDate,
			CreatedAt:      c.CreatedAt,
		})
	}

	for _, r := range registrations {
		unified = append(unified, UnifiedLead{
			ID:               r.ID,
			Type:             TypeMarketplace,
			Name:             r.Name,
			Email:            r.Email,
			Company:          r.Company,
			Phone:            r.Phone,
			Country:          r.Country,
			Message:          r.Message,
			Status:           stringOrDefault(r.Status, "pending"),
			LeadLevel:        LeadLevel(stringOrDefault(r.LeadLevel, string(LevelInitial))),
			Priority:         Priority(stringOrDefault(r.Priority, string(PriorityMedium))),
			NextAction:       r.NextAction,
			NextActionDate:   r.NextActionDate,
			CreatedAt:        r.CreatedAt,
			CompanyType:      r.CompanyType,
			ProductsInterest: r.ProductsInterest,
			EstimatedVolume:  r.EstimatedVolume,
		})
	}

	// Newest first; stable so equal timestamps keep source iteration order.
	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].CreatedAt.After(unified[j].CreatedAt)
	})

	return unified
}

func stringOrDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
