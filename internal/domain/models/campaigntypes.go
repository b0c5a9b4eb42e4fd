// internal/domain/models/campaigntypes.go
package models

// Canonical campaign category identifiers.
const (
	CategoryRecycling  = "recycling"
	CategoryAwareness  = "awareness"
	CategoryCleanup    = "cleanup"
	CategoryInnovation = "innovation"
	CategoryEducation  = "education"
)

// CampaignCategories is the single source of truth for the category enum
// (request validation and the collection's $jsonSchema both read it).
var CampaignCategories = []string{
	CategoryRecycling,
	CategoryAwareness,
	CategoryCleanup,
	CategoryInnovation,
	CategoryEducation,
}

// Campaign lifecycle states.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// CampaignStatuses lists every lifecycle state.
var CampaignStatuses = []string{
	StatusDraft,
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusActive,
	StatusCompleted,
}

// IsCampaignStatus reports whether s names a lifecycle state.
func IsCampaignStatus(s string) bool {
	for _, v := range CampaignStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsCampaignCategory reports whether s names a campaign category.
func IsCampaignCategory(s string) bool {
	for _, v := range CampaignCategories {
		if v == s {
			return true
		}
	}
	return false
}
