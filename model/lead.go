package model

// Lead status constants
const (
	LeadStatusNew            = "new"
	LeadStatusEmailGenerated = "email_generated"
	LeadStatusSent           = "sent"
	LeadStatusReplied        = "replied"
	LeadStatusConverted      = "converted"
	LeadStatusNotInterested  = "not_interested"
)

// ValidLeadStatus reports whether s is a known lead status. Empty is
// accepted and treated as new.
func ValidLeadStatus(s string) bool {
	switch s {
	case "", LeadStatusNew, LeadStatusEmailGenerated, LeadStatusSent,
		LeadStatusReplied, LeadStatusConverted, LeadStatusNotInterested:
		return true
	}
	return false
}

// Lead tracks one business through the outreach lifecycle.
type Lead struct {
	BusinessID string            `json:"businessId"`
	Business   *VerifiedBusiness `json:"business,omitempty"`
	Status     string            `json:"status"`
	Email      *GeneratedEmail   `json:"email,omitempty"`
	CampaignID string            `json:"campaignId,omitempty"`
	SentAt     string            `json:"sentAt,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	UpdatedAt  string            `json:"updatedAt"`
}

// GeneratedEmail is the LLM-written outreach email.
type GeneratedEmail struct {
	EmailBody   string   `json:"email_body"`
	KeyIssues   []string `json:"key_issues"`
	SubjectLine string   `json:"subject_line"`
	Price       int      `json:"price,omitempty"`
}
