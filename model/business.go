package model

import (
	"encoding/json"
	"strings"
)

// BusinessCandidate is a business returned by the AI search, not yet
// verified as website-less.
type BusinessCandidate struct {
	BusinessType string `json:"business_type"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Description  string `json:"description"`
}

// Valid reports whether the candidate carries the fields the pipeline needs.
func (b BusinessCandidate) Valid() bool {
	return strings.TrimSpace(b.Name) != ""
}

// VerifiedBusiness is a candidate that survived both website filters.
type VerifiedBusiness struct {
	BusinessCandidate
	ID string `json:"id"`
	// Website is always null for a survivor.
	Website   *string `json:"website"`
	Timestamp string  `json:"timestamp"`
}

// BusinessEdit holds operator corrections and notes for a business.
type BusinessEdit struct {
	BusinessID   string `json:"businessId"`
	Name         string `json:"name,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Description  string `json:"description,omitempty"`
	Notes        string `json:"notes,omitempty"`
	UpdatedAt    string `json:"updatedAt"`

	Extra map[string]json.RawMessage `json:"-"`
}
