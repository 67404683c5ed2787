package model

// Stage names one step of the discovery pipeline.
type Stage string

const (
	StageSearching        Stage = "searching"
	StageFound            Stage = "found"
	StageURLCheck         Stage = "url_check"
	StageURLCheckComplete Stage = "url_check_complete"
	StageAIVerify         Stage = "ai_verify"
	StageComplete         Stage = "complete"
	StageError            Stage = "error"
)

// Terminal reports whether no event follows one with this stage.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageError
}

// Stats summarises a finished run.
type Stats struct {
	Initial            int `json:"initial"`
	FilteredByURLCheck int `json:"filteredByUrlCheck"`
	FilteredByAI       int `json:"filteredByAI"`
	Final              int `json:"final"`
}

// ProgressEvent is one unit of the streamed status protocol.
type ProgressEvent struct {
	Stage    Stage   `json:"stage"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`

	Count     *int `json:"count,omitempty"`
	Checked   *int `json:"checked,omitempty"`
	Total     *int `json:"total,omitempty"`
	Verified  *int `json:"verified,omitempty"`
	Filtered  *int `json:"filtered,omitempty"`
	Remaining *int `json:"remaining,omitempty"`

	Businesses []VerifiedBusiness `json:"businesses,omitzero"`
	Stats      *Stats             `json:"stats,omitempty"`
	Error      bool               `json:"error,omitempty"`
}

// SearchRequest is the inbound trigger of a pipeline run.
type SearchRequest struct {
	City              string `json:"city" binding:"required"`
	Count             int    `json:"count" binding:"required,min=1"`
	ExcludeBusinesses string `json:"excludeBusinesses"`
}
