package model

import "encoding/json"

// Settings holds operator preferences and prompt overrides.
type Settings struct {
	Prompts     PromptSet             `json:"prompts"`
	EmailStyle  string                `json:"emailStyle"`
	Smartlead   SmartleadSettings     `json:"smartlead"`
	EmailStyles map[string]EmailStyle `json:"emailStyles"`
	UpdatedAt   string                `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type PromptSet struct {
	BusinessSearch  string `json:"businessSearch"`
	EmailGeneration string `json:"emailGeneration"`
}

type SmartleadSettings struct {
	CampaignID string `json:"campaignId"`
	Enabled    bool   `json:"enabled"`
}

// EmailStyle is a named email prompt template.
type EmailStyle struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt"`
}

// BlobInfo describes one stored document.
type BlobInfo struct {
	URL        string `json:"url"`
	Pathname   string `json:"pathname"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}
