package service

import (
	"testing"

	"github.com/light-87/Lead-V/config"
)

func TestNewMinioStore(t *testing.T) {
	cfg := &config.MinioConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "outreach",
	}

	store, err := NewMinioStore(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if store.bucket != "outreach" {
		t.Errorf("Expected bucket outreach, got %s", store.bucket)
	}
}

func TestMinioStorePublicURL(t *testing.T) {
	tests := []struct {
		name     string
		useSSL   bool
		endpoint string
		bucket   string
		key      string
		expected string
	}{
		{
			name:     "http url",
			endpoint: "localhost:9000",
			bucket:   "outreach",
			key:      "leads/lead-abc.json",
			expected: "http://localhost:9000/outreach/leads/lead-abc.json",
		},
		{
			name:     "https url",
			useSSL:   true,
			endpoint: "minio.example.com",
			bucket:   "leadv",
			key:      "settings/user-settings.json",
			expected: "https://minio.example.com/leadv/settings/user-settings.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MinioStore{
				bucket: tt.bucket,
				config: &config.MinioConfig{
					Endpoint: tt.endpoint,
					UseSSL:   tt.useSSL,
				},
			}

			result := store.PublicURL(tt.key)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestMinioStoreKeyFromURL(t *testing.T) {
	store := &MinioStore{
		bucket: "outreach",
		config: &config.MinioConfig{Endpoint: "localhost:9000"},
	}

	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:9000/outreach/leads/lead-1.json", "leads/lead-1.json"},
		{"leads/lead-1.json", "leads/lead-1.json"},
		{"https://elsewhere.example.com/outreach/x.json", "https://elsewhere.example.com/outreach/x.json"},
	}

	for _, tt := range tests {
		if got := store.KeyFromURL(tt.in); got != tt.want {
			t.Errorf("KeyFromURL(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
