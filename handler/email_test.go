package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/service"
)

const emailReply = "```json\n" + `{"email_body":"Hi Joe's Cafe, a simple website could bring in new customers.","key_issues":["No website"],"subject_line":"A website for Joe's Cafe"}` + "\n```"

func newEmailRouter(llm service.Completer, repo *service.Repository) *gin.Engine {
	router := gin.New()
	router.POST("/api/generate-email", NewEmailHandler(service.NewEmailService(llm, "Vaibhav"), repo).Generate)
	return router
}

var joesCafe = map[string]any{
	"id":            "joes-cafe-1",
	"name":          "Joe's Cafe",
	"business_type": "cafe",
	"address":       "1 Briggate, Leeds LS1 6HD",
	"phone":         "+441130000001",
	"description":   "Family run cafe",
	"website":       nil,
}

func TestEmailHandlerGenerate(t *testing.T) {
	llm := &fakeCompleter{reply: emailReply}
	repo := newTestRepo()
	router := newEmailRouter(llm, repo)

	w := doJSON(router, "POST", "/api/generate-email", map[string]any{"business": joesCafe})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	email, ok := decode(w)["email"].(map[string]any)
	if !ok {
		t.Fatalf("Expected an email object, got %s", w.Body.String())
	}
	if email["subject_line"] != "A website for Joe's Cafe" {
		t.Errorf("Unexpected subject %v", email["subject_line"])
	}
	if _, ok := email["price"].(float64); !ok {
		t.Error("Expected a price on the email")
	}

	lead, err := repo.GetLead(context.Background(), "joes-cafe-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lead == nil {
		t.Fatal("Expected the email to be recorded on a lead")
	}
	if lead.Status != "email_generated" {
		t.Errorf("Expected status email_generated, got %s", lead.Status)
	}
	if lead.Business == nil || lead.Business.Name != "Joe's Cafe" {
		t.Error("Expected the business to be attached to the lead")
	}
}

func TestEmailHandlerErrors(t *testing.T) {
	tests := []struct {
		name           string
		llm            *fakeCompleter
		body           any
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing business",
			llm:            &fakeCompleter{reply: emailReply},
			body:           map[string]any{"style": "casual"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Business data is required",
		},
		{
			name:           "unknown style",
			llm:            &fakeCompleter{reply: emailReply},
			body:           map[string]any{"business": joesCafe, "style": "shouty"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unparseable reply",
			llm:            &fakeCompleter{reply: "Dear Joe, ..."},
			body:           map[string]any{"business": joesCafe},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to parse email data",
		},
		{
			name:           "upstream failure",
			llm:            &fakeCompleter{err: &service.UpstreamError{Service: "perplexity", Op: "chat completion", StatusCode: 500}},
			body:           map[string]any{"business": joesCafe},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Failed to generate email",
		},
		{
			name:           "network failure",
			llm:            &fakeCompleter{err: errors.New("connection refused")},
			body:           map[string]any{"business": joesCafe},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newEmailRouter(tt.llm, newTestRepo())

			w := doJSON(router, "POST", "/api/generate-email", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" {
				if got := decode(w)["error"]; got != tt.expectedError {
					t.Errorf("Expected error %q, got %v", tt.expectedError, got)
				}
			}
		})
	}
}

func TestEmailHandlerWithoutIDSkipsLead(t *testing.T) {
	repo := newTestRepo()
	router := newEmailRouter(&fakeCompleter{reply: emailReply}, repo)

	w := doJSON(router, "POST", "/api/generate-email", map[string]any{
		"business": map[string]any{"name": "Hair by Ann", "business_type": "salon"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	leads, err := repo.ListLeads(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("Expected no leads, got %d", len(leads))
	}
}
