package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/service"
)

func newStoreRouter(repo *service.Repository) *gin.Engine {
	h := NewStoreHandler(repo)
	router := gin.New()
	router.GET("/api/data", h.ListSearches)
	router.POST("/api/data", h.SaveSearch)
	router.GET("/api/leads", h.ListLeads)
	router.POST("/api/leads", h.SaveLead)
	router.DELETE("/api/leads/:id", h.DeleteLead)
	router.GET("/api/settings", h.GetSettings)
	router.POST("/api/settings", h.SaveSettings)
	router.GET("/api/business-edit", h.GetEdit)
	router.POST("/api/business-edit", h.SaveEdit)
	return router
}

func TestStoreHandlerSearchHistory(t *testing.T) {
	router := newStoreRouter(newTestRepo())

	w := doJSON(router, "POST", "/api/data", map[string]any{
		"searchId":   "search-1",
		"businesses": []map[string]any{{"id": "b1", "name": "Hair by Ann", "website": nil}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if url := decode(w)["url"]; url != "memory://searches/search-1.json" {
		t.Errorf("Unexpected url %v", url)
	}

	w = doJSON(router, "GET", "/api/data", nil)
	history, _ := decode(w)["history"].([]any)
	if len(history) != 1 {
		t.Fatalf("Expected 1 saved search, got %d", len(history))
	}
	if entry := history[0].(map[string]any); entry["pathname"] != "searches/search-1.json" {
		t.Errorf("Unexpected history entry %v", entry)
	}
}

func TestStoreHandlerValidation(t *testing.T) {
	router := newStoreRouter(newTestRepo())

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"search without businesses", "POST", "/api/data", map[string]any{"searchId": "s1"}},
		{"search with bad id", "POST", "/api/data", map[string]any{"searchId": "../etc", "businesses": []any{}}},
		{"lead without business id", "POST", "/api/leads", map[string]any{"leadData": map[string]any{"status": "new"}}},
		{"lead with bad status", "POST", "/api/leads", map[string]any{"leadData": map[string]any{"businessId": "b1", "status": "ghosted"}}},
		{"settings missing", "POST", "/api/settings", map[string]any{}},
		{"edit without edits", "POST", "/api/business-edit", map[string]any{"businessId": "b1"}},
		{"edit lookup without id", "GET", "/api/business-edit", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, tt.method, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestStoreHandlerLeads(t *testing.T) {
	router := newStoreRouter(newTestRepo())

	w := doJSON(router, "POST", "/api/leads", map[string]any{
		"leadData": map[string]any{"businessId": "b1", "notes": "call back Tuesday"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/leads", nil)
	leads, _ := decode(w)["leads"].([]any)
	if len(leads) != 1 {
		t.Fatalf("Expected 1 lead, got %d", len(leads))
	}
	lead := leads[0].(map[string]any)
	if lead["status"] != "new" {
		t.Errorf("Expected default status new, got %v", lead["status"])
	}
	if lead["updatedAt"] == "" {
		t.Error("Expected updatedAt to be stamped")
	}

	w = doJSON(router, "DELETE", "/api/leads/b1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	w = doJSON(router, "GET", "/api/leads", nil)
	if leads, _ := decode(w)["leads"].([]any); len(leads) != 0 {
		t.Errorf("Expected no leads after delete, got %d", len(leads))
	}
}

func TestStoreHandlerSettings(t *testing.T) {
	router := newStoreRouter(newTestRepo())

	w := doJSON(router, "GET", "/api/settings", nil)
	settings, _ := decode(w)["settings"].(map[string]any)
	if settings["emailStyle"] != "nosite" {
		t.Errorf("Expected default style nosite, got %v", settings["emailStyle"])
	}

	w = doJSON(router, "POST", "/api/settings", map[string]any{
		"settings": map[string]any{"emailStyle": "casual", "theme": "dark"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/settings", nil)
	settings, _ = decode(w)["settings"].(map[string]any)
	if settings["emailStyle"] != "casual" {
		t.Errorf("Expected saved style casual, got %v", settings["emailStyle"])
	}
	if settings["theme"] != "dark" {
		t.Errorf("Expected unknown settings fields to be kept, got %v", settings["theme"])
	}
}

func TestStoreHandlerBusinessEdit(t *testing.T) {
	router := newStoreRouter(newTestRepo())

	w := doJSON(router, "GET", "/api/business-edit?businessId=b1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if edits, ok := decode(w)["edits"]; !ok || edits != nil {
		t.Errorf("Expected null edits, got %v", edits)
	}

	w = doJSON(router, "POST", "/api/business-edit", map[string]any{
		"businessId": "b1",
		"edits":      map[string]any{"phone": "+441130000009"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(router, "GET", "/api/business-edit?businessId=b1", nil)
	edits, _ := decode(w)["edits"].(map[string]any)
	if edits["phone"] != "+441130000009" || edits["businessId"] != "b1" {
		t.Errorf("Unexpected edits %v", edits)
	}
}
