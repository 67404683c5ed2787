package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/pkg/prompt"
	"golang.org/x/net/publicsuffix"
)

// Verdict is the outcome of an AI website check.
type Verdict struct {
	HasWebsite bool
	FoundURL   string
	// FoundDomain is the registrable domain of FoundURL, when it has one.
	FoundDomain string
}

// VerifyService asks the chat model whether a business has its own website.
type VerifyService struct {
	llm Completer
}

func NewVerifyService(llm Completer) *VerifyService {
	return &VerifyService{llm: llm}
}

// HasWebsite never fails: when the model cannot be reached or understood the
// business gets the benefit of the doubt and is reported as website-less.
func (s *VerifyService) HasWebsite(ctx context.Context, b model.BusinessCandidate) Verdict {
	p := prompt.Fill(prompt.VerifyWebsite, map[string]any{
		"name":    b.Name,
		"address": b.Address,
	})

	content, err := s.llm.Complete(ctx, p)
	if err != nil {
		logger.Warn(ctx, "ai verification failed", "business", b.Name, "error", err)
		return Verdict{}
	}

	v := ParseVerdict(content)
	logger.Debug(ctx, "ai verification", "business", b.Name, "has_website", v.HasWebsite, "found_url", v.FoundURL)
	return v
}

// ParseVerdict reads a verification reply. Any valid JSON reply is judged
// only by a has_website field equal to the string "YES"; a reply that is not
// JSON at all falls back to looking for "YES" in the text.
func ParseVerdict(content string) Verdict {
	body := []byte(StripCodeFences(content))
	if !json.Valid(body) {
		return Verdict{HasWebsite: strings.Contains(strings.ToUpper(content), "YES")}
	}

	// Non-object JSON and mistyped fields decode to a "no" verdict.
	var reply map[string]any
	_ = json.Unmarshal(body, &reply)
	hasWebsite, _ := reply["has_website"].(string)
	foundURL, _ := reply["found_url"].(string)

	v := Verdict{
		HasWebsite: hasWebsite == "YES",
		FoundURL:   strings.TrimSpace(foundURL),
	}
	v.FoundDomain = registrableDomain(v.FoundURL)
	return v
}

func registrableDomain(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil {
		return ""
	}
	return domain
}
