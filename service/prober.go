package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/light-87/Lead-V/config"
	"github.com/light-87/Lead-V/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DomainProber guesses a business's likely domains and checks whether any
// of them answers.
type DomainProber struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func NewDomainProber(cfg *config.ProberConfig) *DomainProber {
	return &DomainProber{
		// Redirects are followed by the default policy.
		httpClient: &http.Client{},
		timeout:    cfg.Timeout(),
		userAgent:  cfg.UserAgent,
	}
}

// Whitespace includes Unicode space separators, so a no-break space splits
// words like an ordinary space.
var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s\p{Z}\x{FEFF}]`)
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
)

// DomainForms returns the compact and hyphenated forms of a business name.
func DomainForms(name string) (compact, hyphenated string) {
	cleaned := nonAlnumSpace.ReplaceAllString(strings.ToLower(name), "")
	cleaned = strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
	compact = strings.ReplaceAll(cleaned, " ", "")
	hyphenated = strings.ReplaceAll(cleaned, " ", "-")
	return compact, hyphenated
}

// CandidateURLs returns the six URLs probed for a business name.
func CandidateURLs(name string) []string {
	compact, hyphenated := DomainForms(name)
	return []string{
		"https://" + compact + ".co.uk",
		"https://" + compact + ".com",
		"https://" + hyphenated + ".co.uk",
		"https://" + hyphenated + ".com",
		"https://www." + compact + ".co.uk",
		"https://www." + compact + ".com",
	}
}

// Exists reports whether url answers a HEAD request with a 2xx or 3xx status
// within the probe timeout. Any failure counts as absent.
func (p *DomainProber) Exists(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

var errDomainFound = errors.New("domain found")

// HasWebsite probes every candidate URL for name concurrently and reports
// whether any of them exists. Outstanding probes are cancelled as soon as
// one succeeds.
func (p *DomainProber) HasWebsite(ctx context.Context, name string) bool {
	g, gctx := errgroup.WithContext(ctx)
	for _, url := range CandidateURLs(name) {
		g.Go(func() error {
			if p.Exists(gctx, url) {
				logger.Debug(ctx, "candidate domain answered", "business", name, "url", url)
				return errDomainFound
			}
			return nil
		})
	}
	return errors.Is(g.Wait(), errDomainFound)
}
