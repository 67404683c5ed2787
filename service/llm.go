package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/light-87/Lead-V/config"
	"golang.org/x/time/rate"
)

// Completer sends a single user prompt to a chat model and returns the
// reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var ErrEmptyCompletion = errors.New("no completion returned")

// UpstreamError is a sanitized summary of a non-2xx response from a third
// party API. Only a truncated body snippet is kept.
type UpstreamError struct {
	Service    string
	Op         string
	StatusCode int
	Snippet    string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s api error: op=%s status=%d", e.Service, e.Op, e.StatusCode)
	if e.Snippet != "" {
		msg += " body=" + e.Snippet
	}
	return msg
}

func newUpstreamError(service, op string, status int, body []byte) *UpstreamError {
	return &UpstreamError{
		Service:    service,
		Op:         op,
		StatusCode: status,
		Snippet:    truncateBody(body),
	}
}

func truncateBody(body []byte) string {
	const max = 256
	s := string(body)
	if len(s) > max {
		s = s[:max] + "..."
	}
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

var codeFence = regexp.MustCompile("```(?:json)?\\n?")

// StripCodeFences removes markdown code fences the model wraps around JSON.
func StripCodeFences(content string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(content, ""))
}

// ChatMessage is one message of a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the chat completion request body.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the subset of the chat completion response we read.
type ChatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// PerplexityService talks to an OpenAI-compatible chat completion endpoint.
type PerplexityService struct {
	config     *config.PerplexityConfig
	httpClient *http.Client
}

func NewPerplexityService(cfg *config.PerplexityConfig) *PerplexityService {
	return &PerplexityService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Complete sends prompt as a single user message.
func (s *PerplexityService) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:    s.config.Model,
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.config.APIURL, "/")+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newUpstreamError("perplexity", "chat completion", resp.StatusCode, body)
	}

	var result ChatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}

type pacedCompleter struct {
	next    Completer
	limiter *rate.Limiter
}

// Paced limits next to rps calls per second across all callers. A
// non-positive rps disables pacing.
func Paced(next Completer, rps float64) Completer {
	if rps <= 0 {
		return next
	}
	return &pacedCompleter{next: next, limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (p *pacedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.next.Complete(ctx, prompt)
}

// NewCompleter builds the configured chat backend, paced by llm.rate_limit_rps.
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	var c Completer
	switch cfg.LLM.Provider {
	case "perplexity":
		if cfg.Perplexity.APIKey == "" {
			return nil, errors.New("perplexity api key is required")
		}
		c = NewPerplexityService(&cfg.Perplexity)
	case "gemini":
		g, err := NewGeminiService(ctx, &cfg.Gemini)
		if err != nil {
			return nil, err
		}
		c = g
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
	return Paced(c, cfg.LLM.RateLimitRPS), nil
}
