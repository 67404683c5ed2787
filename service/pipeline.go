package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/pkg/prompt"
)

// BusinessSearcher finds candidate businesses for a rendered prompt.
type BusinessSearcher interface {
	Search(ctx context.Context, prompt string) ([]model.BusinessCandidate, error)
}

// WebsiteProber is the direct URL check.
type WebsiteProber interface {
	HasWebsite(ctx context.Context, name string) bool
}

// WebsiteVerifier is the AI website check.
type WebsiteVerifier interface {
	HasWebsite(ctx context.Context, b model.BusinessCandidate) Verdict
}

// Progress milestones of a run.
const (
	progressSearching     = 0
	progressFound         = 20
	progressURLCheckStart = 30
	progressURLCheckSpan  = 20
	progressURLCheckDone  = 50
	progressAIStart       = 55
	progressAISpan        = 35
	progressComplete      = 100
)

// Pipeline runs the discovery workflow: search, direct URL filter, AI
// filter, finalize.
type Pipeline struct {
	searcher BusinessSearcher
	prober   WebsiteProber
	verifier WebsiteVerifier

	searchTemplate string
	now            func() time.Time
	newID          func() string
}

func NewPipeline(searcher BusinessSearcher, prober WebsiteProber, verifier WebsiteVerifier) *Pipeline {
	return &Pipeline{
		searcher:       searcher,
		prober:         prober,
		verifier:       verifier,
		searchTemplate: prompt.BusinessSearch,
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
	}
}

// Run starts a run and returns its events. The channel is closed after the
// terminal complete or error event, or as soon as ctx is cancelled, in which
// case no further events are sent.
func (p *Pipeline) Run(ctx context.Context, req model.SearchRequest) <-chan model.ProgressEvent {
	events := make(chan model.ProgressEvent)
	ctx = logger.WithRunID(ctx, p.newID())

	go func() {
		defer close(events)
		r := &run{Pipeline: p, ctx: ctx, events: events}
		r.execute(req)
	}()

	return events
}

type run struct {
	*Pipeline
	ctx      context.Context
	events   chan<- model.ProgressEvent
	progress float64
}

var errCancelled = errors.New("run cancelled")

// emit delivers ev unless the run has been cancelled.
func (r *run) emit(ev model.ProgressEvent) error {
	if r.ctx.Err() != nil {
		return errCancelled
	}
	select {
	case r.events <- ev:
		r.progress = ev.Progress
		return nil
	case <-r.ctx.Done():
		return errCancelled
	}
}

func (r *run) fail(message string) {
	_ = r.emit(model.ProgressEvent{
		Stage:    model.StageError,
		Message:  message,
		Progress: r.progress,
		Error:    true,
	})
}

func (r *run) execute(req model.SearchRequest) {
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error(r.ctx, "search run panicked", "panic", rec)
			r.fail(fmt.Sprint(rec))
		}
	}()

	logger.Info(r.ctx, "search run started", "city", req.City, "count", req.Count)
	err := r.stages(req)
	switch {
	case errors.Is(err, errCancelled):
		logger.Info(r.ctx, "search run cancelled", "elapsed_ms", time.Since(started).Milliseconds())
	case err != nil:
		logger.Error(r.ctx, "search run failed", "error", err, "elapsed_ms", time.Since(started).Milliseconds())
		r.fail(failureMessage(err))
	default:
		logger.Info(r.ctx, "search run completed", "elapsed_ms", time.Since(started).Milliseconds())
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, ErrParseBusinesses):
		return "Failed to parse business data"
	case errors.Is(err, ErrSearchFailed):
		return "Failed to search businesses"
	default:
		return err.Error()
	}
}

func (r *run) stages(req model.SearchRequest) error {
	if err := r.emit(model.ProgressEvent{
		Stage:    model.StageSearching,
		Message:  fmt.Sprintf("Searching for businesses in %s...", req.City),
		Progress: progressSearching,
	}); err != nil {
		return err
	}

	searchPrompt := prompt.Fill(r.searchTemplate, map[string]any{
		"city":              req.City,
		"count":             req.Count,
		"excludeBusinesses": prompt.ExclusionClause(req.ExcludeBusinesses),
	})
	candidates, err := r.searcher.Search(r.ctx, searchPrompt)
	if err != nil {
		if r.ctx.Err() != nil {
			return errCancelled
		}
		return err
	}

	if err := r.emit(model.ProgressEvent{
		Stage:    model.StageFound,
		Message:  fmt.Sprintf("Found %d potential businesses. Verifying they have no websites...", len(candidates)),
		Progress: progressFound,
		Count:    intPtr(len(candidates)),
	}); err != nil {
		return err
	}

	remaining, err := r.urlCheck(candidates)
	if err != nil {
		return err
	}
	filteredByURL := len(candidates) - len(remaining)

	if err := r.emit(model.ProgressEvent{
		Stage: model.StageURLCheckComplete,
		Message: fmt.Sprintf("Direct URL check complete. Filtered out %d businesses with websites. Verifying remaining %d...",
			filteredByURL, len(remaining)),
		Progress:  progressURLCheckDone,
		Filtered:  intPtr(filteredByURL),
		Remaining: intPtr(len(remaining)),
	}); err != nil {
		return err
	}

	survivors, err := r.aiVerify(remaining)
	if err != nil {
		return err
	}

	timestamp := r.now().UTC().Format(time.RFC3339)
	verified := make([]model.VerifiedBusiness, 0, len(survivors))
	for _, b := range survivors {
		verified = append(verified, model.VerifiedBusiness{
			BusinessCandidate: b,
			ID:                r.newID(),
			Timestamp:         timestamp,
		})
	}

	return r.emit(model.ProgressEvent{
		Stage:      model.StageComplete,
		Message:    fmt.Sprintf("Verification complete! Found %d businesses without websites.", len(verified)),
		Progress:   progressComplete,
		Businesses: verified,
		Stats: &model.Stats{
			Initial:            len(candidates),
			FilteredByURLCheck: filteredByURL,
			FilteredByAI:       len(remaining) - len(survivors),
			Final:              len(verified),
		},
	})
}

// urlCheck drops candidates whose guessed domains answer. Candidates are
// checked one at a time.
func (r *run) urlCheck(candidates []model.BusinessCandidate) ([]model.BusinessCandidate, error) {
	if err := r.emit(model.ProgressEvent{
		Stage:    model.StageURLCheck,
		Message:  "Checking for direct website URLs...",
		Progress: progressURLCheckStart,
	}); err != nil {
		return nil, err
	}

	total := len(candidates)
	var remaining []model.BusinessCandidate
	for i, b := range candidates {
		if r.prober.HasWebsite(r.ctx, b.Name) {
			logger.Info(r.ctx, "direct website found", "business", b.Name)
		} else {
			remaining = append(remaining, b)
		}
		if r.ctx.Err() != nil {
			return nil, errCancelled
		}

		if err := r.emit(model.ProgressEvent{
			Stage:    model.StageURLCheck,
			Message:  fmt.Sprintf("Checked %d/%d businesses for direct URLs...", i+1, total),
			Progress: interpolate(progressURLCheckStart, progressURLCheckSpan, i+1, total),
			Checked:  intPtr(i + 1),
			Total:    intPtr(total),
		}); err != nil {
			return nil, err
		}
	}
	return remaining, nil
}

// aiVerify keeps the candidates the model confirms have no website.
func (r *run) aiVerify(candidates []model.BusinessCandidate) ([]model.BusinessCandidate, error) {
	if err := r.emit(model.ProgressEvent{
		Stage:    model.StageAIVerify,
		Message:  "Double-checking with AI verification...",
		Progress: progressAIStart,
	}); err != nil {
		return nil, err
	}

	total := len(candidates)
	survivors := make([]model.BusinessCandidate, 0, total)
	for i, b := range candidates {
		verdict := r.verifier.HasWebsite(r.ctx, b)
		if r.ctx.Err() != nil {
			return nil, errCancelled
		}
		if verdict.HasWebsite {
			logger.Info(r.ctx, "ai found website", "business", b.Name, "url", verdict.FoundURL, "domain", verdict.FoundDomain)
		} else {
			survivors = append(survivors, b)
		}

		if err := r.emit(model.ProgressEvent{
			Stage:    model.StageAIVerify,
			Message:  fmt.Sprintf("AI verified %d/%d businesses...", i+1, total),
			Progress: interpolate(progressAIStart, progressAISpan, i+1, total),
			Checked:  intPtr(i + 1),
			Total:    intPtr(total),
			Verified: intPtr(len(survivors)),
		}); err != nil {
			return nil, err
		}
	}
	return survivors, nil
}

func interpolate(start, span float64, done, total int) float64 {
	if total == 0 {
		return start
	}
	return start + span*float64(done)/float64(total)
}

func intPtr(n int) *int {
	return &n
}
