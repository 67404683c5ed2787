package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
)

var (
	ErrSearchFailed    = errors.New("search failed")
	ErrParseBusinesses = errors.New("failed to parse business data")
)

// SearchService asks the chat model for candidate businesses.
type SearchService struct {
	llm Completer
}

func NewSearchService(llm Completer) *SearchService {
	return &SearchService{llm: llm}
}

type searchReply struct {
	Businesses *[]model.BusinessCandidate `json:"businesses"`
}

// Search sends the rendered search prompt and decodes the candidates from
// the reply. Upstream failures wrap ErrSearchFailed, malformed replies wrap
// ErrParseBusinesses.
func (s *SearchService) Search(ctx context.Context, prompt string) ([]model.BusinessCandidate, error) {
	content, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	candidates, err := ParseBusinesses(content)
	if err != nil {
		logger.Warn(ctx, "unparseable search reply", "error", err, "reply", truncateBody([]byte(content)))
		return nil, err
	}

	valid := candidates[:0]
	for _, c := range candidates {
		if !c.Valid() {
			logger.Warn(ctx, "dropping nameless candidate", "address", c.Address)
			continue
		}
		valid = append(valid, c)
	}
	return valid, nil
}

// ParseBusinesses decodes a {"businesses": [...]} reply, tolerating
// markdown code fences.
func ParseBusinesses(content string) ([]model.BusinessCandidate, error) {
	var reply searchReply
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &reply); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseBusinesses, err)
	}
	if reply.Businesses == nil {
		return nil, fmt.Errorf("%w: missing businesses key", ErrParseBusinesses)
	}
	return *reply.Businesses, nil
}
