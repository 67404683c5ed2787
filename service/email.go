package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/pkg/prompt"
)

var (
	ErrUnknownStyle = errors.New("unknown email style")
	ErrParseEmail   = errors.New("failed to parse email data")
)

// EmailService writes outreach emails for verified businesses.
type EmailService struct {
	llm       Completer
	signature string
	pick      func(n int) int
}

func NewEmailService(llm Completer, signature string) *EmailService {
	return &EmailService{llm: llm, signature: signature}
}

// Generate writes an email for b. A non-empty customPrompt wins over style;
// with neither the default email prompt is used.
func (s *EmailService) Generate(ctx context.Context, b model.BusinessCandidate, customPrompt, style string) (*model.GeneratedEmail, error) {
	template := customPrompt
	if template == "" && style != "" {
		st, ok := prompt.Styles()[style]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
		}
		template = st.Prompt
	}
	if template == "" {
		template = prompt.EmailGeneration
	}

	price := DeterminePrice(b.BusinessType, b.Address, s.pick)
	p := prompt.Fill(template, map[string]any{
		"name":          b.Name,
		"business_type": b.BusinessType,
		"address":       b.Address,
		"phone":         b.Phone,
		"email":         b.Email,
		"description":   b.Description,
		"price":         price,
		"signature":     s.signature,
	})

	content, err := s.llm.Complete(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to generate email: %w", err)
	}

	var email model.GeneratedEmail
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &email); err != nil {
		logger.Warn(ctx, "unparseable email reply", "business", b.Name, "reply", truncateBody([]byte(content)))
		return nil, fmt.Errorf("%w: %w", ErrParseEmail, err)
	}
	email.Price = price

	logger.Info(ctx, "email generated", "business", b.Name, "price", price, "style", style)
	return &email, nil
}
