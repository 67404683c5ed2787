package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/light-87/Lead-V/config"
	"github.com/light-87/Lead-V/model"
)

var (
	ErrSmartleadNotConfigured = errors.New("smartlead api key not configured")
	ErrCampaignRequired       = errors.New("campaign id is required")
	ErrLeadEmailRequired      = errors.New("lead email is required")
)

// LeadInput is the operator-supplied lead for a campaign push.
type LeadInput struct {
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	CompanyName  string `json:"company_name"`
	Website      string `json:"website"`
	Location     string `json:"location"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
}

// SmartleadLead is one entry of a campaign lead upload.
type SmartleadLead struct {
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	CompanyName  string            `json:"company_name"`
	Website      string            `json:"website"`
	Location     string            `json:"location"`
	PhoneNumber  string            `json:"phone_number"`
	CustomFields map[string]string `json:"custom_fields"`
}

type SmartleadLeadSettings struct {
	IgnoreGlobalBlockList               bool `json:"ignore_global_block_list"`
	IgnoreUnsubscribeList               bool `json:"ignore_unsubscribe_list"`
	IgnoreDuplicateLeadsInOtherCampaign bool `json:"ignore_duplicate_leads_in_other_campaign"`
}

// SmartleadLeadRequest is the POST /campaigns/{id}/leads body.
type SmartleadLeadRequest struct {
	LeadList []SmartleadLead       `json:"lead_list"`
	Settings SmartleadLeadSettings `json:"settings"`
}

// BuildLeadRequest maps a lead and its generated email onto a campaign
// upload. Missing names fall back to the business name, and to "There".
func BuildLeadRequest(lead LeadInput, email *model.GeneratedEmail) SmartleadLeadRequest {
	words := strings.Fields(lead.Name)
	first, last := lead.FirstName, lead.LastName
	if first == "" {
		first = "There"
		if len(words) > 0 {
			first = words[0]
		}
	}
	if last == "" && len(words) > 1 {
		last = strings.Join(words[1:], " ")
	}

	company := lead.CompanyName
	if company == "" {
		company = lead.Name
	}
	location := lead.Location
	if location == "" {
		location = lead.Address
	}

	fields := map[string]string{
		"business_type": lead.BusinessType,
		"address":       lead.Address,
	}
	if email != nil {
		if email.SubjectLine != "" {
			fields["email_subject"] = email.SubjectLine
		}
		if email.EmailBody != "" {
			fields["email_body"] = email.EmailBody
		}
		if email.KeyIssues != nil {
			fields["key_issues"] = strings.Join(email.KeyIssues, ", ")
		}
	}

	return SmartleadLeadRequest{
		LeadList: []SmartleadLead{{
			FirstName:    first,
			LastName:     last,
			Email:        lead.Email,
			CompanyName:  company,
			Website:      lead.Website,
			Location:     location,
			PhoneNumber:  lead.Phone,
			CustomFields: fields,
		}},
	}
}

// SmartleadService pushes leads into Smartlead campaigns.
type SmartleadService struct {
	config     *config.SmartleadConfig
	httpClient *http.Client
}

func NewSmartleadService(cfg *config.SmartleadConfig) *SmartleadService {
	return &SmartleadService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *SmartleadService) Configured() bool {
	return s.config.APIKey != ""
}

// TestConnection lists the account's campaigns.
func (s *SmartleadService) TestConnection(ctx context.Context) (json.RawMessage, error) {
	return s.do(ctx, "list campaigns", http.MethodGet, "/campaigns", nil)
}

func (s *SmartleadService) GetCampaign(ctx context.Context, campaignID string) (json.RawMessage, error) {
	if campaignID == "" {
		return nil, ErrCampaignRequired
	}
	return s.do(ctx, "get campaign", http.MethodGet, "/campaigns/"+url.PathEscape(campaignID), nil)
}

// AddLead adds one lead, carrying its generated email as custom fields, to
// a campaign.
func (s *SmartleadService) AddLead(ctx context.Context, campaignID string, lead LeadInput, email *model.GeneratedEmail) (json.RawMessage, error) {
	if campaignID == "" {
		return nil, ErrCampaignRequired
	}
	if lead.Email == "" {
		return nil, ErrLeadEmailRequired
	}
	return s.do(ctx, "add lead", http.MethodPost, "/campaigns/"+url.PathEscape(campaignID)+"/leads", BuildLeadRequest(lead, email))
}

func (s *SmartleadService) do(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	if !s.Configured() {
		return nil, ErrSmartleadNotConfigured
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + path + "?api_key=" + url.QueryEscape(s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The request URL carries the api key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUpstreamError("smartlead", op, resp.StatusCode, respBody)
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(respBody) {
		return nil, errors.New("failed to parse response: invalid json")
	}
	return json.RawMessage(respBody), nil
}
