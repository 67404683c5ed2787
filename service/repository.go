package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
	"github.com/light-87/Lead-V/pkg/prompt"
)

// Key layout of the blob store.
const (
	// SearchesPrefix holds search history, the only documents the memory
	// store may evict.
	SearchesPrefix = "searches/"
	leadsPrefix    = "leads/"
	editsPrefix    = "business-edits/"
	settingsKey    = "settings/user-settings.json"
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidStatus = errors.New("invalid lead status")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func checkID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Repository persists search history, leads, settings and business edits
// as JSON documents in a BlobStore.
type Repository struct {
	store             BlobStore
	defaultCampaignID string
	now               func() time.Time
}

func NewRepository(store BlobStore, defaultCampaignID string) *Repository {
	return &Repository{
		store:             store,
		defaultCampaignID: defaultCampaignID,
		now:               time.Now,
	}
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// SaveSearch stores the businesses of one search run.
func (r *Repository) SaveSearch(ctx context.Context, searchID string, businesses []model.VerifiedBusiness) (string, error) {
	if err := checkID(searchID); err != nil {
		return "", err
	}
	if businesses == nil {
		businesses = []model.VerifiedBusiness{}
	}
	return r.store.PutJSON(ctx, SearchesPrefix+searchID+".json", businesses)
}

// ListSearches returns the saved searches, newest first.
func (r *Repository) ListSearches(ctx context.Context) ([]model.BlobInfo, error) {
	blobs, err := r.store.List(ctx, SearchesPrefix)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(blobs)
	return blobs, nil
}

// SaveLead stamps updatedAt and defaults the status to new.
func (r *Repository) SaveLead(ctx context.Context, lead *model.Lead) (string, error) {
	if err := checkID(lead.BusinessID); err != nil {
		return "", err
	}
	if !model.ValidLeadStatus(lead.Status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, lead.Status)
	}
	if lead.Status == "" {
		lead.Status = model.LeadStatusNew
	}
	lead.UpdatedAt = r.timestamp()
	return r.store.PutJSON(ctx, leadsPrefix+lead.BusinessID+".json", lead)
}

// GetLead returns the lead for businessID, or nil when there is none.
func (r *Repository) GetLead(ctx context.Context, businessID string) (*model.Lead, error) {
	if err := checkID(businessID); err != nil {
		return nil, err
	}
	var lead model.Lead
	err := r.store.GetJSON(ctx, leadsPrefix+businessID+".json", &lead)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListLeads returns every readable lead, most recently stored first.
// Documents that cannot be read are logged and skipped.
func (r *Repository) ListLeads(ctx context.Context) ([]model.Lead, error) {
	blobs, err := r.store.List(ctx, leadsPrefix)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(blobs)

	leads := make([]model.Lead, 0, len(blobs))
	for _, b := range blobs {
		var lead model.Lead
		if err := r.store.GetJSON(ctx, b.URL, &lead); err != nil {
			logger.Warn(ctx, "skipping unreadable lead", "pathname", b.Pathname, "error", err)
			continue
		}
		leads = append(leads, lead)
	}
	return leads, nil
}

func (r *Repository) DeleteLead(ctx context.Context, businessID string) error {
	if err := checkID(businessID); err != nil {
		return err
	}
	return r.store.Delete(ctx, leadsPrefix+businessID+".json")
}

// MarkLeadSent records a successful campaign push. A lead document is
// created when none exists yet.
func (r *Repository) MarkLeadSent(ctx context.Context, businessID, campaignID string, email *model.GeneratedEmail) error {
	lead, err := r.GetLead(ctx, businessID)
	if err != nil {
		return err
	}
	if lead == nil {
		lead = &model.Lead{BusinessID: businessID}
	}
	lead.Status = model.LeadStatusSent
	lead.CampaignID = campaignID
	lead.SentAt = r.timestamp()
	if email != nil {
		lead.Email = email
	}
	_, err = r.SaveLead(ctx, lead)
	return err
}

// RecordEmail attaches a generated email to the business's lead. A lead
// that has not progressed past email_generated moves to email_generated.
func (r *Repository) RecordEmail(ctx context.Context, b *model.VerifiedBusiness, email *model.GeneratedEmail) error {
	lead, err := r.GetLead(ctx, b.ID)
	if err != nil {
		return err
	}
	if lead == nil {
		lead = &model.Lead{BusinessID: b.ID}
	}
	if lead.Business == nil {
		lead.Business = b
	}
	lead.Email = email
	if lead.Status == "" || lead.Status == model.LeadStatusNew {
		lead.Status = model.LeadStatusEmailGenerated
	}
	_, err = r.SaveLead(ctx, lead)
	return err
}

func (r *Repository) SaveSettings(ctx context.Context, s *model.Settings) (string, error) {
	s.UpdatedAt = r.timestamp()
	return r.store.PutJSON(ctx, settingsKey, s)
}

// LoadSettings returns the stored settings, or the defaults when none have
// been saved.
func (r *Repository) LoadSettings(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.store.GetJSON(ctx, settingsKey, &s)
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings(r.defaultCampaignID), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DefaultSettings are served until the operator saves their own.
func DefaultSettings(campaignID string) *model.Settings {
	styles := make(map[string]model.EmailStyle)
	for key, st := range prompt.Styles() {
		styles[key] = model.EmailStyle{Name: st.Name, Description: st.Description, Prompt: st.Prompt}
	}
	return &model.Settings{
		Prompts: model.PromptSet{
			BusinessSearch:  prompt.BusinessSearch,
			EmailGeneration: prompt.EmailGeneration,
		},
		EmailStyle: prompt.StyleNoSite,
		Smartlead: model.SmartleadSettings{
			CampaignID: campaignID,
			Enabled:    campaignID != "",
		},
		EmailStyles: styles,
	}
}

func (r *Repository) SaveEdit(ctx context.Context, edit *model.BusinessEdit) (string, error) {
	if err := checkID(edit.BusinessID); err != nil {
		return "", err
	}
	edit.UpdatedAt = r.timestamp()
	return r.store.PutJSON(ctx, editsPrefix+edit.BusinessID+".json", edit)
}

// GetEdit returns the edit for businessID, or nil when there is none.
func (r *Repository) GetEdit(ctx context.Context, businessID string) (*model.BusinessEdit, error) {
	if err := checkID(businessID); err != nil {
		return nil, err
	}
	var edit model.BusinessEdit
	err := r.store.GetJSON(ctx, editsPrefix+businessID+".json", &edit)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edit, nil
}

func sortNewestFirst(blobs []model.BlobInfo) {
	sort.SliceStable(blobs, func(i, j int) bool {
		if blobs[i].UploadedAt == blobs[j].UploadedAt {
			return blobs[i].Pathname > blobs[j].Pathname
		}
		return blobs[i].UploadedAt > blobs[j].UploadedAt
	})
}
