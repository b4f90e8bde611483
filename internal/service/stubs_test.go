package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/model"
)

// In-memory doubles for the repository and cache interfaces.

type stubSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
	nextID  int
	failAll bool
}

func newStubSurveyRepo() *stubSurveyRepo {
	return &stubSurveyRepo{surveys: make(map[string]*model.Survey)}
}

func (r *stubSurveyRepo) Create(_ context.Context, survey *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return "", fmt.Errorf("store unavailable")
	}
	r.nextID++
	survey.ID = fmt.Sprintf("sv%d", r.nextID)
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = time.Now()
	copied := *survey
	r.surveys[survey.ID] = &copied
	return survey.ID, nil
}

func (r *stubSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := *survey
	return &copied, nil
}

func (r *stubSurveyRepo) GetByAccountID(_ context.Context, accountID string) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Survey
	for _, survey := range r.surveys {
		if survey.AccountID == accountID {
			copied := *survey
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubSurveyRepo) Update(_ context.Context, survey *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return fmt.Errorf("store unavailable")
	}
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *stubSurveyRepo) UpdateStatus(_ context.Context, id string, status model.SurveyStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if survey, ok := r.surveys[id]; ok {
		survey.Status = status
	}
	return nil
}

func (r *stubSurveyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surveys, id)
	return nil
}

type stubResponseRepo struct {
	mu        sync.Mutex
	responses []*model.SurveyResponse
	nextID    int
}

func newStubResponseRepo() *stubResponseRepo {
	return &stubResponseRepo{}
}

func (r *stubResponseRepo) Create(_ context.Context, response *model.SurveyResponse) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	response.ID = fmt.Sprintf("resp%d", r.nextID)
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	copied := *response
	r.responses = append(r.responses, &copied)
	return response.ID, nil
}

func (r *stubResponseRepo) GetByID(_ context.Context, id string) (*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			copied := *resp
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubResponseRepo) GetBySurveyID(_ context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			copied := *resp
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) GetBySurveyIDs(_ context.Context, surveyIDs []string, from, to time.Time) ([]*model.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(surveyIDs))
	for _, id := range surveyIDs {
		ids[id] = true
	}
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if !ids[resp.SurveyID] {
			continue
		}
		if !from.IsZero() && resp.SubmittedAt.Before(from) {
			continue
		}
		if !to.IsZero() && resp.SubmittedAt.After(to) {
			continue
		}
		copied := *resp
		out = append(out, &copied)
	}
	return out, nil
}

func (r *stubResponseRepo) CountBySurveyID(_ context.Context, surveyID string) (int64, error) {
	responses, _ := r.GetBySurveyID(context.Background(), surveyID)
	return int64(len(responses)), nil
}

type stubSummaryCache struct {
	mu      sync.Mutex
	entries map[string]*model.AnalyticsSummary
}

func newStubSummaryCache() *stubSummaryCache {
	return &stubSummaryCache{entries: make(map[string]*model.AnalyticsSummary)}
}

func (c *stubSummaryCache) Get(_ context.Context, accountID, windowKey string) (*model.AnalyticsSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[accountID+":"+windowKey], nil
}

func (c *stubSummaryCache) Set(_ context.Context, accountID, windowKey string, summary *model.AnalyticsSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[accountID+":"+windowKey] = summary
	return nil
}

func (c *stubSummaryCache) Invalidate(_ context.Context, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if len(key) >= len(accountID) && key[:len(accountID)] == accountID {
			delete(c.entries, key)
		}
	}
	return nil
}

type stubCountCache struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newStubCountCache() *stubCountCache {
	return &stubCountCache{counts: make(map[string]int64)}
}

func (c *stubCountCache) Increment(_ context.Context, accountID, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[accountID+":"+surveyID]++
	return nil
}

func (c *stubCountCache) GetTop(_ context.Context, accountID string, limit int) ([]cache.SurveyCount, error) {
	return nil, nil
}

func (c *stubCountCache) GetCount(_ context.Context, accountID, surveyID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[accountID+":"+surveyID], nil
}

type stubShareCache struct {
	mu    sync.Mutex
	links map[string]*model.ShareLink
}

func newStubShareCache() *stubShareCache {
	return &stubShareCache{links: make(map[string]*model.ShareLink)}
}

func (c *stubShareCache) Set(_ context.Context, link *model.ShareLink, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *link
	c.links[link.Token] = &copied
	return nil
}

func (c *stubShareCache) Get(_ context.Context, token string) (*model.ShareLink, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	link, ok := c.links[token]
	if !ok {
		return nil, nil
	}
	copied := *link
	return &copied, nil
}

func (c *stubShareCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.links, token)
	return nil
}

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*model.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, account *model.Account) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	account.ID = fmt.Sprintf("acct%d", r.nextID)
	copied := *account
	r.accounts[account.ID] = &copied
	return account.ID, nil
}

func (r *stubAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r *stubAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

type stubBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *stubBroadcaster) BroadcastToSurvey(surveyID, msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, msgType+":"+surveyID)
}

func (b *stubBroadcaster) BroadcastToAccount(accountID, msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, msgType+":"+accountID)
}

type fixedAnalyzer struct {
	score float64
}

func (a fixedAnalyzer) Score(_ *model.Survey, _ map[string]string) float64 {
	return a.score
}

func floatPtr(v float64) *float64 {
	return &v
}
