package service

import (
	"context"
	"errors"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

var (
	ErrNotSurveyOwner   = errors.New("survey belongs to another account")
	ErrUnknownStatus    = errors.New("unknown survey status")
	ErrSurveyNotActive  = errors.New("survey is not accepting responses")
	ErrEmptySurveyTitle = errors.New("survey title is required")
)

// SurveyService handles survey CRUD operations
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
	}
}

// Create creates a new survey in draft status. Incoming questions pass
// through the same defensive sanitizer as the loader.
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	if survey.Title == "" {
		return "", ErrEmptySurveyTitle
	}
	if survey.Status == "" {
		survey.Status = model.SurveyDraft
	}
	if !model.KnownSurveyStatus(survey.Status) {
		return "", ErrUnknownStatus
	}

	survey.Questions = sanitizeAll(survey.Questions)
	return s.surveyRepo.Create(ctx, survey)
}

// GetOwned retrieves a survey and checks it belongs to the account.
func (s *SurveyService) GetOwned(ctx context.Context, accountID, surveyID string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if survey.AccountID != accountID {
		return nil, ErrNotSurveyOwner
	}
	return survey, nil
}

// GetByID retrieves a survey without an ownership check (public intake path).
func (s *SurveyService) GetByID(ctx context.Context, surveyID string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}

// ListByAccount retrieves all surveys for an account
func (s *SurveyService) ListByAccount(ctx context.Context, accountID string) ([]*model.Survey, error) {
	return s.surveyRepo.GetByAccountID(ctx, accountID)
}

// Update replaces a survey document, questions included.
func (s *SurveyService) Update(ctx context.Context, accountID string, survey *model.Survey) error {
	existing, err := s.GetOwned(ctx, accountID, survey.ID)
	if err != nil {
		return err
	}
	if survey.Title == "" {
		return ErrEmptySurveyTitle
	}
	if survey.Status == "" {
		survey.Status = existing.Status
	}
	if !model.KnownSurveyStatus(survey.Status) {
		return ErrUnknownStatus
	}

	survey.AccountID = existing.AccountID
	survey.CreatedAt = existing.CreatedAt
	survey.Questions = sanitizeAll(survey.Questions)
	return s.surveyRepo.Update(ctx, survey)
}

// SetStatus moves a survey to any status. Transitions are user-triggered;
// there is no enforced state machine, so any status may follow any other.
func (s *SurveyService) SetStatus(ctx context.Context, accountID, surveyID string, status model.SurveyStatus) error {
	if !model.KnownSurveyStatus(status) {
		return ErrUnknownStatus
	}
	if _, err := s.GetOwned(ctx, accountID, surveyID); err != nil {
		return err
	}
	return s.surveyRepo.UpdateStatus(ctx, surveyID, status)
}

// Delete removes a survey
func (s *SurveyService) Delete(ctx context.Context, accountID, surveyID string) error {
	if _, err := s.GetOwned(ctx, accountID, surveyID); err != nil {
		return err
	}
	return s.surveyRepo.Delete(ctx, surveyID)
}

func sanitizeAll(questions []model.Question) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if !model.KnownQuestionType(q.Type) {
			continue
		}
		out = append(out, SanitizeQuestion(q))
	}
	return out
}
