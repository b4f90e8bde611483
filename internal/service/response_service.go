package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

var ErrNoAnswers = errors.New("submission contains no answers")

// ResponseService handles response intake. A response is inserted once and
// never mutated; everything derived from it (completion rate, sentiment)
// is computed here at submission time.
type ResponseService struct {
	responseRepo repository.ResponseRepo
	surveyRepo   repository.SurveyRepo
	countCache   cache.ResponseCountCache
	summaryCache cache.SummaryCache
	analyzer     SentimentAnalyzer
	broadcaster  Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(
	responseRepo repository.ResponseRepo,
	surveyRepo repository.SurveyRepo,
	countCache cache.ResponseCountCache,
	summaryCache cache.SummaryCache,
	analyzer SentimentAnalyzer,
) *ResponseService {
	return &ResponseService{
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		countCache:   countCache,
		summaryCache: summaryCache,
		analyzer:     analyzer,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and stores one respondent submission. Partial
// submissions are legal (that is what the completion rate measures);
// individual answers that do not fit their question's type are rejected.
func (s *ResponseService) Submit(ctx context.Context, response *model.SurveyResponse) (string, error) {
	survey, err := s.surveyRepo.GetByID(ctx, response.SurveyID)
	if err != nil {
		return "", err
	}
	if survey == nil {
		return "", ErrSurveyNotFound
	}
	if survey.Status != model.SurveyActive {
		return "", ErrSurveyNotActive
	}
	if len(response.Answers) == 0 {
		return "", ErrNoAnswers
	}

	byID := make(map[string]model.Question, len(survey.Questions))
	for _, q := range survey.Questions {
		byID[q.ID] = q
	}

	answered := 0
	for qid, value := range response.Answers {
		q, ok := byID[qid]
		if !ok {
			return "", fmt.Errorf("answer for unknown question %q", qid)
		}
		if !model.ValidAnswer(q, value) {
			return "", fmt.Errorf("invalid answer for question %q", qid)
		}
		answered++
	}

	if len(survey.Questions) > 0 {
		rate := float64(answered) / float64(len(survey.Questions)) * 100
		response.CompletionRate = &rate
	}

	score := s.analyzer.Score(survey, response.Answers)
	response.SentimentScore = &score

	id, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return "", err
	}

	// Counters and caches are best-effort; the stored row is authoritative
	if s.countCache != nil {
		if err := s.countCache.Increment(ctx, survey.AccountID, survey.ID); err != nil {
			log.Printf("response count increment failed for survey %s: %v", survey.ID, err)
		}
	}
	if s.summaryCache != nil {
		if err := s.summaryCache.Invalidate(ctx, survey.AccountID); err != nil {
			log.Printf("summary invalidation failed for account %s: %v", survey.AccountID, err)
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(survey.ID, "response_received", map[string]interface{}{
			"responseId":     id,
			"surveyId":       survey.ID,
			"completionRate": response.CompletionRate,
			"submittedAt":    response.SubmittedAt,
		})
		s.broadcaster.BroadcastToAccount(survey.AccountID, "summary_invalidated", map[string]string{
			"surveyId": survey.ID,
		})
	}

	return id, nil
}

// ListBySurvey returns all responses for an owned survey.
func (s *ResponseService) ListBySurvey(ctx context.Context, accountID, surveyID string) ([]*model.SurveyResponse, error) {
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
	return s.responseRepo.GetBySurveyID(ctx, surveyID)
}
