package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// MoveDirection says which neighbor a question swaps with
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

var ErrSurveyNotFound = errors.New("survey not found")

// SurveyBuilder is the in-memory editing state for one survey's question
// list: an ordered list plus a selection. Every operation is a synchronous
// local state transition; nothing here touches the store. Persistence is
// the explicit Save on BuilderService.
type SurveyBuilder struct {
	questions []model.Question
	selected  string // question id, empty when nothing is selected
}

// NewSurveyBuilder starts editing from an existing question list. The
// first question starts selected.
func NewSurveyBuilder(questions []model.Question) *SurveyBuilder {
	b := &SurveyBuilder{questions: questions}
	if len(questions) > 0 {
		b.selected = questions[0].ID
	}
	return b
}

// Questions returns the current ordered list.
func (b *SurveyBuilder) Questions() []model.Question {
	return b.questions
}

// Selected returns the id of the selected question, or empty.
func (b *SurveyBuilder) Selected() string {
	return b.selected
}

// Select marks a question as selected. No-op if the id is not present.
func (b *SurveyBuilder) Select(id string) {
	for _, q := range b.questions {
		if q.ID == id {
			b.selected = id
			return
		}
	}
}

// AddQuestion appends a new question of the given type with type-specific
// defaults and a fresh id, and selects it.
func (b *SurveyBuilder) AddQuestion(t model.QuestionType) model.Question {
	q := model.Question{
		ID:    uuid.New().String(),
		Type:  t,
		Title: model.DefaultQuestionTitle,
	}

	switch t {
	case model.QuestionMultipleChoice:
		q.Options = []string{"Option 1", "Option 2", "Option 3"}
	case model.QuestionLikert:
		q.Scale = model.DefaultLikertScale
	case model.QuestionOpenEnded, model.QuestionYesNo, model.QuestionRating:
		// no extra fields
	}

	b.questions = append(b.questions, q)
	b.selected = q.ID
	return q
}

// RemoveQuestion deletes by id. If the removed question was selected,
// selection falls back to the first remaining question, or clears when the
// list empties. Returns false if the id was not found.
func (b *SurveyBuilder) RemoveQuestion(id string) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}

	b.questions = append(b.questions[:idx], b.questions[idx+1:]...)

	if b.selected == id {
		if len(b.questions) > 0 {
			b.selected = b.questions[0].ID
		} else {
			b.selected = ""
		}
	}
	return true
}

// UpdateQuestion shallow-merges the set fields of patch into the question
// matching id. No-op (returns false) if the id is not found.
func (b *SurveyBuilder) UpdateQuestion(id string, patch model.QuestionPatch) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}

	q := &b.questions[idx]
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.Options != nil {
		q.Options = *patch.Options
	}
	if patch.Scale != nil {
		q.Scale = *patch.Scale
	}
	return true
}

// MoveQuestion swaps the question with its immediate neighbor in the given
// direction. At either boundary it is a no-op, not a wraparound.
func (b *SurveyBuilder) MoveQuestion(id string, dir MoveDirection) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}

	swap := idx
	switch dir {
	case MoveUp:
		swap = idx - 1
	case MoveDown:
		swap = idx + 1
	default:
		return false
	}

	if swap < 0 || swap >= len(b.questions) {
		return false
	}

	b.questions[idx], b.questions[swap] = b.questions[swap], b.questions[idx]
	return true
}

func (b *SurveyBuilder) indexOf(id string) int {
	for i, q := range b.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// LoadFromPersisted deserializes a question list defensively. Question data
// is untyped JSON at rest, so this never returns an error: entries that are
// not objects or carry no recognizable type are dropped, and surviving
// entries get missing fields filled in. The result never contains a
// question with an empty id or empty title.
func LoadFromPersisted(raw []byte) []model.Question {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []model.Question{}
	}

	questions := make([]model.Question, 0, len(entries))
	for _, entry := range entries {
		var q model.Question
		if err := json.Unmarshal(entry, &q); err != nil {
			continue
		}
		if !model.KnownQuestionType(q.Type) {
			continue
		}
		questions = append(questions, SanitizeQuestion(q))
	}
	return questions
}

// SanitizeQuestion fills in the invariant fields: non-empty id, non-empty
// title, and type-appropriate defaults for the variant fields.
func SanitizeQuestion(q model.Question) model.Question {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Title == "" {
		q.Title = model.DefaultQuestionTitle
	}

	switch q.Type {
	case model.QuestionMultipleChoice:
		if q.Options == nil {
			q.Options = []string{}
		}
		q.Scale = 0
	case model.QuestionLikert:
		if q.Scale <= 0 {
			q.Scale = model.DefaultLikertScale
		}
		q.Options = nil
	case model.QuestionOpenEnded, model.QuestionYesNo, model.QuestionRating:
		q.Options = nil
		q.Scale = 0
	}
	return q
}

// BuilderService loads builder state from and saves it back to the survey
// store. The question list is persisted wholesale on the survey document.
type BuilderService struct {
	surveyRepo repository.SurveyRepo
}

// NewBuilderService creates a new builder service
func NewBuilderService(surveyRepo repository.SurveyRepo) *BuilderService {
	return &BuilderService{surveyRepo: surveyRepo}
}

// Load fetches a survey and starts a builder over its (sanitized) questions.
func (s *BuilderService) Load(ctx context.Context, surveyID string) (*model.Survey, *SurveyBuilder, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey == nil {
		return nil, nil, ErrSurveyNotFound
	}

	questions := make([]model.Question, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		if !model.KnownQuestionType(q.Type) {
			continue
		}
		questions = append(questions, SanitizeQuestion(q))
	}

	return survey, NewSurveyBuilder(questions), nil
}

// Save writes the builder's question list onto the survey document. On
// failure the local builder state is left as-is and the error is returned;
// no retry is attempted here.
func (s *BuilderService) Save(ctx context.Context, survey *model.Survey, b *SurveyBuilder) error {
	survey.Questions = b.Questions()
	return s.surveyRepo.Update(ctx, survey)
}
