package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/model"
)

func TestCreateSurveyDefaultsAndSanitizes(t *testing.T) {
	repo := newStubSurveyRepo()
	svc := NewSurveyService(repo)

	id, err := svc.Create(context.Background(), &model.Survey{
		AccountID: "acct1",
		Title:     "Churn Survey",
		Questions: []model.Question{
			{Type: model.QuestionLikert, Title: "Agree?"},       // missing id and scale
			{Type: "matrix", Title: "Dropped"},                  // unknown type
			{ID: "q2", Type: model.QuestionOpenEnded},           // missing title
		},
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.SurveyDraft, stored.Status, "new surveys default to draft")
	require.Len(t, stored.Questions, 2)
	assert.NotEmpty(t, stored.Questions[0].ID)
	assert.Equal(t, model.DefaultLikertScale, stored.Questions[0].Scale)
	assert.Equal(t, model.DefaultQuestionTitle, stored.Questions[1].Title)
}

func TestCreateSurveyRequiresTitle(t *testing.T) {
	svc := NewSurveyService(newStubSurveyRepo())

	_, err := svc.Create(context.Background(), &model.Survey{AccountID: "acct1"})
	assert.ErrorIs(t, err, ErrEmptySurveyTitle)
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	repo := newStubSurveyRepo()
	svc := NewSurveyService(repo)

	id, err := svc.Create(context.Background(), &model.Survey{AccountID: "acct1", Title: "T"})
	require.NoError(t, err)

	// There is no transition graph; completed back to draft is legal
	transitions := []model.SurveyStatus{
		model.SurveyActive, model.SurveyCompleted, model.SurveyDraft, model.SurveyPaused, model.SurveyActive,
	}
	for _, status := range transitions {
		require.NoError(t, svc.SetStatus(context.Background(), "acct1", id, status))
		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}

	assert.ErrorIs(t, svc.SetStatus(context.Background(), "acct1", id, "archived"), ErrUnknownStatus)
	assert.ErrorIs(t, svc.SetStatus(context.Background(), "intruder", id, model.SurveyActive), ErrNotSurveyOwner)
}

func TestUpdatePreservesOwnerAndCreation(t *testing.T) {
	repo := newStubSurveyRepo()
	svc := NewSurveyService(repo)

	id, err := svc.Create(context.Background(), &model.Survey{AccountID: "acct1", Title: "Before"})
	require.NoError(t, err)
	created, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	err = svc.Update(context.Background(), "acct1", &model.Survey{
		ID:    id,
		Title: "After",
		// Attempt to steal the survey; ignored
		AccountID: "intruder",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Title)
	assert.Equal(t, "acct1", stored.AccountID)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
}

func TestGetOwnedChecks(t *testing.T) {
	repo := newStubSurveyRepo()
	svc := NewSurveyService(repo)

	id, err := svc.Create(context.Background(), &model.Survey{AccountID: "acct1", Title: "T"})
	require.NoError(t, err)

	_, err = svc.GetOwned(context.Background(), "acct1", id)
	assert.NoError(t, err)
	_, err = svc.GetOwned(context.Background(), "intruder", id)
	assert.ErrorIs(t, err, ErrNotSurveyOwner)
	_, err = svc.GetOwned(context.Background(), "acct1", "missing")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}
