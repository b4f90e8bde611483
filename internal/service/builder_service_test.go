package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/model"
)

func TestAddQuestionDefaults(t *testing.T) {
	b := NewSurveyBuilder(nil)

	mc := b.AddQuestion(model.QuestionMultipleChoice)
	assert.NotEmpty(t, mc.ID)
	assert.Equal(t, model.DefaultQuestionTitle, mc.Title)
	assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, mc.Options)
	assert.Equal(t, mc.ID, b.Selected(), "new question becomes selected")

	likert := b.AddQuestion(model.QuestionLikert)
	assert.Equal(t, model.DefaultLikertScale, likert.Scale)
	assert.Empty(t, likert.Options)
	assert.Equal(t, likert.ID, b.Selected())

	open := b.AddQuestion(model.QuestionOpenEnded)
	assert.Empty(t, open.Options)
	assert.Zero(t, open.Scale)

	assert.Len(t, b.Questions(), 3)
}

func TestRemoveQuestionSelectionFallback(t *testing.T) {
	b := NewSurveyBuilder(nil)
	first := b.AddQuestion(model.QuestionRating)
	second := b.AddQuestion(model.QuestionYesNo)

	// Removing the selected question falls back to the first remaining
	require.Equal(t, second.ID, b.Selected())
	assert.True(t, b.RemoveQuestion(second.ID))
	assert.Equal(t, first.ID, b.Selected())

	// Removing the last question clears selection
	assert.True(t, b.RemoveQuestion(first.ID))
	assert.Empty(t, b.Selected())
	assert.Empty(t, b.Questions())

	// Unknown id is reported, not a panic
	assert.False(t, b.RemoveQuestion("missing"))
}

func TestRemoveUnselectedKeepsSelection(t *testing.T) {
	b := NewSurveyBuilder(nil)
	b.AddQuestion(model.QuestionRating)
	second := b.AddQuestion(model.QuestionYesNo)
	third := b.AddQuestion(model.QuestionOpenEnded)

	b.Select(second.ID)
	assert.True(t, b.RemoveQuestion(third.ID))
	assert.Equal(t, second.ID, b.Selected())
}

func TestUpdateQuestionShallowMerge(t *testing.T) {
	b := NewSurveyBuilder([]model.Question{
		{ID: "q1", Type: model.QuestionMultipleChoice, Title: "Original", Options: []string{"a", "b"}},
	})

	title := "Updated"
	required := true
	assert.True(t, b.UpdateQuestion("q1", model.QuestionPatch{Title: &title, Required: &required}))

	q := b.Questions()[0]
	assert.Equal(t, "Updated", q.Title)
	assert.True(t, q.Required)
	// Untouched fields survive the merge
	assert.Equal(t, []string{"a", "b"}, q.Options)

	assert.False(t, b.UpdateQuestion("missing", model.QuestionPatch{Title: &title}), "unknown id is a no-op")
}

func TestMoveQuestionBoundaries(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", Type: model.QuestionRating, Title: "First"},
		{ID: "q2", Type: model.QuestionRating, Title: "Second"},
		{ID: "q3", Type: model.QuestionRating, Title: "Third"},
	}
	b := NewSurveyBuilder(questions)

	// Boundary moves are no-ops, not wraparounds
	assert.False(t, b.MoveQuestion("q1", MoveUp))
	assert.False(t, b.MoveQuestion("q3", MoveDown))
	assert.Equal(t, []string{"q1", "q2", "q3"}, questionIDs(b))

	assert.True(t, b.MoveQuestion("q2", MoveUp))
	assert.Equal(t, []string{"q2", "q1", "q3"}, questionIDs(b))

	assert.True(t, b.MoveQuestion("q1", MoveDown))
	assert.Equal(t, []string{"q2", "q3", "q1"}, questionIDs(b))
}

func questionIDs(b *SurveyBuilder) []string {
	ids := make([]string, 0, len(b.Questions()))
	for _, q := range b.Questions() {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestLoadFromPersistedDefaults(t *testing.T) {
	raw := []byte(`[
		{"id":"q1","type":"multiple-choice","title":"Pick one","options":["a","b"],"required":true},
		{"id":"q2","type":"multiple-choice","title":"No options here"},
		{"id":"q3","type":"likert","title":"No scale here"}
	]`)

	questions := LoadFromPersisted(raw)
	require.Len(t, questions, 3)

	assert.Equal(t, []string{"a", "b"}, questions[0].Options)
	assert.Equal(t, []string{}, questions[1].Options, "missing options default to empty, not placeholders")
	assert.Equal(t, model.DefaultLikertScale, questions[2].Scale)
}

func TestLoadFromPersistedMalformed(t *testing.T) {
	cases := map[string][]byte{
		"not json":        []byte(`{{{`),
		"not an array":    []byte(`{"id":"q1"}`),
		"unknown type":    []byte(`[{"id":"q1","type":"matrix","title":"?"}]`),
		"missing type":    []byte(`[{"id":"q1","title":"?"}]`),
		"non-object item": []byte(`[42, "text", null]`),
	}

	for name, raw := range cases {
		questions := LoadFromPersisted(raw)
		assert.Empty(t, questions, name)
		assert.NotNil(t, questions, name)
	}
}

func TestLoadFromPersistedFillsInvariants(t *testing.T) {
	raw := []byte(`[
		{"type":"open-ended"},
		{"id":"q2","type":"yes-no","title":""}
	]`)

	questions := LoadFromPersisted(raw)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, model.DefaultQuestionTitle, q.Title)
	}
	assert.Equal(t, "q2", questions[1].ID, "existing ids are kept")
}

func TestBuilderSaveFailureLeavesStateIntact(t *testing.T) {
	repo := newStubSurveyRepo()
	id, err := repo.Create(context.Background(), &model.Survey{
		AccountID: "acct1",
		Title:     "T",
		Status:    model.SurveyDraft,
		Questions: []model.Question{{ID: "q1", Type: model.QuestionRating, Title: "Rate"}},
	})
	require.NoError(t, err)

	svc := NewBuilderService(repo)
	survey, builder, err := svc.Load(context.Background(), id)
	require.NoError(t, err)

	builder.AddQuestion(model.QuestionYesNo)

	repo.failAll = true
	err = svc.Save(context.Background(), survey, builder)
	require.Error(t, err)

	// Local edits survive a failed save; the caller may retry explicitly
	assert.Len(t, builder.Questions(), 2)

	repo.failAll = false
	require.NoError(t, svc.Save(context.Background(), survey, builder))

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored.Questions, 2)
}

func TestBuilderLoadDropsUnknownTypes(t *testing.T) {
	repo := newStubSurveyRepo()
	id, err := repo.Create(context.Background(), &model.Survey{
		AccountID: "acct1",
		Title:     "T",
		Status:    model.SurveyDraft,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Title: "Keep"},
			{ID: "q2", Type: "mystery", Title: "Drop"},
		},
	})
	require.NoError(t, err)

	svc := NewBuilderService(repo)
	_, builder, err := svc.Load(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, builder.Questions(), 1)
	assert.Equal(t, "q1", builder.Questions()[0].ID)
	assert.Equal(t, "q1", builder.Selected())
}
