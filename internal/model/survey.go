package model

import "time"

// SurveyStatus is user-controlled; any status may follow any other.
// There is no enforced transition graph.
type SurveyStatus string

const (
	SurveyDraft     SurveyStatus = "draft"
	SurveyActive    SurveyStatus = "active"
	SurveyCompleted SurveyStatus = "completed"
	SurveyPaused    SurveyStatus = "paused"
)

// Survey is a persistent document owned by exactly one account. Questions
// are saved wholesale with the survey, not versioned per question.
type Survey struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	AccountID   string       `json:"accountId" bson:"accountId"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Status      SurveyStatus `json:"status" bson:"status"`
	Questions   []Question   `json:"questions" bson:"questions"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// KnownSurveyStatus reports whether s is one of the recognized statuses.
func KnownSurveyStatus(s SurveyStatus) bool {
	switch s {
	case SurveyDraft, SurveyActive, SurveyCompleted, SurveyPaused:
		return true
	}
	return false
}
