package model

import "time"

// SurveyResponse is one respondent's submission. Inserted once, never
// mutated afterwards.
//
// SentimentScore is assigned at intake by the configured analyzer; the
// stock analyzer produces a uniform-random placeholder value, so treat the
// field as a hook point rather than a measurement. Both score fields are
// pointers: nil means the value was never recorded, which is distinct from
// an explicit 0 (a 0 still counts in the sentiment distribution but is
// skipped by the averages). CompletionRate is answered-questions /
// total-questions in percent.
type SurveyResponse struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	SurveyID        string            `json:"surveyId" bson:"surveyId"`
	RespondentEmail string            `json:"respondentEmail,omitempty" bson:"respondentEmail,omitempty"`
	RespondentName  string            `json:"respondentName,omitempty" bson:"respondentName,omitempty"`
	Answers         map[string]string `json:"answers" bson:"answers"` // question id -> answer value
	SentimentScore  *float64          `json:"sentimentScore,omitempty" bson:"sentimentScore,omitempty"`
	CompletionRate  *float64          `json:"completionRate,omitempty" bson:"completionRate,omitempty"`
	SubmittedAt     time.Time         `json:"submittedAt" bson:"submittedAt"`
}
