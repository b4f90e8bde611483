package model

import "strconv"

// QuestionType discriminates the question union
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice" // Pick one of a fixed option list
	QuestionLikert         QuestionType = "likert"          // Agreement scale, configurable points
	QuestionOpenEnded      QuestionType = "open-ended"      // Free text
	QuestionYesNo          QuestionType = "yes-no"          // Answer is "yes" or "no"
	QuestionRating         QuestionType = "rating"          // 1-5 stars, fixed
)

// DefaultLikertScale is the point count a likert question gets when none is set
const DefaultLikertScale = 5

// DefaultQuestionTitle substitutes for a missing title at load time
const DefaultQuestionTitle = "Untitled Question"

// Question is one entry in a survey's ordered question list. Type-specific
// fields are only meaningful for their own type: Options for multiple-choice,
// Scale for likert. The whole list is stored as a single array field on the
// survey document, so question data is untyped JSON at rest and loaders must
// not trust it.
type Question struct {
	ID          string       `json:"id" bson:"id"`
	Type        QuestionType `json:"type" bson:"type"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Required    bool         `json:"required" bson:"required"`
	Options     []string     `json:"options,omitempty" bson:"options,omitempty"`
	Scale       int          `json:"scale,omitempty" bson:"scale,omitempty"`
}

// KnownQuestionType reports whether t belongs to the closed type set.
func KnownQuestionType(t QuestionType) bool {
	switch t {
	case QuestionMultipleChoice, QuestionLikert, QuestionOpenEnded, QuestionYesNo, QuestionRating:
		return true
	}
	return false
}

// ValidAnswer reports whether value is an acceptable answer for q. The
// switch is exhaustive over the closed type set; an unknown type never
// validates.
func ValidAnswer(q Question, value string) bool {
	switch q.Type {
	case QuestionMultipleChoice:
		for _, opt := range q.Options {
			if value == opt {
				return true
			}
		}
		return false
	case QuestionLikert:
		scale := q.Scale
		if scale <= 0 {
			scale = DefaultLikertScale
		}
		n, err := strconv.Atoi(value)
		return err == nil && n >= 1 && n <= scale
	case QuestionOpenEnded:
		return value != ""
	case QuestionYesNo:
		return value == "yes" || value == "no"
	case QuestionRating:
		n, err := strconv.Atoi(value)
		return err == nil && n >= 1 && n <= 5
	}
	return false
}

// QuestionPatch is a shallow field-level update. Nil means "leave unchanged".
type QuestionPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Required    *bool     `json:"required,omitempty"`
	Options     *[]string `json:"options,omitempty"`
	Scale       *int      `json:"scale,omitempty"`
}
