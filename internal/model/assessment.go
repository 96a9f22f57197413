package model

import "time"

// Process is the business process being assessed.
type Process struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Industry    string    `json:"industry,omitempty" bson:"industry,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Assessment is one filled-out questionnaire instance. Its answers and
// results are fully replaced on edit, never patched incrementally.
type Assessment struct {
	ID                     string    `json:"id" bson:"_id,omitempty"`
	ProcessID              string    `json:"processId" bson:"processId"`
	QuestionnaireVersionID string    `json:"questionnaireVersionId" bson:"questionnaireVersionId"`
	CreatedAt              time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Answer is one stored response row. Multi-select questions store one row per
// selected option, all sharing the question id. IsApplicable is set by the
// applicability resolver, not the user; an inapplicable row carries no
// option or numeric value.
type Answer struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	AssessmentID string   `json:"assessmentId" bson:"assessmentId"`
	QuestionID   string   `json:"questionId" bson:"questionId"`
	OptionID     string   `json:"optionId,omitempty" bson:"optionId,omitempty"`
	NumericValue *float64 `json:"numericValue,omitempty" bson:"numericValue,omitempty"`
	IsApplicable bool     `json:"isApplicable" bson:"isApplicable"`
}

// Answered reports whether the row carries a value.
func (a *Answer) Answered() bool {
	return a.OptionID != "" || a.NumericValue != nil
}

// Clear drops the value fields. Called when the resolver flips a row to
// inapplicable so later passes never see stale selections.
func (a *Answer) Clear() {
	a.OptionID = ""
	a.NumericValue = nil
}
