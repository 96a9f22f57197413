package model

import "time"

// Strategy identifies one of the two automation approaches scored in parallel.
type Strategy string

const (
	StrategyRPA Strategy = "RPA"
	StrategyIPA Strategy = "IPA"
)

// Strategies returns both strategies in scoring order.
func Strategies() []Strategy {
	return []Strategy{StrategyRPA, StrategyIPA}
}

// CalcMethod defines how a dimension is aggregated into a score.
type CalcMethod string

const (
	CalcMean     CalcMethod = "mean"           // arithmetic mean of answered option scores
	CalcFilter   CalcMethod = "filter"         // drives applicability only, never scored
	CalcEconomic CalcMethod = "economic_score" // derived from the ROI formula
)

// QuestionType defines how a question is answered.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multiple_choice"
	QuestionTypeNumber       QuestionType = "number"
)

// DependsLogic combines a question's visibility conditions.
type DependsLogic string

const (
	DependsAll DependsLogic = "all"
	DependsAny DependsLogic = "any"
)

// QuestionnaireVersion is one published revision of the master questionnaire.
type QuestionnaireVersion struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Version   string    `json:"version" bson:"version"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Dimension groups related questions into one aggregate score per strategy.
type Dimension struct {
	ID                     string     `json:"id" bson:"_id,omitempty"`
	QuestionnaireVersionID string     `json:"questionnaireVersionId" bson:"questionnaireVersionId"`
	Code                   string     `json:"code" bson:"code"`
	Name                   string     `json:"name" bson:"name"`
	SortOrder              int        `json:"sortOrder" bson:"sortOrder"`
	CalcMethod             CalcMethod `json:"calcMethod" bson:"calcMethod"`
}

// Scale is a reusable, ordered set of selectable options.
type Scale struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Key   string `json:"key" bson:"key"`
	Label string `json:"label" bson:"label"`
}

// ScaleOption is one selectable option of a scale. Options flagged IsNA carry
// no value and are always excluded from scoring.
type ScaleOption struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	ScaleID   string `json:"scaleId" bson:"scaleId"`
	Code      string `json:"code" bson:"code"`
	Label     string `json:"label" bson:"label"`
	SortOrder int    `json:"sortOrder" bson:"sortOrder"`
	IsNA      bool   `json:"isNA" bson:"isNA"`
}

// Condition is one (parent question, required option) visibility pair.
type Condition struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	OptionID   string `json:"optionId" bson:"optionId"`
}

// Question is a single questionnaire item. Conditions plus DependsLogic form
// the modern visibility rule; DependsOnQuestionID/DependsOnOptionID are the
// legacy single-condition form, consulted only when Conditions is empty.
type Question struct {
	ID                     string       `json:"id" bson:"_id,omitempty"`
	QuestionnaireVersionID string       `json:"questionnaireVersionId" bson:"questionnaireVersionId"`
	DimensionID            string       `json:"dimensionId" bson:"dimensionId"`
	Code                   string       `json:"code" bson:"code"`
	Text                   string       `json:"text" bson:"text"`
	Type                   QuestionType `json:"type" bson:"type"`
	Unit                   string       `json:"unit,omitempty" bson:"unit,omitempty"`
	ScaleID                string       `json:"scaleId,omitempty" bson:"scaleId,omitempty"`
	SortOrder              int          `json:"sortOrder" bson:"sortOrder"`
	Conditions             []Condition  `json:"conditions,omitempty" bson:"conditions,omitempty"`
	DependsLogic           DependsLogic `json:"dependsLogic,omitempty" bson:"dependsLogic,omitempty"`
	DependsOnQuestionID    string       `json:"dependsOnQuestionId,omitempty" bson:"dependsOnQuestionId,omitempty"`
	DependsOnOptionID      string       `json:"dependsOnOptionId,omitempty" bson:"dependsOnOptionId,omitempty"`
	FilterDescription      string       `json:"filterDescription,omitempty" bson:"filterDescription,omitempty"`
}

// HasConditions reports whether the question is gated by other answers.
func (q *Question) HasConditions() bool {
	return len(q.Conditions) > 0 || q.DependsOnQuestionID != ""
}

// EffectiveConditions returns the visibility rule to evaluate: the modern
// condition list when present, otherwise the legacy pair as a one-item list.
func (q *Question) EffectiveConditions() ([]Condition, DependsLogic) {
	if len(q.Conditions) > 0 {
		logic := q.DependsLogic
		if logic == "" {
			logic = DependsAll
		}
		return q.Conditions, logic
	}
	if q.DependsOnQuestionID != "" && q.DependsOnOptionID != "" {
		return []Condition{{QuestionID: q.DependsOnQuestionID, OptionID: q.DependsOnOptionID}}, DependsAll
	}
	return nil, DependsAll
}

// HintType classifies how a hint is presented to the user.
type HintType string

const (
	HintInfo    HintType = "info"
	HintWarning HintType = "warning"
	HintError   HintType = "error"
)

// Hint is advisory text shown when a particular option of a question is
// selected. Strategy narrows the hint to one automation approach; empty
// means it applies to both.
type Hint struct {
	ID         string   `json:"id" bson:"_id,omitempty"`
	QuestionID string   `json:"questionId" bson:"questionId"`
	OptionID   string   `json:"optionId,omitempty" bson:"optionId,omitempty"`
	Strategy   Strategy `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Text       string   `json:"text" bson:"text"`
	Type       HintType `json:"type" bson:"type"`
}

// OptionScore maps a selected option to its contribution for one strategy.
// Each row plays exactly one role: numeric score, exclusion marker, or
// non-applicable marker.
type OptionScore struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	QuestionID   string   `json:"questionId" bson:"questionId"`
	OptionID     string   `json:"optionId" bson:"optionId"`
	Strategy     Strategy `json:"strategy" bson:"strategy"`
	Score        *float64 `json:"score,omitempty" bson:"score,omitempty"`
	IsExclusion  bool     `json:"isExclusion" bson:"isExclusion"`
	IsApplicable bool     `json:"isApplicable" bson:"isApplicable"`
}
