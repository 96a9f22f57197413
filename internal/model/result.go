package model

import "time"

// Recommendation is the final verdict of an assessment.
type Recommendation string

const (
	RecommendRPA          Recommendation = "RPA"
	RecommendIPA          Recommendation = "IPA"
	RecommendNeutral      Recommendation = "neutral"
	RecommendNoAutomation Recommendation = "no_automation"
	RecommendIncomplete   Recommendation = "incomplete"
)

// DimensionResult is the computed outcome for one (dimension, strategy)
// pair. ExcludedBy records the question that triggered an exclusion and is
// diagnostic only.
type DimensionResult struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	AssessmentID string   `json:"assessmentId" bson:"assessmentId"`
	DimensionID  string   `json:"dimensionId" bson:"dimensionId"`
	Strategy     Strategy `json:"strategy" bson:"strategy"`
	MeanScore    *float64 `json:"meanScore,omitempty" bson:"meanScore,omitempty"`
	IsExcluded   bool     `json:"isExcluded" bson:"isExcluded"`
	ExcludedBy   string   `json:"excludedBy,omitempty" bson:"excludedBy,omitempty"`
}

// TotalResult aggregates all dimension results of an assessment into one
// score per strategy and the recommendation.
type TotalResult struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	AssessmentID   string         `json:"assessmentId" bson:"assessmentId"`
	TotalRPA       *float64       `json:"totalRpa,omitempty" bson:"totalRpa,omitempty"`
	TotalIPA       *float64       `json:"totalIpa,omitempty" bson:"totalIpa,omitempty"`
	RPAExcluded    bool           `json:"rpaExcluded" bson:"rpaExcluded"`
	IPAExcluded    bool           `json:"ipaExcluded" bson:"ipaExcluded"`
	Recommendation Recommendation `json:"recommendation" bson:"recommendation"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
}

// EconomicMetric is one named numeric fact produced by the economic
// evaluator, persisted so the formulas stay auditable from stored data.
type EconomicMetric struct {
	ID           string  `json:"id" bson:"_id,omitempty"`
	AssessmentID string  `json:"assessmentId" bson:"assessmentId"`
	Key          string  `json:"key" bson:"key"`
	Value        float64 `json:"value" bson:"value"`
	Unit         string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// MetricValue is the exported view of an economic metric.
type MetricValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}
