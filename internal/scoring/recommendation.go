package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// RecommendationThreshold is the minimum total-score gap before one strategy
// is preferred over the other.
const RecommendationThreshold = 0.25

// BuildTotal folds all dimension results of an assessment into per-strategy
// totals and a recommendation.
//
// A strategy's total is the mean of its non-excluded, non-null dimension
// means. Any excluded dimension voids the whole strategy: the exclusion is
// contagious at the total level rather than merely dropped from the average.
// This mirrors the observed behavior of the original system and is kept
// deliberately strict.
func BuildTotal(assessmentID string, results []model.DimensionResult) model.TotalResult {
	totals := make(map[model.Strategy]*float64, 2)
	excluded := make(map[model.Strategy]bool, 2)

	for _, strategy := range model.Strategies() {
		var scores []float64
		for _, r := range results {
			if r.Strategy != strategy {
				continue
			}
			if r.IsExcluded {
				excluded[strategy] = true
			}
			if !r.IsExcluded && r.MeanScore != nil {
				scores = append(scores, *r.MeanScore)
			}
		}
		if len(scores) > 0 {
			sum := 0.0
			for _, s := range scores {
				sum += s
			}
			mean := sum / float64(len(scores))
			totals[strategy] = &mean
		}
	}

	return model.TotalResult{
		AssessmentID: assessmentID,
		TotalRPA:     totals[model.StrategyRPA],
		TotalIPA:     totals[model.StrategyIPA],
		RPAExcluded:  excluded[model.StrategyRPA],
		IPAExcluded:  excluded[model.StrategyIPA],
		Recommendation: Recommend(
			totals[model.StrategyRPA], totals[model.StrategyIPA],
			excluded[model.StrategyRPA], excluded[model.StrategyIPA],
		),
	}
}

// Recommend applies the decision table to the per-strategy totals.
func Recommend(totalRPA, totalIPA *float64, rpaExcluded, ipaExcluded bool) model.Recommendation {
	switch {
	case rpaExcluded && ipaExcluded:
		return model.RecommendNoAutomation
	case rpaExcluded:
		return model.RecommendIPA
	case ipaExcluded:
		return model.RecommendRPA
	}

	if totalRPA == nil || totalIPA == nil {
		// Neither strategy excluded, but no scorable dimensions answered.
		return model.RecommendIncomplete
	}

	diff := *totalIPA - *totalRPA
	switch {
	case diff > RecommendationThreshold:
		return model.RecommendIPA
	case diff < -RecommendationThreshold:
		return model.RecommendRPA
	default:
		return model.RecommendNeutral
	}
}
