package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// DimensionOutcome is the computed result for one (dimension, strategy) pair
// before persistence.
type DimensionOutcome struct {
	MeanScore  *float64
	IsExcluded bool
	ExcludedBy string // question id that triggered the exclusion
}

// ScoreMeanDimension aggregates a mean-method dimension for one strategy.
//
// Applicable single-choice answers contribute their OptionScore. An
// exclusion score disqualifies the dimension outright: the loop stops,
// the triggering question is recorded, and no partial mean survives.
// Non-applicable scores ("not relevant") contribute nothing. Number
// questions carry no OptionScore. Multi-choice selections never join the
// mean, but an exclusion option among them still excludes the dimension.
//
// No collected scores and no exclusion yields a nil mean, not zero: an
// unanswered dimension contributes nothing rather than a penalty.
func ScoreMeanDimension(g *Graph, dim model.Dimension, answers []model.Answer, strategy model.Strategy) DimensionOutcome {
	byQuestion := answersByQuestion(answers)

	var scores []float64
	for _, q := range g.QuestionsForDimension(dim.ID) {
		rows := byQuestion[q.ID]
		if len(rows) == 0 {
			continue
		}

		switch q.Type {
		case model.QuestionTypeSingleChoice:
			a := rows[0]
			if !a.IsApplicable || a.OptionID == "" {
				continue
			}
			os, ok := g.Score(q.ID, a.OptionID, strategy)
			if !ok {
				// Master data gap: skip the answer, keep scoring.
				continue
			}
			if os.IsExclusion {
				return DimensionOutcome{IsExcluded: true, ExcludedBy: q.ID}
			}
			if os.IsApplicable && os.Score != nil {
				scores = append(scores, *os.Score)
			}

		case model.QuestionTypeMultiChoice:
			for _, a := range rows {
				if !a.IsApplicable || a.OptionID == "" {
					continue
				}
				os, ok := g.Score(q.ID, a.OptionID, strategy)
				if ok && os.IsExclusion {
					return DimensionOutcome{IsExcluded: true, ExcludedBy: q.ID}
				}
			}
		}
	}

	if len(scores) == 0 {
		return DimensionOutcome{}
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))
	return DimensionOutcome{MeanScore: &mean}
}

// AggregateMultiChoice computes the display score of a multi-choice question
// for one strategy: the maximum applicable score among the selected options,
// or an exclusion if any selection carries one. A nil score with no
// exclusion means every selection was non-applicable or unscored.
func AggregateMultiChoice(g *Graph, questionID string, optionIDs []string, strategy model.Strategy) (score *float64, excluded bool) {
	var best *float64
	for _, optionID := range optionIDs {
		os, ok := g.Score(questionID, optionID, strategy)
		if !ok {
			continue
		}
		if os.IsExclusion {
			return nil, true
		}
		if !os.IsApplicable || os.Score == nil {
			continue
		}
		if best == nil || *os.Score > *best {
			v := *os.Score
			best = &v
		}
	}
	return best, false
}

func answersByQuestion(answers []model.Answer) map[string][]*model.Answer {
	byQuestion := make(map[string][]*model.Answer)
	for i := range answers {
		a := &answers[i]
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	return byQuestion
}
