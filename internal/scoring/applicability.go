package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// MaxResolvePasses bounds the applicability fixed-point loop. A well-formed
// dependency graph converges in a handful of passes; the cap guards against
// cyclic or contradictory configurations.
const MaxResolvePasses = 10

// ResolveReport describes how the fixed-point resolution went.
type ResolveReport struct {
	Passes    int  `json:"passes"`
	Converged bool `json:"converged"`
	Changed   int  `json:"changed"` // answer rows whose applicability flipped
}

// ResolveApplicability evaluates every question's visibility conditions
// against the answer set until no applicability flag changes, capped at
// MaxResolvePasses. Each pass reads a snapshot of the previous pass's state,
// so evaluation is deterministic regardless of row order. Rows flipped to
// inapplicable have their values cleared; a later pass therefore never sees
// a hidden question's selections as "currently selected".
//
// Hitting the cap is not an error: the last computed state is returned with
// Converged=false and the caller surfaces a diagnostic.
func ResolveApplicability(g *Graph, answers []model.Answer) ([]model.Answer, ResolveReport) {
	resolved := append([]model.Answer(nil), answers...)
	report := ResolveReport{Converged: false}

	for pass := 0; pass < MaxResolvePasses; pass++ {
		report.Passes = pass + 1

		selected := selectedOptions(resolved)
		changed := 0

		for i := range resolved {
			q, ok := g.Question(resolved[i].QuestionID)
			if !ok {
				// Unknown question id in the answer set: leave the row as is.
				continue
			}
			applicable := questionApplicable(q, selected)
			if resolved[i].IsApplicable == applicable {
				continue
			}
			resolved[i].IsApplicable = applicable
			if !applicable {
				resolved[i].Clear()
			}
			changed++
		}

		report.Changed += changed
		if changed == 0 {
			report.Converged = true
			break
		}
	}

	return resolved, report
}

// selectedOptions maps question id to the set of option ids currently
// selected among applicable answers. Multi-select rows all contribute.
func selectedOptions(answers []model.Answer) map[string]map[string]bool {
	selected := make(map[string]map[string]bool)
	for i := range answers {
		a := &answers[i]
		if !a.IsApplicable || a.OptionID == "" {
			continue
		}
		set := selected[a.QuestionID]
		if set == nil {
			set = make(map[string]bool)
			selected[a.QuestionID] = set
		}
		set[a.OptionID] = true
	}
	return selected
}

// questionApplicable evaluates a question's effective conditions against the
// selected-option sets. A question without conditions is always applicable.
func questionApplicable(q *model.Question, selected map[string]map[string]bool) bool {
	if !q.HasConditions() {
		return true
	}
	conditions, logic := q.EffectiveConditions()
	if len(conditions) == 0 {
		return true
	}

	for _, c := range conditions {
		holds := selected[c.QuestionID][c.OptionID]
		if logic == model.DependsAny {
			if holds {
				return true
			}
		} else if !holds {
			return false
		}
	}
	return logic != model.DependsAny
}
