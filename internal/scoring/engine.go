package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// Engine runs the full evaluation pipeline over an in-memory answer set:
// applicability resolution, per-dimension scoring for both strategies, the
// economic evaluation, and the total/recommendation fold. It performs no
// I/O; persistence belongs to the caller.
type Engine struct {
	graph *Graph
}

// NewEngine creates an engine bound to one question-graph snapshot.
func NewEngine(g *Graph) *Engine {
	return &Engine{graph: g}
}

// Graph returns the snapshot the engine evaluates against.
func (e *Engine) Graph() *Graph { return e.graph }

// Evaluation is the complete computed state for one assessment. Dimension
// results, the total, and the metrics are produced together and must be
// persisted together.
type Evaluation struct {
	Answers          []model.Answer
	Resolve          ResolveReport
	DimensionResults []model.DimensionResult
	Total            model.TotalResult
	Metrics          []model.EconomicMetric
}

// Evaluate resolves applicability and computes every result for the
// assessment. Data flows one way: raw answers, resolved applicability,
// per-dimension outcomes, totals, recommendation.
func (e *Engine) Evaluate(assessmentID string, answers []model.Answer) Evaluation {
	resolved, report := ResolveApplicability(e.graph, answers)

	var (
		dimResults []model.DimensionResult
		metrics    []model.EconomicMetric
	)

	for _, dim := range e.graph.Dimensions() {
		switch dim.CalcMethod {
		case model.CalcEconomic:
			econ, computable := EvaluateEconomics(e.graph, resolved)
			for _, strategy := range model.Strategies() {
				r := model.DimensionResult{
					AssessmentID: assessmentID,
					DimensionID:  dim.ID,
					Strategy:     strategy,
				}
				if computable {
					r.MeanScore = econ.Score
					r.IsExcluded = econ.IsExcluded
				}
				dimResults = append(dimResults, r)
			}
			if computable {
				for _, m := range econ.Metrics {
					m.AssessmentID = assessmentID
					metrics = append(metrics, m)
				}
			}

		case model.CalcFilter:
			// Filter dimensions gate other questions and are never scored,
			// but result rows are still written so the result set is always
			// recomputed as a whole.
			for _, strategy := range model.Strategies() {
				dimResults = append(dimResults, model.DimensionResult{
					AssessmentID: assessmentID,
					DimensionID:  dim.ID,
					Strategy:     strategy,
				})
			}

		default: // model.CalcMean
			for _, strategy := range model.Strategies() {
				outcome := ScoreMeanDimension(e.graph, dim, resolved, strategy)
				dimResults = append(dimResults, model.DimensionResult{
					AssessmentID: assessmentID,
					DimensionID:  dim.ID,
					Strategy:     strategy,
					MeanScore:    outcome.MeanScore,
					IsExcluded:   outcome.IsExcluded,
					ExcludedBy:   outcome.ExcludedBy,
				})
			}
		}
	}

	return Evaluation{
		Answers:          resolved,
		Resolve:          report,
		DimensionResults: dimResults,
		Total:            BuildTotal(assessmentID, dimResults),
		Metrics:          metrics,
	}
}
