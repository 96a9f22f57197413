package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/model"
	"github.com/annihlj/AutomationFit/internal/repository"
	"github.com/annihlj/AutomationFit/internal/scoring"
)

// ErrAssessmentNotFound is returned when an assessment id is unknown.
var ErrAssessmentNotFound = errors.New("assessment not found")

// Broadcaster pushes recompute events to live watchers. The websocket hub
// implements it; services stay transport-agnostic.
type Broadcaster interface {
	AssessmentScored(assessmentID string, total *model.TotalResult)
}

// ProcessInput describes the business process being assessed.
type ProcessInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

// AnswerInput is one already-typed answer from the web layer. Multi-select
// questions send several option ids; number questions send a numeric value.
type AnswerInput struct {
	QuestionID   string   `json:"questionId"`
	OptionIDs    []string `json:"optionIds,omitempty"`
	NumericValue *float64 `json:"numericValue,omitempty"`
}

// AssessmentService orchestrates the evaluation core: it owns the
// replace-answers, resolve-applicability, compute-results cycle.
type AssessmentService struct {
	assessments    repository.AssessmentRepo
	answers        repository.AnswerRepo
	results        repository.ResultRepo
	questionnaires *QuestionnaireService
	comparison     cache.ComparisonCache
	broadcaster    Broadcaster
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(
	assessments repository.AssessmentRepo,
	answers repository.AnswerRepo,
	results repository.ResultRepo,
	questionnaires *QuestionnaireService,
	comparison cache.ComparisonCache,
) *AssessmentService {
	return &AssessmentService{
		assessments:    assessments,
		answers:        answers,
		results:        results,
		questionnaires: questionnaires,
		comparison:     comparison,
	}
}

// SetBroadcaster injects the live-update broadcaster.
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit creates a process and an assessment for the active questionnaire,
// stores the answers, and computes all results.
func (s *AssessmentService) Submit(ctx context.Context, input ProcessInput, answers []AnswerInput) (*model.Assessment, *model.TotalResult, error) {
	graph, err := s.questionnaires.ActiveGraph(ctx)
	if err != nil {
		return nil, nil, err
	}

	process := &model.Process{
		Name:        input.Name,
		Description: input.Description,
		Industry:    input.Industry,
	}
	if err := s.assessments.CreateProcess(ctx, process); err != nil {
		return nil, nil, fmt.Errorf("create process: %w", err)
	}

	assessment := &model.Assessment{
		ProcessID:              process.ID,
		QuestionnaireVersionID: graph.Version().ID,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, nil, fmt.Errorf("create assessment: %w", err)
	}

	total, err := s.recompute(ctx, graph, assessment.ID, buildAnswerRows(graph, assessment.ID, answers))
	if err != nil {
		return nil, nil, err
	}
	return assessment, total, nil
}

// Update replaces an assessment's answers and recomputes every result.
// Answers and results are deleted and recreated wholesale, never patched.
func (s *AssessmentService) Update(ctx context.Context, assessmentID string, input ProcessInput, answers []AnswerInput) (*model.TotalResult, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}

	graph, err := s.questionnaires.GraphForVersion(ctx, assessment.QuestionnaireVersionID)
	if err != nil {
		return nil, err
	}

	process, err := s.assessments.GetProcess(ctx, assessment.ProcessID)
	if err != nil {
		return nil, err
	}
	// Process fields follow the same replace-wholesale rule as the answers;
	// the handler rejects an empty name before it gets here.
	if process != nil {
		process.Name = input.Name
		process.Description = input.Description
		process.Industry = input.Industry
		if err := s.assessments.UpdateProcess(ctx, process); err != nil {
			return nil, fmt.Errorf("update process: %w", err)
		}
	}

	total, err := s.recompute(ctx, graph, assessmentID, buildAnswerRows(graph, assessmentID, answers))
	if err != nil {
		return nil, err
	}
	if err := s.assessments.Touch(ctx, assessmentID); err != nil {
		log.Printf("touch assessment %s: %v", assessmentID, err)
	}
	return total, nil
}

// ResolveApplicability re-runs the visibility fixed point over the stored
// answer set and persists the resulting flags.
func (s *AssessmentService) ResolveApplicability(ctx context.Context, assessmentID string) (scoring.ResolveReport, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return scoring.ResolveReport{}, err
	}
	if assessment == nil {
		return scoring.ResolveReport{}, ErrAssessmentNotFound
	}

	graph, err := s.questionnaires.GraphForVersion(ctx, assessment.QuestionnaireVersionID)
	if err != nil {
		return scoring.ResolveReport{}, err
	}

	answers, err := s.answers.GetByAssessment(ctx, assessmentID)
	if err != nil {
		return scoring.ResolveReport{}, err
	}

	resolved, report := scoring.ResolveApplicability(graph, answers)
	if !report.Converged {
		log.Printf("applicability did not converge for assessment %s after %d passes", assessmentID, report.Passes)
	}

	if err := s.answers.ReplaceForAssessment(ctx, assessmentID, resolved); err != nil {
		return report, err
	}
	return report, nil
}

// ComputeResults recomputes and stores every result of an assessment from
// its persisted answers, returning the new total.
func (s *AssessmentService) ComputeResults(ctx context.Context, assessmentID string) (*model.TotalResult, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}

	graph, err := s.questionnaires.GraphForVersion(ctx, assessment.QuestionnaireVersionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.answers.GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	return s.recompute(ctx, graph, assessmentID, answers)
}

// EconomicMetrics returns the persisted economic facts of an assessment as
// a name-to-value mapping. Empty when the evaluation was not computable.
func (s *AssessmentService) EconomicMetrics(ctx context.Context, assessmentID string) (map[string]model.MetricValue, error) {
	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}

	metrics, err := s.results.GetMetrics(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]model.MetricValue, len(metrics))
	for _, m := range metrics {
		out[m.Key] = model.MetricValue{Value: m.Value, Unit: m.Unit}
	}
	return out, nil
}

// recompute runs the engine and persists answers and results. Stale results
// are replaced transactionally so readers never see a half-updated set.
func (s *AssessmentService) recompute(ctx context.Context, graph *scoring.Graph, assessmentID string, answers []model.Answer) (*model.TotalResult, error) {
	engine := scoring.NewEngine(graph)
	evaluation := engine.Evaluate(assessmentID, answers)

	if !evaluation.Resolve.Converged {
		log.Printf("applicability did not converge for assessment %s after %d passes; scoring last computed state",
			assessmentID, evaluation.Resolve.Passes)
	}

	if err := s.answers.ReplaceForAssessment(ctx, assessmentID, evaluation.Answers); err != nil {
		return nil, err
	}
	if err := s.results.ReplaceForAssessment(ctx, assessmentID,
		evaluation.DimensionResults, evaluation.Total, evaluation.Metrics); err != nil {
		return nil, err
	}

	if err := s.comparison.Invalidate(ctx); err != nil {
		log.Printf("invalidate comparison cache: %v", err)
	}

	total, err := s.results.GetTotal(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil && total != nil {
		s.broadcaster.AssessmentScored(assessmentID, total)
	}
	return total, nil
}

// buildAnswerRows converts typed inputs into one stored row per question,
// and one row per selected option for multi-select questions. Every graph
// question gets at least one row so the resolver sees the full answer set,
// mirroring how submissions persist unanswered questions too.
func buildAnswerRows(graph *scoring.Graph, assessmentID string, inputs []AnswerInput) []model.Answer {
	byQuestion := make(map[string]AnswerInput, len(inputs))
	for _, in := range inputs {
		byQuestion[in.QuestionID] = in
	}

	var rows []model.Answer
	for _, q := range graph.Questions() {
		in, answered := byQuestion[q.ID]

		switch q.Type {
		case model.QuestionTypeMultiChoice:
			if answered && len(in.OptionIDs) > 0 {
				for _, optionID := range in.OptionIDs {
					rows = append(rows, model.Answer{
						AssessmentID: assessmentID,
						QuestionID:   q.ID,
						OptionID:     optionID,
						IsApplicable: true,
					})
				}
				continue
			}
			rows = append(rows, model.Answer{
				AssessmentID: assessmentID,
				QuestionID:   q.ID,
				IsApplicable: true,
			})

		case model.QuestionTypeNumber:
			row := model.Answer{
				AssessmentID: assessmentID,
				QuestionID:   q.ID,
				IsApplicable: true,
			}
			if answered {
				row.NumericValue = in.NumericValue
			}
			rows = append(rows, row)

		default: // single choice
			row := model.Answer{
				AssessmentID: assessmentID,
				QuestionID:   q.ID,
				IsApplicable: true,
			}
			if answered && len(in.OptionIDs) > 0 {
				row.OptionID = in.OptionIDs[0]
			}
			rows = append(rows, row)
		}
	}
	return rows
}
