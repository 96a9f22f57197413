package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/model"
	"github.com/annihlj/AutomationFit/internal/repository"
	"github.com/annihlj/AutomationFit/internal/scoring"
)

// DimensionStatus describes how completely a dimension was answered.
type DimensionStatus string

const (
	StatusNotStarted DimensionStatus = "not_started"
	StatusPartial    DimensionStatus = "partial"
	StatusComplete   DimensionStatus = "complete"
)

// AnswerDetail is one answered question in the breakdown view. Scores are
// rendered strings: a number, "excluded", "n/a", or "-" for unscored types.
type AnswerDetail struct {
	QuestionCode string `json:"questionCode"`
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
	RPAScore     string `json:"rpaScore"`
	IPAScore     string `json:"ipaScore"`
	IsApplicable bool   `json:"isApplicable"`
}

// DimensionBreakdown is one dimension of the breakdown view.
type DimensionBreakdown struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	CalcMethod  model.CalcMethod `json:"calcMethod"`
	Status      DimensionStatus  `json:"status"`
	ScoreRPA    *float64         `json:"scoreRpa,omitempty"`
	ScoreIPA    *float64         `json:"scoreIpa,omitempty"`
	ExcludedRPA bool             `json:"excludedRpa"`
	ExcludedIPA bool             `json:"excludedIpa"`
	Answers     []AnswerDetail   `json:"answers"`
}

// Breakdown is the full result view of one assessment.
type Breakdown struct {
	AssessmentID string               `json:"assessmentId"`
	Process      *model.Process       `json:"process,omitempty"`
	Total        *model.TotalResult   `json:"total"`
	Dimensions   []DimensionBreakdown `json:"dimensions"`
	MaxScore     float64              `json:"maxScore"`
	Threshold    float64              `json:"threshold"`
}

// ReportService builds read-side views: the per-assessment breakdown, the
// cross-assessment comparison, and the CSV export.
type ReportService struct {
	assessments    repository.AssessmentRepo
	answers        repository.AnswerRepo
	results        repository.ResultRepo
	questionnaires *QuestionnaireService
	comparison     cache.ComparisonCache
}

// NewReportService creates a new report service.
func NewReportService(
	assessments repository.AssessmentRepo,
	answers repository.AnswerRepo,
	results repository.ResultRepo,
	questionnaires *QuestionnaireService,
	comparison cache.ComparisonCache,
) *ReportService {
	return &ReportService{
		assessments:    assessments,
		answers:        answers,
		results:        results,
		questionnaires: questionnaires,
		comparison:     comparison,
	}
}

// Breakdown assembles the per-dimension, per-answer result view.
func (s *ReportService) Breakdown(ctx context.Context, assessmentID string) (*Breakdown, error) {
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
	total, err := s.results.GetTotal(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	dimResults, err := s.results.GetDimensionResults(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.GetByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]model.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	resultFor := func(dimensionID string, strategy model.Strategy) *model.DimensionResult {
		for i := range dimResults {
			if dimResults[i].DimensionID == dimensionID && dimResults[i].Strategy == strategy {
				return &dimResults[i]
			}
		}
		return nil
	}

	view := &Breakdown{
		AssessmentID: assessmentID,
		Process:      process,
		Total:        total,
		MaxScore:     5.0,
		Threshold:    scoring.RecommendationThreshold,
	}

	for _, dim := range graph.Dimensions() {
		db := DimensionBreakdown{
			Code:       dim.Code,
			Name:       dim.Name,
			CalcMethod: dim.CalcMethod,
			Status:     dimensionStatus(graph, dim, byQuestion),
		}
		if r := resultFor(dim.ID, model.StrategyRPA); r != nil {
			db.ExcludedRPA = r.IsExcluded
			if !r.IsExcluded {
				db.ScoreRPA = r.MeanScore
			}
		}
		if r := resultFor(dim.ID, model.StrategyIPA); r != nil {
			db.ExcludedIPA = r.IsExcluded
			if !r.IsExcluded {
				db.ScoreIPA = r.MeanScore
			}
		}

		for _, q := range graph.QuestionsForDimension(dim.ID) {
			rows := byQuestion[q.ID]
			if len(rows) == 0 {
				continue
			}
			if detail, ok := s.answerDetail(graph, q, rows); ok {
				db.Answers = append(db.Answers, detail)
			}
		}

		view.Dimensions = append(view.Dimensions, db)
	}

	return view, nil
}

// answerDetail renders one question's answer rows for display. Returns false
// when the question was left unanswered.
func (s *ReportService) answerDetail(graph *scoring.Graph, q *model.Question, rows []model.Answer) (AnswerDetail, bool) {
	if !rows[0].IsApplicable {
		return AnswerDetail{
			QuestionCode: q.Code,
			QuestionText: q.Text,
			Answer:       "not applicable",
			RPAScore:     "-",
			IPAScore:     "-",
		}, true
	}

	detail := AnswerDetail{
		QuestionCode: q.Code,
		QuestionText: q.Text,
		IsApplicable: true,
		RPAScore:     "-",
		IPAScore:     "-",
	}

	switch q.Type {
	case model.QuestionTypeNumber:
		if rows[0].NumericValue == nil {
			return AnswerDetail{}, false
		}
		detail.Answer = strconv.FormatFloat(*rows[0].NumericValue, 'f', -1, 64)
		if q.Unit != "" {
			detail.Answer += " " + q.Unit
		}

	case model.QuestionTypeSingleChoice:
		if rows[0].OptionID == "" {
			return AnswerDetail{}, false
		}
		if opt, ok := graph.Option(rows[0].OptionID); ok {
			detail.Answer = opt.Label
		}
		detail.RPAScore = formatSingleScore(graph, q.ID, rows[0].OptionID, model.StrategyRPA)
		detail.IPAScore = formatSingleScore(graph, q.ID, rows[0].OptionID, model.StrategyIPA)

	case model.QuestionTypeMultiChoice:
		var optionIDs []string
		var labels []string
		for _, row := range rows {
			if row.OptionID == "" {
				continue
			}
			optionIDs = append(optionIDs, row.OptionID)
			if opt, ok := graph.Option(row.OptionID); ok {
				labels = append(labels, opt.Label)
			}
		}
		if len(optionIDs) == 0 {
			return AnswerDetail{}, false
		}
		detail.Answer = joinLabels(labels)
		detail.RPAScore = formatMultiScore(graph, q.ID, optionIDs, model.StrategyRPA)
		detail.IPAScore = formatMultiScore(graph, q.ID, optionIDs, model.StrategyIPA)

	default:
		return AnswerDetail{}, false
	}

	return detail, true
}

func formatSingleScore(graph *scoring.Graph, questionID, optionID string, strategy model.Strategy) string {
	os, ok := graph.Score(questionID, optionID, strategy)
	if !ok {
		return "-"
	}
	if os.IsExclusion {
		return "excluded"
	}
	if !os.IsApplicable || os.Score == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*os.Score, 'f', -1, 64)
}

func formatMultiScore(graph *scoring.Graph, questionID string, optionIDs []string, strategy model.Strategy) string {
	score, excluded := scoring.AggregateMultiChoice(graph, questionID, optionIDs, strategy)
	if excluded {
		return "excluded"
	}
	if score == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

func joinLabels(labels []string) string {
	out := ""
	for i, l := range labels {
		if i > 0 {
			out += ", "
		}
		out += l
	}
	return out
}

// dimensionStatus reports whether none, some, or all of a dimension's
// applicable questions carry an answer.
func dimensionStatus(graph *scoring.Graph, dim model.Dimension, byQuestion map[string][]model.Answer) DimensionStatus {
	questions := graph.QuestionsForDimension(dim.ID)
	if len(questions) == 0 {
		return StatusNotStarted
	}

	answered := 0
	for _, q := range questions {
		for _, row := range byQuestion[q.ID] {
			if row.IsApplicable && row.Answered() {
				answered++
				break
			}
		}
	}

	switch {
	case answered == 0:
		return StatusNotStarted
	case answered == len(questions):
		return StatusComplete
	default:
		return StatusPartial
	}
}

// Comparison returns all assessments ranked by their best total score.
func (s *ReportService) Comparison(ctx context.Context) ([]cache.ComparisonEntry, error) {
	if entries, err := s.comparison.Get(ctx); err != nil {
		log.Printf("comparison cache read failed: %v", err)
	} else if entries != nil {
		return entries, nil
	}

	totals, err := s.results.ListTotals(ctx)
	if err != nil {
		return nil, err
	}

	var entries []cache.ComparisonEntry
	for _, total := range totals {
		assessment, err := s.assessments.GetByID(ctx, total.AssessmentID)
		if err != nil || assessment == nil {
			continue
		}
		process, err := s.assessments.GetProcess(ctx, assessment.ProcessID)
		if err != nil || process == nil {
			continue
		}

		entries = append(entries, cache.ComparisonEntry{
			AssessmentID:   total.AssessmentID,
			ProcessName:    process.Name,
			Industry:       process.Industry,
			CreatedAt:      assessment.CreatedAt,
			TotalRPA:       total.TotalRPA,
			TotalIPA:       total.TotalIPA,
			RPAExcluded:    total.RPAExcluded,
			IPAExcluded:    total.IPAExcluded,
			Recommendation: string(total.Recommendation),
			CombinedScore:  combinedScore(total),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CombinedScore > entries[j].CombinedScore
	})

	if err := s.comparison.Set(ctx, entries); err != nil {
		log.Printf("comparison cache write failed: %v", err)
	}
	return entries, nil
}

// combinedScore ranks an assessment by its best usable strategy total.
func combinedScore(total model.TotalResult) float64 {
	best := 0.0
	if total.TotalRPA != nil && !total.RPAExcluded && *total.TotalRPA > best {
		best = *total.TotalRPA
	}
	if total.TotalIPA != nil && !total.IPAExcluded && *total.TotalIPA > best {
		best = *total.TotalIPA
	}
	return best
}

// ExportCSV renders the comparison listing as CSV. The returned run id tags
// the export for download naming and audit logs.
func (s *ReportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	entries, err := s.Comparison(ctx)
	if err != nil {
		return nil, "", err
	}

	runID := uuid.New().String()[:8]

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"assessment_id", "process", "industry", "created_at",
		"total_rpa", "total_ipa", "rpa_excluded", "ipa_excluded", "recommendation"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, e := range entries {
		record := []string{
			e.AssessmentID,
			e.ProcessName,
			e.Industry,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			formatOptionalScore(e.TotalRPA),
			formatOptionalScore(e.TotalIPA),
			strconv.FormatBool(e.RPAExcluded),
			strconv.FormatBool(e.IPAExcluded),
			e.Recommendation,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("automationfit-comparison-%s.csv", runID)
	return buf.Bytes(), filename, nil
}

func formatOptionalScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
