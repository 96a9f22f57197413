package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// Fixed planning constants of the economic model.
const (
	HoursPerFTEYear = 1700.0  // annual working hours per full-time equivalent
	CostPerFTEYear  = 55000.0 // fully loaded annual cost per FTE, currency units
)

// Question codes of the eight numeric inputs the evaluator requires.
const (
	CodeProcessCount        = "7.1" // count of processes sharing the one-off cost
	CodeOneOffCost          = "7.2" // one-off licensing/infrastructure cost
	CodeImplementationHours = "7.3" // implementation effort in hours
	CodeAnnualRunCost       = "7.4" // annual run cost
	CodeMaintenanceHours    = "7.5" // maintenance hours per month
	CodeRunsPerMonth        = "7.6" // process executions per month
	CodeMinutesBefore       = "7.7" // handling minutes per run before automation
	CodeMinutesAfter        = "7.8" // handling minutes per run after automation
)

// EconomicInputCodes lists the required question codes in derivation order.
func EconomicInputCodes() []string {
	return []string{
		CodeProcessCount, CodeOneOffCost, CodeImplementationHours,
		CodeAnnualRunCost, CodeMaintenanceHours, CodeRunsPerMonth,
		CodeMinutesBefore, CodeMinutesAfter,
	}
}

// Metric keys persisted by the evaluator.
const (
	MetricAnnualFrequency  = "annual_frequency"
	MetricTimeSavedPerRun  = "time_saved_per_run"
	MetricAnnualHoursSaved = "annual_hours_saved"
	MetricFTESaved         = "fte_saved"
	MetricAnnualBenefit    = "annual_benefit"
	MetricOneOffCost       = "one_off_cost"
	MetricRecurringCost    = "recurring_cost"
	MetricTotalCost        = "total_cost"
	MetricROI              = "roi"
)

// EconomicResult is the outcome of the economic evaluation. Score is nil
// when the ROI is negative, in which case IsExcluded is set. The result is
// strategy-independent and written identically for both.
type EconomicResult struct {
	ROI        float64
	Score      *float64
	IsExcluded bool
	Metrics    []model.EconomicMetric
}

// EvaluateEconomics derives cost/benefit metrics and a 1-5 viability score
// from the eight coded numeric answers. The second return value is false
// when any required input is missing or inapplicable, or when the process
// count is not positive: the evaluation is "not computable", which callers
// must keep distinct from "excluded by negative ROI".
func EvaluateEconomics(g *Graph, answers []model.Answer) (*EconomicResult, bool) {
	inputs := make(map[string]float64, 8)
	byQuestion := answersByQuestion(answers)

	for _, code := range EconomicInputCodes() {
		q, ok := g.QuestionByCode(code)
		if !ok {
			return nil, false
		}
		rows := byQuestion[q.ID]
		if len(rows) == 0 {
			return nil, false
		}
		a := rows[0]
		if !a.IsApplicable || a.NumericValue == nil {
			return nil, false
		}
		inputs[code] = *a.NumericValue
	}

	// The one-off cost is apportioned across the platform's processes; a
	// non-positive count leaves nothing to divide by.
	if inputs[CodeProcessCount] <= 0 {
		return nil, false
	}

	hourlyRate := CostPerFTEYear / HoursPerFTEYear

	annualFrequency := inputs[CodeRunsPerMonth] * 12
	timeSavedPerRun := (inputs[CodeMinutesBefore] - inputs[CodeMinutesAfter]) / 60
	annualHoursSaved := timeSavedPerRun * annualFrequency
	fteSaved := annualHoursSaved / HoursPerFTEYear
	annualBenefit := fteSaved * CostPerFTEYear

	oneOffCost := inputs[CodeOneOffCost]/inputs[CodeProcessCount] + inputs[CodeImplementationHours]*hourlyRate
	recurringCost := inputs[CodeAnnualRunCost] + inputs[CodeMaintenanceHours]*12*hourlyRate
	totalCost := oneOffCost + recurringCost

	// Zero total cost is degenerate but handled, not an error.
	roi := 0.0
	if totalCost != 0 {
		roi = (annualBenefit - totalCost) / totalCost
	}

	score, excluded := ScoreForROI(roi)

	result := &EconomicResult{
		ROI:        roi,
		Score:      score,
		IsExcluded: excluded,
		Metrics: []model.EconomicMetric{
			{Key: MetricAnnualFrequency, Value: annualFrequency, Unit: "runs/year"},
			{Key: MetricTimeSavedPerRun, Value: timeSavedPerRun, Unit: "h"},
			{Key: MetricAnnualHoursSaved, Value: annualHoursSaved, Unit: "h/year"},
			{Key: MetricFTESaved, Value: fteSaved, Unit: "FTE"},
			{Key: MetricAnnualBenefit, Value: annualBenefit, Unit: "EUR/year"},
			{Key: MetricOneOffCost, Value: oneOffCost, Unit: "EUR"},
			{Key: MetricRecurringCost, Value: recurringCost, Unit: "EUR/year"},
			{Key: MetricTotalCost, Value: totalCost, Unit: "EUR/year"},
			{Key: MetricROI, Value: roi, Unit: "ratio"},
		},
	}
	return result, true
}

// ScoreForROI maps a return-on-investment ratio to the 1-5 scale. Bands are
// inclusive on their lower bound; a negative ROI excludes the dimension
// instead of scoring it.
func ScoreForROI(roi float64) (*float64, bool) {
	if roi < 0 {
		return nil, true
	}
	var score float64
	switch {
	case roi < 0.05:
		score = 1
	case roi < 0.20:
		score = 2
	case roi < 0.50:
		score = 3
	case roi < 1.00:
		score = 4
	default:
		score = 5
	}
	return &score, false
}
