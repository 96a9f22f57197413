// Package seed builds the master questionnaire dataset: dimensions, scales,
// questions with their visibility conditions, and the per-strategy option
// scores. cmd/seed loads it into MongoDB; tests evaluate against it directly.
package seed

import (
	"fmt"

	"github.com/annihlj/AutomationFit/internal/model"
	"github.com/annihlj/AutomationFit/internal/scoring"
)

// Stable identifiers so reseeding an empty database is reproducible.
const (
	VersionID = "qv-1"

	ScaleLikert   = "scale-likert-1-5"
	ScaleYesNo    = "scale-yes-no"
	ScaleChannels = "scale-input-channels"

	OptYes = "opt-yes"
	OptNo  = "opt-no"
	OptNA  = "opt-na"

	OptChannelStructured = "opt-ch-structured"
	OptChannelEmail      = "opt-ch-email"
	OptChannelScanned    = "opt-ch-scanned"
	OptChannelPaper      = "opt-ch-paper"

	DimFoundation = "dim-foundation"
	DimOrg        = "dim-organisational"
	DimTech       = "dim-technical"
	DimEconomic   = "dim-economic"

	QPlatform = "q-1.1"
	QDigital  = "q-1.2"

	QStandardized = "q-2.1"
	QChangeFreq   = "q-2.2"
	QAcceptance   = "q-2.3"

	QInputChannels = "q-3.1"
	QIfaceStable   = "q-3.2"
)

func likertOptionID(step int) string { return fmt.Sprintf("opt-likert-%d", step) }

// Data returns the full master questionnaire snapshot.
func Data() *scoring.GraphData {
	data := &scoring.GraphData{
		Version: model.QuestionnaireVersion{
			ID:       VersionID,
			Name:     "RPA/IPA Assessment Questionnaire",
			Version:  "1.0",
			IsActive: true,
		},
		Dimensions: []model.Dimension{
			{ID: DimFoundation, QuestionnaireVersionID: VersionID, Code: "1", Name: "Process foundation", SortOrder: 1, CalcMethod: model.CalcFilter},
			{ID: DimOrg, QuestionnaireVersionID: VersionID, Code: "2", Name: "Organisational fit", SortOrder: 2, CalcMethod: model.CalcMean},
			{ID: DimTech, QuestionnaireVersionID: VersionID, Code: "3", Name: "Technical fit", SortOrder: 3, CalcMethod: model.CalcMean},
			{ID: DimEconomic, QuestionnaireVersionID: VersionID, Code: "7", Name: "Economic viability", SortOrder: 4, CalcMethod: model.CalcEconomic},
		},
		Scales: []model.Scale{
			{ID: ScaleLikert, Key: "likert_1_5", Label: "Likert scale 1-5"},
			{ID: ScaleYesNo, Key: "yes_no", Label: "Yes/No"},
			{ID: ScaleChannels, Key: "input_channels", Label: "Input channels"},
		},
	}

	data.Options = buildOptions()
	data.Questions = buildQuestions()
	data.Scores = buildScores()
	data.Hints = buildHints()

	return data
}

func buildOptions() []model.ScaleOption {
	options := []model.ScaleOption{
		{ID: OptYes, ScaleID: ScaleYesNo, Code: "YES", Label: "Yes", SortOrder: 1},
		{ID: OptNo, ScaleID: ScaleYesNo, Code: "NO", Label: "No", SortOrder: 2},
		{ID: OptNA, ScaleID: ScaleYesNo, Code: "NA", Label: "Not specified", SortOrder: 3, IsNA: true},

		{ID: OptChannelStructured, ScaleID: ScaleChannels, Code: "STRUCTURED", Label: "Structured digital input", SortOrder: 1},
		{ID: OptChannelEmail, ScaleID: ScaleChannels, Code: "EMAIL", Label: "Email", SortOrder: 2},
		{ID: OptChannelScanned, ScaleID: ScaleChannels, Code: "SCANNED", Label: "Scanned documents", SortOrder: 3},
		{ID: OptChannelPaper, ScaleID: ScaleChannels, Code: "PAPER", Label: "Paper only", SortOrder: 4},
	}

	likertLabels := []string{"Very low", "Low", "Medium", "High", "Very high"}
	for i, label := range likertLabels {
		step := i + 1
		options = append(options, model.ScaleOption{
			ID:        likertOptionID(step),
			ScaleID:   ScaleLikert,
			Code:      fmt.Sprintf("%d", step),
			Label:     label,
			SortOrder: step,
		})
	}
	return options
}

func buildQuestions() []model.Question {
	questions := []model.Question{
		// Dimension 1: filter questions gating the rest of the questionnaire.
		{
			ID: QPlatform, QuestionnaireVersionID: VersionID, DimensionID: DimFoundation,
			Code: "1.1", Text: "Is an automation platform available in your organisation?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleYesNo, SortOrder: 1,
		},
		{
			ID: QDigital, QuestionnaireVersionID: VersionID, DimensionID: DimFoundation,
			Code: "1.2", Text: "Is the process executed end-to-end in digital systems?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleYesNo, SortOrder: 2,
			Conditions:        []model.Condition{{QuestionID: QPlatform, OptionID: OptYes}},
			DependsLogic:      model.DependsAll,
			FilterDescription: "Only relevant when an automation platform exists.",
		},

		// Dimension 2: organisational fit.
		{
			ID: QStandardized, QuestionnaireVersionID: VersionID, DimensionID: DimOrg,
			Code: "2.1", Text: "Is the process standardized and documented?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleYesNo, SortOrder: 1,
		},
		{
			ID: QChangeFreq, QuestionnaireVersionID: VersionID, DimensionID: DimOrg,
			Code: "2.2", Text: "How stable is the process over time?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleLikert, SortOrder: 2,
		},
		{
			ID: QAcceptance, QuestionnaireVersionID: VersionID, DimensionID: DimOrg,
			Code: "2.3", Text: "How high is employee acceptance of automation?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleLikert, SortOrder: 3,
		},

		// Dimension 3: technical fit. 3.1 carries a two-condition gate, 3.2
		// still uses the legacy single-condition fields.
		{
			ID: QInputChannels, QuestionnaireVersionID: VersionID, DimensionID: DimTech,
			Code: "3.1", Text: "Which input channels feed the process?",
			Type: model.QuestionTypeMultiChoice, ScaleID: ScaleChannels, SortOrder: 1,
			Conditions: []model.Condition{
				{QuestionID: QPlatform, OptionID: OptYes},
				{QuestionID: QDigital, OptionID: OptYes},
			},
			DependsLogic:      model.DependsAll,
			FilterDescription: "Requires a platform and digital execution.",
		},
		{
			ID: QIfaceStable, QuestionnaireVersionID: VersionID, DimensionID: DimTech,
			Code: "3.2", Text: "How stable are the involved application interfaces?",
			Type: model.QuestionTypeSingleChoice, ScaleID: ScaleLikert, SortOrder: 2,
			DependsOnQuestionID: QPlatform, DependsOnOptionID: OptYes,
		},
	}

	// Dimension 7: the eight numeric inputs of the economic evaluation.
	economic := []struct {
		code string
		text string
		unit string
	}{
		{scoring.CodeProcessCount, "How many processes share the automation platform investment?", "processes"},
		{scoring.CodeOneOffCost, "One-off cost for licensing and infrastructure", "EUR"},
		{scoring.CodeImplementationHours, "Estimated implementation effort", "h"},
		{scoring.CodeAnnualRunCost, "Annual run cost of the automated solution", "EUR/year"},
		{scoring.CodeMaintenanceHours, "Monthly maintenance effort", "h/month"},
		{scoring.CodeRunsPerMonth, "How often is the process executed per month?", "runs/month"},
		{scoring.CodeMinutesBefore, "Handling time per execution before automation", "min"},
		{scoring.CodeMinutesAfter, "Expected handling time per execution after automation", "min"},
	}
	for i, e := range economic {
		questions = append(questions, model.Question{
			ID:                     "q-" + e.code,
			QuestionnaireVersionID: VersionID,
			DimensionID:            DimEconomic,
			Code:                   e.code,
			Text:                   e.text,
			Type:                   model.QuestionTypeNumber,
			Unit:                   e.unit,
			SortOrder:              i + 1,
		})
	}

	return questions
}

func buildScores() []model.OptionScore {
	var scores []model.OptionScore

	add := func(questionID, optionID string, strategy model.Strategy, score float64) {
		scores = append(scores, model.OptionScore{
			ID:           scoreID(questionID, optionID, strategy),
			QuestionID:   questionID,
			OptionID:     optionID,
			Strategy:     strategy,
			Score:        &score,
			IsApplicable: true,
		})
	}
	addExclusion := func(questionID, optionID string, strategy model.Strategy) {
		scores = append(scores, model.OptionScore{
			ID:           scoreID(questionID, optionID, strategy),
			QuestionID:   questionID,
			OptionID:     optionID,
			Strategy:     strategy,
			IsExclusion:  true,
			IsApplicable: true,
		})
	}
	addNA := func(questionID, optionID string, strategy model.Strategy) {
		scores = append(scores, model.OptionScore{
			ID:         scoreID(questionID, optionID, strategy),
			QuestionID: questionID,
			OptionID:   optionID,
			Strategy:   strategy,
		})
	}

	// 2.1: a non-standardized process disqualifies RPA outright but still
	// suits IPA; "not specified" contributes nothing.
	add(QStandardized, OptYes, model.StrategyRPA, 5)
	add(QStandardized, OptYes, model.StrategyIPA, 3)
	addExclusion(QStandardized, OptNo, model.StrategyRPA)
	add(QStandardized, OptNo, model.StrategyIPA, 4)
	addNA(QStandardized, OptNA, model.StrategyRPA)
	addNA(QStandardized, OptNA, model.StrategyIPA)

	// 2.2: stability favors RPA linearly; IPA tolerates change.
	rpaStability := []float64{1, 2, 3, 4, 5}
	ipaStability := []float64{5, 4, 3, 2, 2}
	for i := 0; i < 5; i++ {
		add(QChangeFreq, likertOptionID(i+1), model.StrategyRPA, rpaStability[i])
		add(QChangeFreq, likertOptionID(i+1), model.StrategyIPA, ipaStability[i])
	}

	// 2.3: acceptance helps both strategies alike.
	for i := 0; i < 5; i++ {
		add(QAcceptance, likertOptionID(i+1), model.StrategyRPA, float64(i+1))
		add(QAcceptance, likertOptionID(i+1), model.StrategyIPA, float64(i+1))
	}

	// 3.1: input channels. Paper-only input disqualifies RPA; IPA can still
	// digitize it, barely.
	add(QInputChannels, OptChannelStructured, model.StrategyRPA, 5)
	add(QInputChannels, OptChannelStructured, model.StrategyIPA, 4)
	add(QInputChannels, OptChannelEmail, model.StrategyRPA, 3)
	add(QInputChannels, OptChannelEmail, model.StrategyIPA, 5)
	add(QInputChannels, OptChannelScanned, model.StrategyRPA, 2)
	add(QInputChannels, OptChannelScanned, model.StrategyIPA, 5)
	addExclusion(QInputChannels, OptChannelPaper, model.StrategyRPA)
	add(QInputChannels, OptChannelPaper, model.StrategyIPA, 2)

	// 3.2: interface stability matters for RPA, less so for IPA.
	for i := 0; i < 5; i++ {
		add(QIfaceStable, likertOptionID(i+1), model.StrategyRPA, float64(i+1))
		add(QIfaceStable, likertOptionID(i+1), model.StrategyIPA, 3)
	}

	return scores
}

func scoreID(questionID, optionID string, strategy model.Strategy) string {
	return fmt.Sprintf("os-%s-%s-%s", questionID, optionID, strategy)
}

// buildHints attaches advisory texts to the answers that gate or disqualify
// parts of the questionnaire, so the rendering client can warn the user at
// selection time.
func buildHints() []model.Hint {
	return []model.Hint{
		{
			ID: "hint-platform-no", QuestionID: QPlatform, OptionID: OptNo,
			Text: "Without an automation platform the follow-up questions do not apply and no recommendation can be derived.",
			Type: model.HintWarning,
		},
		{
			ID: "hint-standardized-no-rpa", QuestionID: QStandardized, OptionID: OptNo,
			Strategy: model.StrategyRPA,
			Text:     "A non-standardized process rules out RPA. IPA remains an option.",
			Type:     model.HintWarning,
		},
		{
			ID: "hint-paper-rpa", QuestionID: QInputChannels, OptionID: OptChannelPaper,
			Strategy: model.StrategyRPA,
			Text:     "Paper-only input cannot be read by RPA without prior digitization.",
			Type:     model.HintError,
		},
		{
			ID: "hint-paper-ipa", QuestionID: QInputChannels, OptionID: OptChannelPaper,
			Strategy: model.StrategyIPA,
			Text:     "IPA can digitize paper input, but expect low accuracy and extra validation effort.",
			Type:     model.HintInfo,
		},
		{
			ID: "hint-process-count", QuestionID: "q-" + scoring.CodeProcessCount,
			Text: "The one-off platform cost is split across this many processes. Enter at least 1.",
			Type: model.HintInfo,
		},
	}
}
