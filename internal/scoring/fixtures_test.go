package scoring

import (
	"github.com/annihlj/AutomationFit/internal/model"
)

// Shared test graph: a filter dimension gating two questions, a mean
// dimension with exclusion, N/A, any-logic and multi-choice cases, and an
// economic dimension with the eight numeric inputs.
const (
	dimFilter = "d-filter"
	dimOrg    = "d-org"
	dimEcon   = "d-econ"

	optYes = "o-yes"
	optNo  = "o-no"
	optNA  = "o-na"

	qGate     = "q-gate"     // unconditional yes/no
	qDigital  = "q-digital"  // legacy depends_on gate=yes
	qStandard = "q-standard" // yes scores, no excludes RPA
	qRating   = "q-rating"   // all-logic conditions on gate and digital
	qChain    = "q-chain"    // condition on digital only
	qAnyLogic = "q-anylogic" // any-logic conditions on gate and digital
	qMulti    = "q-multi"    // multi-choice with RPA exclusion option

	optM1 = "o-m1"
	optM2 = "o-m2"
	optMX = "o-mx" // excludes RPA when selected
)

func fptr(v float64) *float64 { return &v }

func testGraph() *Graph {
	data := GraphData{
		Version: model.QuestionnaireVersion{ID: "qv-test", Name: "test", Version: "1", IsActive: true},
		Dimensions: []model.Dimension{
			{ID: dimFilter, Code: "1", Name: "Foundation", SortOrder: 1, CalcMethod: model.CalcFilter},
			{ID: dimOrg, Code: "2", Name: "Organisational fit", SortOrder: 2, CalcMethod: model.CalcMean},
			{ID: dimEcon, Code: "7", Name: "Economic viability", SortOrder: 3, CalcMethod: model.CalcEconomic},
		},
		Scales: []model.Scale{
			{ID: "s-yn", Key: "yes_no"},
			{ID: "s-rate", Key: "rating"},
			{ID: "s-ch", Key: "channels"},
		},
		Options: []model.ScaleOption{
			{ID: optYes, ScaleID: "s-yn", Code: "YES", SortOrder: 1},
			{ID: optNo, ScaleID: "s-yn", Code: "NO", SortOrder: 2},
			{ID: optNA, ScaleID: "s-yn", Code: "NA", SortOrder: 3, IsNA: true},
			{ID: "o-r1", ScaleID: "s-rate", Code: "1", SortOrder: 1},
			{ID: "o-r2", ScaleID: "s-rate", Code: "2", SortOrder: 2},
			{ID: "o-r3", ScaleID: "s-rate", Code: "3", SortOrder: 3},
			{ID: "o-r4", ScaleID: "s-rate", Code: "4", SortOrder: 4},
			{ID: "o-r5", ScaleID: "s-rate", Code: "5", SortOrder: 5},
			{ID: optM1, ScaleID: "s-ch", Code: "M1", SortOrder: 1},
			{ID: optM2, ScaleID: "s-ch", Code: "M2", SortOrder: 2},
			{ID: optMX, ScaleID: "s-ch", Code: "MX", SortOrder: 3},
		},
		Questions: []model.Question{
			{ID: qGate, DimensionID: dimFilter, Code: "1.1", Type: model.QuestionTypeSingleChoice, ScaleID: "s-yn", SortOrder: 1},
			{ID: qDigital, DimensionID: dimFilter, Code: "1.2", Type: model.QuestionTypeSingleChoice, ScaleID: "s-yn", SortOrder: 2,
				DependsOnQuestionID: qGate, DependsOnOptionID: optYes},
			{ID: qStandard, DimensionID: dimOrg, Code: "2.1", Type: model.QuestionTypeSingleChoice, ScaleID: "s-yn", SortOrder: 1},
			{ID: qRating, DimensionID: dimOrg, Code: "2.2", Type: model.QuestionTypeSingleChoice, ScaleID: "s-rate", SortOrder: 2,
				Conditions:   []model.Condition{{QuestionID: qGate, OptionID: optYes}, {QuestionID: qDigital, OptionID: optYes}},
				DependsLogic: model.DependsAll},
			{ID: qChain, DimensionID: dimOrg, Code: "2.3", Type: model.QuestionTypeSingleChoice, ScaleID: "s-yn", SortOrder: 3,
				Conditions:   []model.Condition{{QuestionID: qDigital, OptionID: optYes}},
				DependsLogic: model.DependsAll},
			{ID: qAnyLogic, DimensionID: dimOrg, Code: "2.4", Type: model.QuestionTypeSingleChoice, ScaleID: "s-yn", SortOrder: 4,
				Conditions:   []model.Condition{{QuestionID: qGate, OptionID: optYes}, {QuestionID: qDigital, OptionID: optYes}},
				DependsLogic: model.DependsAny},
			{ID: qMulti, DimensionID: dimOrg, Code: "2.5", Type: model.QuestionTypeMultiChoice, ScaleID: "s-ch", SortOrder: 5},
		},
		Scores: scoreRows(),
	}

	for _, code := range EconomicInputCodes() {
		data.Questions = append(data.Questions, model.Question{
			ID: "q-" + code, DimensionID: dimEcon, Code: code,
			Type: model.QuestionTypeNumber, SortOrder: len(data.Questions),
		})
	}

	return NewGraph(data)
}

func scoreRows() []model.OptionScore {
	var rows []model.OptionScore

	score := func(q, o string, strategy model.Strategy, v float64) {
		rows = append(rows, model.OptionScore{
			QuestionID: q, OptionID: o, Strategy: strategy,
			Score: fptr(v), IsApplicable: true,
		})
	}
	exclusion := func(q, o string, strategy model.Strategy) {
		rows = append(rows, model.OptionScore{
			QuestionID: q, OptionID: o, Strategy: strategy,
			IsExclusion: true, IsApplicable: true,
		})
	}
	notApplicable := func(q, o string, strategy model.Strategy) {
		rows = append(rows, model.OptionScore{QuestionID: q, OptionID: o, Strategy: strategy})
	}

	score(qStandard, optYes, model.StrategyRPA, 4)
	score(qStandard, optYes, model.StrategyIPA, 2)
	exclusion(qStandard, optNo, model.StrategyRPA)
	score(qStandard, optNo, model.StrategyIPA, 3)
	notApplicable(qStandard, optNA, model.StrategyRPA)
	notApplicable(qStandard, optNA, model.StrategyIPA)

	ratings := []string{"o-r1", "o-r2", "o-r3", "o-r4", "o-r5"}
	for i, o := range ratings {
		score(qRating, o, model.StrategyRPA, float64(i+1))
		score(qRating, o, model.StrategyIPA, float64(i+1))
	}

	score(qChain, optYes, model.StrategyRPA, 3)
	score(qChain, optYes, model.StrategyIPA, 3)
	score(qChain, optNo, model.StrategyRPA, 2)
	score(qChain, optNo, model.StrategyIPA, 2)

	score(qAnyLogic, optYes, model.StrategyRPA, 5)
	score(qAnyLogic, optYes, model.StrategyIPA, 5)
	score(qAnyLogic, optNo, model.StrategyRPA, 1)
	score(qAnyLogic, optNo, model.StrategyIPA, 1)

	score(qMulti, optM1, model.StrategyRPA, 5)
	score(qMulti, optM1, model.StrategyIPA, 4)
	score(qMulti, optM2, model.StrategyRPA, 3)
	score(qMulti, optM2, model.StrategyIPA, 5)
	exclusion(qMulti, optMX, model.StrategyRPA)
	score(qMulti, optMX, model.StrategyIPA, 2)

	return rows
}

func fixtureDimension(g *Graph, id string) model.Dimension {
	for _, d := range g.Dimensions() {
		if d.ID == id {
			return d
		}
	}
	return model.Dimension{}
}

func choice(questionID, optionID string) model.Answer {
	return model.Answer{QuestionID: questionID, OptionID: optionID, IsApplicable: true}
}

func numeric(questionID string, v float64) model.Answer {
	return model.Answer{QuestionID: questionID, NumericValue: fptr(v), IsApplicable: true}
}

// economicAnswers returns the eight inputs of the worked example whose ROI is
// strongly positive.
func economicAnswers() []model.Answer {
	return []model.Answer{
		numeric("q-7.1", 2),
		numeric("q-7.2", 20000),
		numeric("q-7.3", 200),
		numeric("q-7.4", 10000),
		numeric("q-7.5", 10),
		numeric("q-7.6", 1000),
		numeric("q-7.7", 30),
		numeric("q-7.8", 6),
	}
}
