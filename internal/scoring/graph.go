package scoring

import (
	"sort"

	"github.com/annihlj/AutomationFit/internal/model"
)

// GraphData is the serializable snapshot of one questionnaire version's
// master data. It is what repositories load and caches store; Graph wraps it
// with lookup indexes.
type GraphData struct {
	Version    model.QuestionnaireVersion `json:"version" bson:"version"`
	Dimensions []model.Dimension          `json:"dimensions" bson:"dimensions"`
	Scales     []model.Scale              `json:"scales" bson:"scales"`
	Options    []model.ScaleOption        `json:"options" bson:"options"`
	Questions  []model.Question           `json:"questions" bson:"questions"`
	Scores     []model.OptionScore        `json:"scores" bson:"scores"`
	Hints      []model.Hint               `json:"hints" bson:"hints"`
}

type scoreKey struct {
	questionID string
	optionID   string
	strategy   model.Strategy
}

// Graph is an immutable, indexed view of the question graph. It is built
// once per evaluation and passed explicitly into the resolver and scorer.
type Graph struct {
	data                 GraphData
	dimensions           []model.Dimension
	questionsByID        map[string]*model.Question
	questionsByCode      map[string]*model.Question
	questionsByDimension map[string][]*model.Question
	optionsByID          map[string]*model.ScaleOption
	optionsByScale       map[string][]*model.ScaleOption
	scores               map[scoreKey]*model.OptionScore
	hintsByQuestion      map[string][]model.Hint
}

// NewGraph indexes a snapshot. The snapshot is not mutated afterwards.
func NewGraph(data GraphData) *Graph {
	g := &Graph{
		data:                 data,
		dimensions:           append([]model.Dimension(nil), data.Dimensions...),
		questionsByID:        make(map[string]*model.Question, len(data.Questions)),
		questionsByCode:      make(map[string]*model.Question, len(data.Questions)),
		questionsByDimension: make(map[string][]*model.Question),
		optionsByID:          make(map[string]*model.ScaleOption, len(data.Options)),
		optionsByScale:       make(map[string][]*model.ScaleOption),
		scores:               make(map[scoreKey]*model.OptionScore, len(data.Scores)),
		hintsByQuestion:      make(map[string][]model.Hint),
	}

	sort.SliceStable(g.dimensions, func(i, j int) bool {
		return g.dimensions[i].SortOrder < g.dimensions[j].SortOrder
	})

	for i := range data.Questions {
		q := &data.Questions[i]
		g.questionsByID[q.ID] = q
		g.questionsByCode[q.Code] = q
		g.questionsByDimension[q.DimensionID] = append(g.questionsByDimension[q.DimensionID], q)
	}
	for dimID := range g.questionsByDimension {
		qs := g.questionsByDimension[dimID]
		sort.SliceStable(qs, func(i, j int) bool { return qs[i].SortOrder < qs[j].SortOrder })
	}

	for i := range data.Options {
		o := &data.Options[i]
		g.optionsByID[o.ID] = o
		g.optionsByScale[o.ScaleID] = append(g.optionsByScale[o.ScaleID], o)
	}
	for scaleID := range g.optionsByScale {
		os := g.optionsByScale[scaleID]
		sort.SliceStable(os, func(i, j int) bool { return os[i].SortOrder < os[j].SortOrder })
	}

	for i := range data.Scores {
		s := &data.Scores[i]
		g.scores[scoreKey{s.QuestionID, s.OptionID, s.Strategy}] = s
	}

	for _, h := range data.Hints {
		g.hintsByQuestion[h.QuestionID] = append(g.hintsByQuestion[h.QuestionID], h)
	}

	return g
}

// Data returns the underlying snapshot, for caching and transport.
func (g *Graph) Data() GraphData { return g.data }

// Version returns the questionnaire version of the snapshot.
func (g *Graph) Version() model.QuestionnaireVersion { return g.data.Version }

// Dimensions returns all dimensions in sort order.
func (g *Graph) Dimensions() []model.Dimension { return g.dimensions }

// Question looks up a question by id.
func (g *Graph) Question(id string) (*model.Question, bool) {
	q, ok := g.questionsByID[id]
	return q, ok
}

// QuestionByCode looks up a question by its questionnaire code, e.g. "7.3".
func (g *Graph) QuestionByCode(code string) (*model.Question, bool) {
	q, ok := g.questionsByCode[code]
	return q, ok
}

// QuestionsForDimension returns a dimension's questions in sort order.
func (g *Graph) QuestionsForDimension(dimensionID string) []*model.Question {
	return g.questionsByDimension[dimensionID]
}

// Questions returns every question of the snapshot.
func (g *Graph) Questions() []model.Question { return g.data.Questions }

// Option looks up a scale option by id.
func (g *Graph) Option(id string) (*model.ScaleOption, bool) {
	o, ok := g.optionsByID[id]
	return o, ok
}

// OptionsForScale returns a scale's options in sort order.
func (g *Graph) OptionsForScale(scaleID string) []*model.ScaleOption {
	return g.optionsByScale[scaleID]
}

// HintsForQuestion returns the advisory hints attached to a question, in
// snapshot order.
func (g *Graph) HintsForQuestion(questionID string) []model.Hint {
	return g.hintsByQuestion[questionID]
}

// HintsForOption returns the hints triggered by selecting one option of a
// question.
func (g *Graph) HintsForOption(questionID, optionID string) []model.Hint {
	var hints []model.Hint
	for _, h := range g.hintsByQuestion[questionID] {
		if h.OptionID == "" || h.OptionID == optionID {
			hints = append(hints, h)
		}
	}
	return hints
}

// Score looks up the OptionScore for a (question, option, strategy) triple.
func (g *Graph) Score(questionID, optionID string, strategy model.Strategy) (*model.OptionScore, bool) {
	s, ok := g.scores[scoreKey{questionID, optionID, strategy}]
	return s, ok
}
