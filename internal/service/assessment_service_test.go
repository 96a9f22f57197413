package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annihlj/AutomationFit/internal/cache"
	"github.com/annihlj/AutomationFit/internal/model"
	"github.com/annihlj/AutomationFit/internal/scoring"
	"github.com/annihlj/AutomationFit/internal/seed"
)

type fakeQuestionnaireRepo struct {
	data *scoring.GraphData
}

func (f *fakeQuestionnaireRepo) ActiveVersion(ctx context.Context) (*model.QuestionnaireVersion, error) {
	if f.data == nil {
		return nil, nil
	}
	v := f.data.Version
	return &v, nil
}

func (f *fakeQuestionnaireRepo) GraphData(ctx context.Context, versionID string) (*scoring.GraphData, error) {
	if f.data == nil || f.data.Version.ID != versionID {
		return nil, fmt.Errorf("unknown questionnaire version %s", versionID)
	}
	return f.data, nil
}

func (f *fakeQuestionnaireRepo) HasData(ctx context.Context) (bool, error) {
	return f.data != nil, nil
}

func (f *fakeQuestionnaireRepo) SeedGraph(ctx context.Context, data *scoring.GraphData) error {
	f.data = data
	return nil
}

type fakeGraphCache struct {
	entries map[string]*scoring.GraphData
}

func (f *fakeGraphCache) Set(ctx context.Context, versionID string, data *scoring.GraphData) error {
	if f.entries == nil {
		f.entries = make(map[string]*scoring.GraphData)
	}
	f.entries[versionID] = data
	return nil
}

func (f *fakeGraphCache) Get(ctx context.Context, versionID string) (*scoring.GraphData, error) {
	return f.entries[versionID], nil
}

func (f *fakeGraphCache) Delete(ctx context.Context, versionID string) error {
	delete(f.entries, versionID)
	return nil
}

type fakeAssessmentRepo struct {
	seq         int
	processes   map[string]*model.Process
	assessments map[string]*model.Assessment
	touched     []string
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{
		processes:   make(map[string]*model.Process),
		assessments: make(map[string]*model.Assessment),
	}
}

func (f *fakeAssessmentRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeAssessmentRepo) CreateProcess(ctx context.Context, process *model.Process) error {
	if process.ID == "" {
		process.ID = f.nextID("p")
	}
	f.processes[process.ID] = process
	return nil
}

func (f *fakeAssessmentRepo) GetProcess(ctx context.Context, id string) (*model.Process, error) {
	return f.processes[id], nil
}

func (f *fakeAssessmentRepo) UpdateProcess(ctx context.Context, process *model.Process) error {
	f.processes[process.ID] = process
	return nil
}

func (f *fakeAssessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = f.nextID("as")
	}
	f.assessments[assessment.ID] = assessment
	return nil
}

func (f *fakeAssessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	return f.assessments[id], nil
}

func (f *fakeAssessmentRepo) Touch(ctx context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeAnswerRepo struct {
	byAssessment map[string][]model.Answer
	replaceCalls int
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{byAssessment: make(map[string][]model.Answer)}
}

func (f *fakeAnswerRepo) ReplaceForAssessment(ctx context.Context, assessmentID string, answers []model.Answer) error {
	f.replaceCalls++
	f.byAssessment[assessmentID] = append([]model.Answer(nil), answers...)
	return nil
}

func (f *fakeAnswerRepo) GetByAssessment(ctx context.Context, assessmentID string) ([]model.Answer, error) {
	return append([]model.Answer(nil), f.byAssessment[assessmentID]...), nil
}

type fakeResultRepo struct {
	dims    map[string][]model.DimensionResult
	totals  map[string]model.TotalResult
	metrics map[string][]model.EconomicMetric
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{
		dims:    make(map[string][]model.DimensionResult),
		totals:  make(map[string]model.TotalResult),
		metrics: make(map[string][]model.EconomicMetric),
	}
}

func (f *fakeResultRepo) ReplaceForAssessment(ctx context.Context, assessmentID string,
	dimensions []model.DimensionResult, total model.TotalResult, metrics []model.EconomicMetric) error {
	f.dims[assessmentID] = dimensions
	f.totals[assessmentID] = total
	f.metrics[assessmentID] = metrics
	return nil
}

func (f *fakeResultRepo) GetTotal(ctx context.Context, assessmentID string) (*model.TotalResult, error) {
	total, ok := f.totals[assessmentID]
	if !ok {
		return nil, nil
	}
	return &total, nil
}

func (f *fakeResultRepo) GetDimensionResults(ctx context.Context, assessmentID string) ([]model.DimensionResult, error) {
	return f.dims[assessmentID], nil
}

func (f *fakeResultRepo) GetMetrics(ctx context.Context, assessmentID string) ([]model.EconomicMetric, error) {
	return f.metrics[assessmentID], nil
}

func (f *fakeResultRepo) ListTotals(ctx context.Context) ([]model.TotalResult, error) {
	var out []model.TotalResult
	for _, t := range f.totals {
		out = append(out, t)
	}
	return out, nil
}

type fakeComparisonCache struct {
	entries       []cache.ComparisonEntry
	invalidations int
}

func (f *fakeComparisonCache) Set(ctx context.Context, entries []cache.ComparisonEntry) error {
	f.entries = entries
	return nil
}

func (f *fakeComparisonCache) Get(ctx context.Context) ([]cache.ComparisonEntry, error) {
	return f.entries, nil
}

func (f *fakeComparisonCache) Invalidate(ctx context.Context) error {
	f.invalidations++
	f.entries = nil
	return nil
}

type fakeBroadcaster struct {
	scored []string
	last   *model.TotalResult
}

func (f *fakeBroadcaster) AssessmentScored(assessmentID string, total *model.TotalResult) {
	f.scored = append(f.scored, assessmentID)
	f.last = total
}

type testEnv struct {
	svc         *AssessmentService
	report      *ReportService
	assessments *fakeAssessmentRepo
	answers     *fakeAnswerRepo
	results     *fakeResultRepo
	comparison  *fakeComparisonCache
	broadcaster *fakeBroadcaster
}

func newTestEnv(data *scoring.GraphData) *testEnv {
	env := &testEnv{
		assessments: newFakeAssessmentRepo(),
		answers:     newFakeAnswerRepo(),
		results:     newFakeResultRepo(),
		comparison:  &fakeComparisonCache{},
		broadcaster: &fakeBroadcaster{},
	}
	questionnaireSvc := NewQuestionnaireService(&fakeQuestionnaireRepo{data: data}, &fakeGraphCache{})
	env.svc = NewAssessmentService(env.assessments, env.answers, env.results, questionnaireSvc, env.comparison)
	env.svc.SetBroadcaster(env.broadcaster)
	env.report = NewReportService(env.assessments, env.answers, env.results, questionnaireSvc, env.comparison)
	return env
}

func num(v float64) *float64 { return &v }

func fullInputs() []AnswerInput {
	return []AnswerInput{
		{QuestionID: seed.QPlatform, OptionIDs: []string{seed.OptYes}},
		{QuestionID: seed.QDigital, OptionIDs: []string{seed.OptYes}},
		{QuestionID: seed.QStandardized, OptionIDs: []string{seed.OptYes}},
		{QuestionID: seed.QChangeFreq, OptionIDs: []string{"opt-likert-5"}},
		{QuestionID: seed.QAcceptance, OptionIDs: []string{"opt-likert-4"}},
		{QuestionID: seed.QInputChannels, OptionIDs: []string{seed.OptChannelStructured, seed.OptChannelEmail}},
		{QuestionID: seed.QIfaceStable, OptionIDs: []string{"opt-likert-5"}},
		{QuestionID: "q-7.1", NumericValue: num(2)},
		{QuestionID: "q-7.2", NumericValue: num(20000)},
		{QuestionID: "q-7.3", NumericValue: num(200)},
		{QuestionID: "q-7.4", NumericValue: num(10000)},
		{QuestionID: "q-7.5", NumericValue: num(10)},
		{QuestionID: "q-7.6", NumericValue: num(1000)},
		{QuestionID: "q-7.7", NumericValue: num(30)},
		{QuestionID: "q-7.8", NumericValue: num(6)},
	}
}

func TestSubmitCreatesAndScoresAssessment(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	assessment, total, err := env.svc.Submit(ctx, ProcessInput{Name: "Invoice matching", Industry: "Finance"}, fullInputs())
	require.NoError(t, err)
	require.NotNil(t, assessment)
	require.NotNil(t, total)

	assert.Equal(t, seed.VersionID, assessment.QuestionnaireVersionID)
	require.NotNil(t, total.TotalRPA)
	assert.InDelta(t, 4.889, *total.TotalRPA, 0.001)
	assert.Equal(t, model.RecommendRPA, total.Recommendation)

	// One row per question, one extra for the second channel selection.
	stored, err := env.answers.GetByAssessment(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 16)

	assert.Equal(t, []string{assessment.ID}, env.broadcaster.scored)
	assert.Equal(t, 1, env.comparison.invalidations)
}

func TestSubmitWithoutActiveQuestionnaire(t *testing.T) {
	env := newTestEnv(nil)

	_, _, err := env.svc.Submit(context.Background(), ProcessInput{Name: "x"}, nil)
	assert.ErrorIs(t, err, ErrNoActiveQuestionnaire)
}

func TestUpdateUnknownAssessment(t *testing.T) {
	env := newTestEnv(seed.Data())

	_, err := env.svc.Update(context.Background(), "as-missing", ProcessInput{}, nil)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestUpdateReplacesAnswersAndRecomputes(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	assessment, _, err := env.svc.Submit(ctx, ProcessInput{Name: "Invoice matching"}, fullInputs())
	require.NoError(t, err)

	// Flip standardization to "no": the dimension now excludes RPA.
	inputs := fullInputs()
	inputs[2].OptionIDs = []string{seed.OptNo}

	total, err := env.svc.Update(ctx, assessment.ID, ProcessInput{Name: "Invoice matching v2"}, inputs)
	require.NoError(t, err)
	require.NotNil(t, total)

	assert.True(t, total.RPAExcluded)
	assert.Equal(t, model.RecommendIPA, total.Recommendation)
	assert.Contains(t, env.assessments.touched, assessment.ID)

	process, err := env.assessments.GetProcess(ctx, assessment.ProcessID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice matching v2", process.Name)

	stored, err := env.answers.GetByAssessment(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 16, "answers are replaced wholesale, never appended")
}

func TestUpdateReplacesAllProcessFields(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	assessment, _, err := env.svc.Submit(ctx, ProcessInput{
		Name:        "Invoice matching",
		Description: "Match invoices to purchase orders",
		Industry:    "Finance",
	}, fullInputs())
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, assessment.ID, ProcessInput{Name: "Invoice matching v2"}, fullInputs())
	require.NoError(t, err)

	process, err := env.assessments.GetProcess(ctx, assessment.ProcessID)
	require.NoError(t, err)
	assert.Equal(t, "Invoice matching v2", process.Name)
	assert.Empty(t, process.Description, "description is replaced, not merged")
	assert.Empty(t, process.Industry, "industry is replaced, not merged")
}

func TestComputeResultsFromStoredAnswers(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	assessment, first, err := env.svc.Submit(ctx, ProcessInput{Name: "x"}, fullInputs())
	require.NoError(t, err)

	recomputed, err := env.svc.ComputeResults(ctx, assessment.ID)
	require.NoError(t, err)
	require.NotNil(t, recomputed)

	assert.Equal(t, first.Recommendation, recomputed.Recommendation)
	require.NotNil(t, recomputed.TotalRPA)
	assert.InDelta(t, *first.TotalRPA, *recomputed.TotalRPA, 1e-9)
}

func TestEconomicMetricsReturnsNamedFacts(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	assessment, _, err := env.svc.Submit(ctx, ProcessInput{Name: "x"}, fullInputs())
	require.NoError(t, err)

	metrics, err := env.svc.EconomicMetrics(ctx, assessment.ID)
	require.NoError(t, err)
	require.Len(t, metrics, 9)

	roi, ok := metrics["roi"]
	require.True(t, ok)
	assert.Greater(t, roi.Value, 1.0)
	assert.Equal(t, "ratio", roi.Unit)

	benefit, ok := metrics["annual_benefit"]
	require.True(t, ok)
	assert.Equal(t, "EUR/year", benefit.Unit)
}

func TestResolveApplicabilityOnStoredAnswersIsStable(t *testing.T) {
	env := newTestEnv(seed.Data())
	ctx := context.Background()

	// Platform "no" hides the dependent branch during submission already.
	inputs := fullInputs()
	inputs[0].OptionIDs = []string{seed.OptNo}

	assessment, _, err := env.svc.Submit(ctx, ProcessInput{Name: "x"}, inputs)
	require.NoError(t, err)

	stored, err := env.answers.GetByAssessment(ctx, assessment.ID)
	require.NoError(t, err)
	for _, a := range stored {
		if a.QuestionID == seed.QDigital || a.QuestionID == seed.QIfaceStable {
			assert.False(t, a.IsApplicable, a.QuestionID)
			assert.Empty(t, a.OptionID, a.QuestionID)
		}
	}

	// Stored answers are already at the fixed point.
	report, err := env.svc.ResolveApplicability(ctx, assessment.ID)
	require.NoError(t, err)
	assert.True(t, report.Converged)
	assert.Equal(t, 0, report.Changed)
}
