package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annihlj/AutomationFit/internal/model"
)

func TestScoreMeanDimensionAveragesApplicableScores(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{
		choice(qStandard, optYes), // RPA 4, IPA 2
		choice(qRating, "o-r5"),   // 5 for both
	}

	rpa := ScoreMeanDimension(g, dim, answers, model.StrategyRPA)
	require.NotNil(t, rpa.MeanScore)
	assert.InDelta(t, 4.5, *rpa.MeanScore, 1e-9)
	assert.False(t, rpa.IsExcluded)

	ipa := ScoreMeanDimension(g, dim, answers, model.StrategyIPA)
	require.NotNil(t, ipa.MeanScore)
	assert.InDelta(t, 3.5, *ipa.MeanScore, 1e-9)
}

func TestScoreMeanDimensionExclusionShortCircuits(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{
		choice(qStandard, optNo), // excludes RPA, scores 3 for IPA
		choice(qRating, "o-r5"),
	}

	rpa := ScoreMeanDimension(g, dim, answers, model.StrategyRPA)
	assert.True(t, rpa.IsExcluded)
	assert.Equal(t, qStandard, rpa.ExcludedBy)
	assert.Nil(t, rpa.MeanScore, "an excluded dimension keeps no partial mean")

	ipa := ScoreMeanDimension(g, dim, answers, model.StrategyIPA)
	assert.False(t, ipa.IsExcluded)
	require.NotNil(t, ipa.MeanScore)
	assert.InDelta(t, 4.0, *ipa.MeanScore, 1e-9)
}

func TestScoreMeanDimensionNAOptionContributesNothing(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{choice(qStandard, optNA)}

	for _, strategy := range model.Strategies() {
		outcome := ScoreMeanDimension(g, dim, answers, strategy)
		assert.Nil(t, outcome.MeanScore)
		assert.False(t, outcome.IsExcluded)
	}
}

func TestScoreMeanDimensionSkipsInapplicableRows(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{
		choice(qStandard, optYes),
		{QuestionID: qRating, OptionID: "o-r5", IsApplicable: false},
	}

	outcome := ScoreMeanDimension(g, dim, answers, model.StrategyRPA)
	require.NotNil(t, outcome.MeanScore)
	assert.InDelta(t, 4.0, *outcome.MeanScore, 1e-9)
}

func TestScoreMeanDimensionUnansweredYieldsNilMean(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)

	outcome := ScoreMeanDimension(g, dim, nil, model.StrategyRPA)
	assert.Nil(t, outcome.MeanScore)
	assert.False(t, outcome.IsExcluded)
}

func TestScoreMeanDimensionMultiChoiceStaysOutOfMean(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{
		choice(qStandard, optYes),
		choice(qMulti, optM1),
		choice(qMulti, optM2),
	}

	outcome := ScoreMeanDimension(g, dim, answers, model.StrategyRPA)
	require.NotNil(t, outcome.MeanScore)
	assert.InDelta(t, 4.0, *outcome.MeanScore, 1e-9, "multi-choice scores must not join the mean")
}

func TestScoreMeanDimensionMultiChoiceExclusionExcludes(t *testing.T) {
	g := testGraph()
	dim := fixtureDimension(g, dimOrg)
	answers := []model.Answer{
		choice(qStandard, optYes),
		choice(qMulti, optM1),
		choice(qMulti, optMX), // excludes RPA only
	}

	rpa := ScoreMeanDimension(g, dim, answers, model.StrategyRPA)
	assert.True(t, rpa.IsExcluded)
	assert.Equal(t, qMulti, rpa.ExcludedBy)

	ipa := ScoreMeanDimension(g, dim, answers, model.StrategyIPA)
	assert.False(t, ipa.IsExcluded)
	require.NotNil(t, ipa.MeanScore)
	assert.InDelta(t, 2.0, *ipa.MeanScore, 1e-9)
}

func TestAggregateMultiChoice(t *testing.T) {
	g := testGraph()

	t.Run("max applicable score wins", func(t *testing.T) {
		score, excluded := AggregateMultiChoice(g, qMulti, []string{optM1, optM2}, model.StrategyRPA)
		require.NotNil(t, score)
		assert.InDelta(t, 5.0, *score, 1e-9)
		assert.False(t, excluded)

		score, _ = AggregateMultiChoice(g, qMulti, []string{optM1, optM2}, model.StrategyIPA)
		require.NotNil(t, score)
		assert.InDelta(t, 5.0, *score, 1e-9)
	})

	t.Run("exclusion overrides any score", func(t *testing.T) {
		score, excluded := AggregateMultiChoice(g, qMulti, []string{optM1, optMX}, model.StrategyRPA)
		assert.Nil(t, score)
		assert.True(t, excluded)
	})

	t.Run("unscored selections yield nothing", func(t *testing.T) {
		score, excluded := AggregateMultiChoice(g, qMulti, []string{"o-unknown"}, model.StrategyRPA)
		assert.Nil(t, score)
		assert.False(t, excluded)
	})
}
