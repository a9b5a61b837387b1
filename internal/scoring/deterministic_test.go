package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/types"
)

func testConfig() *Config {
	return &Config{
		Weights:       DeterministicWeights{Skills: 0.40, AI: 0.20, Experience: 0.20, Support: 0.20, Education: 0},
		RequiredYears: 3,
		Taxonomy: types.SkillTaxonomy{
			Required: []string{"python", "api", "saas", "troubleshooting"},
		},
	}
}

func testBundle() *types.FactBundle {
	return &types.FactBundle{
		YearsExperience:  4,
		MatchedRequired:  []string{"api", "python"},
		MissingRequired:  []string{"saas", "troubleshooting"},
		AIRelevance:      1.0,
		SupportRelevance: 0.0,
	}
}

func TestScoreDeterministic_WeightedSum(t *testing.T) {
	score, breakdown, err := ScoreDeterministic(testBundle(), testConfig())

	require.NoError(t, err)
	// 2 of 4 required matched, experience capped at 1.0:
	// 0.40*0.5 + 0.20*1.0 + 0.20*1.0 + 0.20*0.0 = 0.60
	assert.InDelta(t, 0.60, score, 1e-9)
	assert.InDelta(t, 0.5, breakdown.SkillCoverage, 1e-9)
	assert.InDelta(t, 1.0, breakdown.Experience, 1e-9)
}

func TestScoreDeterministic_ExperienceRampBelowThreshold(t *testing.T) {
	bundle := testBundle()
	bundle.YearsExperience = 1.5

	_, breakdown, err := ScoreDeterministic(bundle, testConfig())

	require.NoError(t, err)
	// Linear ramp, not a step function
	assert.InDelta(t, 0.5, breakdown.Experience, 1e-9)
}

func TestScoreDeterministic_ZeroYearsIsValid(t *testing.T) {
	bundle := testBundle()
	bundle.YearsExperience = 0

	_, breakdown, err := ScoreDeterministic(bundle, testConfig())

	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.Experience)
}

func TestScoreDeterministic_PreferredBlend(t *testing.T) {
	cfg := testConfig()
	cfg.Taxonomy.Preferred = []string{"llm", "aws"}

	bundle := testBundle()
	bundle.MatchedPreferred = []string{"llm"}

	_, breakdown, err := ScoreDeterministic(bundle, cfg)

	require.NoError(t, err)
	// 0.7*(2/4) + 0.3*(1/2)
	assert.InDelta(t, 0.7*0.5+0.3*0.5, breakdown.SkillCoverage, 1e-9)
}

func TestScoreDeterministic_WeightsMustSumToOne(t *testing.T) {
	cfg := testConfig()
	cfg.Weights.Support = 0.10 // sum is now 0.90

	_, _, err := ScoreDeterministic(testBundle(), cfg)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestScoreDeterministic_PartitionViolation(t *testing.T) {
	bundle := testBundle()
	bundle.MissingRequired = []string{"saas"} // troubleshooting in neither set

	_, _, err := ScoreDeterministic(bundle, testConfig())

	var bundleErr *IncompleteFactBundleError
	require.ErrorAs(t, err, &bundleErr)
	assert.Contains(t, bundleErr.Message, "troubleshooting")
}

func TestScoreDeterministic_SkillInBothSetsFails(t *testing.T) {
	bundle := testBundle()
	bundle.MissingRequired = append(bundle.MissingRequired, "python")

	_, _, err := ScoreDeterministic(bundle, testConfig())

	var bundleErr *IncompleteFactBundleError
	require.ErrorAs(t, err, &bundleErr)
}

func TestScoreDeterministic_OutOfVocabularySkillsIgnored(t *testing.T) {
	bundle := testBundle()
	bundle.MatchedRequired = append(bundle.MatchedRequired, "golang")

	score, _, err := ScoreDeterministic(bundle, testConfig())

	require.NoError(t, err)
	assert.InDelta(t, 0.60, score, 1e-9)
}

func TestScoreDeterministic_Monotonicity(t *testing.T) {
	cfg := testConfig()
	base := testBundle()
	base.AIRelevance = 0.3
	base.SupportRelevance = 0.2
	base.YearsExperience = 1

	baseScore, _, err := ScoreDeterministic(base, cfg)
	require.NoError(t, err)

	increased := []func(b *types.FactBundle){
		func(b *types.FactBundle) { b.AIRelevance = 0.8 },
		func(b *types.FactBundle) { b.SupportRelevance = 0.9 },
		func(b *types.FactBundle) { b.YearsExperience = 2.5 },
		func(b *types.FactBundle) {
			b.MatchedRequired = []string{"api", "python", "saas"}
			b.MissingRequired = []string{"troubleshooting"}
		},
	}

	for _, bump := range increased {
		bundle := testBundle()
		bundle.AIRelevance = 0.3
		bundle.SupportRelevance = 0.2
		bundle.YearsExperience = 1
		bump(bundle)

		score, _, err := ScoreDeterministic(bundle, cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, baseScore)
	}
}

func TestScoreDeterministic_NilBundle(t *testing.T) {
	_, _, err := ScoreDeterministic(nil, testConfig())

	var bundleErr *IncompleteFactBundleError
	require.ErrorAs(t, err, &bundleErr)
}

func TestScoreDeterministic_OutOfRangeRelevance(t *testing.T) {
	bundle := testBundle()
	bundle.AIRelevance = 1.2

	_, _, err := ScoreDeterministic(bundle, testConfig())

	var bundleErr *IncompleteFactBundleError
	require.ErrorAs(t, err, &bundleErr)
}
