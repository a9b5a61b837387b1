package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Blend between required and preferred coverage inside the skill coverage
// sub-factor. These constants are fixed for a run so scores stay comparable.
const (
	requiredBlendWeight  = 0.7
	preferredBlendWeight = 0.3
)

// Config holds everything ScoreDeterministic needs besides the bundle itself.
type Config struct {
	Weights       DeterministicWeights
	RequiredYears float64 // Years at which the experience sub-factor saturates
	Taxonomy      types.SkillTaxonomy
}

// Validate checks the configuration before any scoring happens.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.RequiredYears <= 0 {
		return &ConfigurationError{Message: "required years must be positive"}
	}
	if len(c.Taxonomy.Required) == 0 {
		return &ConfigurationError{Message: "required skill vocabulary is empty"}
	}
	return nil
}

// ScoreDeterministic aggregates a fact bundle into a single rule-based score
// in [0,1] under the configured sub-weights. It is a pure function of its
// inputs and monotonic in every sub-factor. The returned breakdown holds the
// normalized sub-factor values for the explanation.
func ScoreDeterministic(bundle *types.FactBundle, cfg *Config) (float64, types.ScoreBreakdown, error) {
	var breakdown types.ScoreBreakdown

	if err := cfg.Validate(); err != nil {
		return 0, breakdown, err
	}
	if err := validateBundle(bundle, cfg.Taxonomy); err != nil {
		return 0, breakdown, err
	}

	breakdown = types.ScoreBreakdown{
		SkillCoverage:    skillCoverage(bundle, cfg.Taxonomy),
		AIRelevance:      bundle.AIRelevance,
		Experience:       math.Min(bundle.YearsExperience/cfg.RequiredYears, 1.0),
		SupportRelevance: bundle.SupportRelevance,
		Education:        bundle.EducationRelevance,
	}

	w := cfg.Weights
	score := w.Skills*breakdown.SkillCoverage +
		w.AI*breakdown.AIRelevance +
		w.Experience*breakdown.Experience +
		w.Support*breakdown.SupportRelevance +
		w.Education*breakdown.Education

	return score, breakdown, nil
}

// skillCoverage blends required and preferred coverage. When the taxonomy has
// no preferred skills, required coverage stands alone instead of the
// preferred term silently scoring zero.
func skillCoverage(bundle *types.FactBundle, taxonomy types.SkillTaxonomy) float64 {
	required := toSet(taxonomy.Required)
	matchedRequired := countIn(bundle.MatchedRequired, required)
	requiredCoverage := float64(matchedRequired) / float64(len(required))

	if len(taxonomy.Preferred) == 0 {
		return requiredCoverage
	}

	preferred := toSet(taxonomy.Preferred)
	matchedPreferred := countIn(bundle.MatchedPreferred, preferred)
	preferredCoverage := float64(matchedPreferred) / float64(len(preferred))

	return requiredBlendWeight*requiredCoverage + preferredBlendWeight*preferredCoverage
}

// validateBundle enforces the FactBundle invariants: the matched and missing
// sets must partition the required vocabulary, and all normalized fields must
// lie in their documented ranges. Skills outside the vocabulary are ignored,
// not an error.
func validateBundle(bundle *types.FactBundle, taxonomy types.SkillTaxonomy) error {
	if bundle == nil {
		return &IncompleteFactBundleError{Message: "fact bundle is nil"}
	}

	matched := toSet(bundle.MatchedRequired)
	missing := toSet(bundle.MissingRequired)
	for _, skill := range taxonomy.Required {
		_, inMatched := matched[skill]
		_, inMissing := missing[skill]
		if inMatched && inMissing {
			return &IncompleteFactBundleError{Message: fmt.Sprintf("required skill %q is both matched and missing", skill)}
		}
		if !inMatched && !inMissing {
			return &IncompleteFactBundleError{Message: fmt.Sprintf("required skill %q is absent from both matched and missing sets", skill)}
		}
	}

	if bundle.YearsExperience < 0 {
		return &IncompleteFactBundleError{Message: "years of experience is negative"}
	}
	normalized := []struct {
		name  string
		value float64
	}{
		{"ai_relevance", bundle.AIRelevance},
		{"support_relevance", bundle.SupportRelevance},
		{"education_relevance", bundle.EducationRelevance},
	}
	for _, f := range normalized {
		if f.value < 0 || f.value > 1 {
			return &IncompleteFactBundleError{Message: fmt.Sprintf("%s %.3f is outside [0,1]", f.name, f.value)}
		}
	}

	return nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// countIn counts distinct entries of items that belong to vocab.
func countIn(items []string, vocab map[string]struct{}) int {
	seen := make(map[string]struct{}, len(items))
	count := 0
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		if _, ok := vocab[item]; ok {
			count++
		}
	}
	return count
}
