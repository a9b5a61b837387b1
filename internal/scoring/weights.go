package scoring

import "math"

// weightSumTolerance absorbs float accumulation noise when checking that a
// weight set sums to 1.0.
const weightSumTolerance = 1e-9

// HybridWeights is the split between the LLM judge signal and the
// deterministic signal. The "pure LLM", "pure deterministic" and "hybrid"
// pipeline variants are just different values of this pair.
type HybridWeights struct {
	LLM           float64 `json:"llm"`
	Deterministic float64 `json:"deterministic"`
}

// Validate returns a ConfigurationError unless both weights are in [0,1]
// and sum to 1.0.
func (w HybridWeights) Validate() error {
	if w.LLM < 0 || w.LLM > 1 || w.Deterministic < 0 || w.Deterministic > 1 {
		return &ConfigurationError{Message: "hybrid weights must be in [0,1]"}
	}
	if math.Abs(w.LLM+w.Deterministic-1.0) > weightSumTolerance {
		return &ConfigurationError{Message: "hybrid weights must sum to 1.0"}
	}
	return nil
}

// DeterministicWeights are the sub-factor weights for the rule-based score.
// Education may be zero when the job has no formal education requirement;
// that is a configuration decision, not a hidden default.
type DeterministicWeights struct {
	Skills     float64 `json:"skills"`
	AI         float64 `json:"ai"`
	Experience float64 `json:"experience"`
	Support    float64 `json:"support"`
	Education  float64 `json:"education"`
}

// Validate returns a ConfigurationError unless all weights are non-negative
// and sum to 1.0.
func (w DeterministicWeights) Validate() error {
	for _, v := range []float64{w.Skills, w.AI, w.Experience, w.Support, w.Education} {
		if v < 0 || v > 1 {
			return &ConfigurationError{Message: "deterministic sub-weights must be in [0,1]"}
		}
	}
	sum := w.Skills + w.AI + w.Experience + w.Support + w.Education
	if math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigurationError{Message: "deterministic sub-weights must sum to 1.0"}
	}
	return nil
}
