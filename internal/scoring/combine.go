package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Combine merges the deterministic score and the judge verdict into one
// ScoredCandidate under the given hybrid weights. The judge score is clamped
// to [0,1] when out of range and the clamp is flagged on the result; a
// missing or non-numeric score fails with MalformedJudgeOutputError instead
// of being defaulted. The explanation is byte-identical for identical inputs.
func Combine(id string, detScore float64, breakdown types.ScoreBreakdown, bundle *types.FactBundle, judge *types.JudgeOutput, weights HybridWeights) (*types.ScoredCandidate, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if judge == nil {
		return nil, &MalformedJudgeOutputError{ID: id, Message: "judge output is nil"}
	}
	if math.IsNaN(judge.Score) || math.IsInf(judge.Score, 0) {
		return nil, &MalformedJudgeOutputError{ID: id, Message: fmt.Sprintf("judge score %v is not a usable number", judge.Score)}
	}
	if bundle == nil {
		return nil, &IncompleteFactBundleError{ID: id, Message: "fact bundle is nil"}
	}

	rawLLM := judge.Score
	llmScore, clamped := clamp01(rawLLM)
	finalScore := round3(weights.LLM*llmScore + weights.Deterministic*detScore)

	candidate := &types.ScoredCandidate{
		ID:                 id,
		FinalScore:         finalScore,
		DeterministicScore: detScore,
		LLMScore:           llmScore,
		LLMScoreClamped:    clamped,
		Breakdown:          breakdown,
	}
	candidate.Explanation = buildExplanation(candidate, rawLLM, bundle, judge, weights)

	return candidate, nil
}

// buildExplanation restates the scoring formula with the actual numbers,
// the deterministic breakdown, and both skill assessments. The two signals
// may legitimately disagree on skills; the divergence is reported, never
// reconciled.
func buildExplanation(c *types.ScoredCandidate, rawLLM float64, bundle *types.FactBundle, judge *types.JudgeOutput, weights HybridWeights) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Final score %.3f = %.2f x LLM %.3f + %.2f x deterministic %.3f\n",
		c.FinalScore, weights.LLM, c.LLMScore, weights.Deterministic, c.DeterministicScore)
	if c.LLMScoreClamped {
		fmt.Fprintf(&sb, "LLM score clamped to %.3f (judge returned %.3f)\n", c.LLMScore, rawLLM)
	}

	b := c.Breakdown
	fmt.Fprintf(&sb, "Deterministic breakdown: skill coverage %.3f, AI relevance %.3f, experience %.3f, support relevance %.3f, education %.3f\n",
		b.SkillCoverage, b.AIRelevance, b.Experience, b.SupportRelevance, b.Education)
	fmt.Fprintf(&sb, "Matched required skills: %s\n", joinSorted(bundle.MatchedRequired))
	fmt.Fprintf(&sb, "Missing required skills: %s\n", joinSorted(bundle.MissingRequired))
	fmt.Fprintf(&sb, "Judge matched skills: %s\n", joinOrdered(judge.MatchedSkills))
	fmt.Fprintf(&sb, "Judge missing skills: %s\n", joinOrdered(judge.MissingSkills))

	if skillSignalsDiverge(bundle, judge) {
		sb.WriteString("Note: the rule-based and judge skill assessments differ; both are reported as-is.\n")
	}

	fmt.Fprintf(&sb, "Judge reasoning: %s", judge.Reasoning)

	return sb.String()
}

// skillSignalsDiverge reports whether the judge's matched-skill list differs
// from the deterministic one as a set. Case is normalized; ordering is not
// significant for the comparison.
func skillSignalsDiverge(bundle *types.FactBundle, judge *types.JudgeOutput) bool {
	det := make(map[string]struct{}, len(bundle.MatchedRequired))
	for _, s := range bundle.MatchedRequired {
		det[strings.ToLower(s)] = struct{}{}
	}
	llm := make(map[string]struct{}, len(judge.MatchedSkills))
	for _, s := range judge.MatchedSkills {
		llm[strings.ToLower(s)] = struct{}{}
	}
	if len(det) != len(llm) {
		return true
	}
	for s := range det {
		if _, ok := llm[s]; !ok {
			return true
		}
	}
	return false
}

// joinSorted renders a set-valued field in a stable order.
func joinSorted(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// joinOrdered renders a judge list in the order the judge produced it.
func joinOrdered(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func clamp01(v float64) (float64, bool) {
	if v < 0 {
		return 0, true
	}
	if v > 1 {
		return 1, true
	}
	return v, false
}

// round3 implements the round(x, 3) contract on the final score.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
