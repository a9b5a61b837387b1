package evaluation

import (
	"math"
	"sort"

	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultRelevanceThreshold is the ground-truth relevance at or above which
// a candidate counts as a "good match" for precision and recall.
const DefaultRelevanceThreshold = 0.7

// labeled is a candidate paired with its ground-truth relevance.
type labeled struct {
	id         string
	finalScore float64
	relevance  float64
}

// align pairs candidates with their ground-truth labels, preserving input
// order. Candidates absent from truth are excluded and counted rather than
// silently dropped, so metrics stay comparable when the labeled set changes.
func align(scored []types.ScoredCandidate, truth types.GroundTruth) ([]labeled, int) {
	out := make([]labeled, 0, len(scored))
	excluded := 0
	for _, c := range scored {
		rel, ok := truth[c.ID]
		if !ok {
			excluded++
			continue
		}
		out = append(out, labeled{id: c.ID, finalScore: c.FinalScore, relevance: rel})
	}
	return out, excluded
}

// rankByPredicted orders candidates by final score descending. The sort is
// stable: ties keep their input order, matching the scorer's tie-break policy.
func rankByPredicted(candidates []labeled) []labeled {
	ranked := make([]labeled, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].finalScore > ranked[j].finalScore
	})
	return ranked
}

// clampK bounds k to the candidate count. A k larger than the list is
// clamped, not treated as an error.
func clampK(k, n int) int {
	if k > n {
		return n
	}
	return k
}

// NDCGAtK computes normalized discounted cumulative gain at k over the
// predicted ordering. DCG accumulates the ground-truth relevance of whatever
// candidate occupies each predicted rank, discounted by log2(rank+1); IDCG is
// the DCG of the ideal ordering. A truth set with no positive relevance
// yields 0.0 rather than a division error.
func NDCGAtK(scored []types.ScoredCandidate, truth types.GroundTruth, k int) (float64, error) {
	candidates, _ := align(scored, truth)
	if k <= 0 || len(candidates) == 0 {
		return 0, &InvalidKError{K: k, Candidates: len(candidates), Message: "ndcg@k requires k > 0 and at least one labeled candidate"}
	}
	k = clampK(k, len(candidates))

	predicted := rankByPredicted(candidates)

	ideal := make([]labeled, len(candidates))
	copy(ideal, candidates)
	sort.SliceStable(ideal, func(i, j int) bool {
		return ideal[i].relevance > ideal[j].relevance
	})

	dcg := dcgAtK(predicted, k)
	idcg := dcgAtK(ideal, k)
	if idcg == 0 {
		return 0, nil
	}
	return dcg / idcg, nil
}

// dcgAtK sums rel(i)/log2(i+1) over 1-based ranks.
func dcgAtK(ranked []labeled, k int) float64 {
	dcg := 0.0
	for i := 0; i < k; i++ {
		dcg += ranked[i].relevance / math.Log2(float64(i)+2)
	}
	return dcg
}

// PrecisionAtK computes the fraction of the top-k predicted candidates whose
// ground-truth relevance meets the threshold.
func PrecisionAtK(scored []types.ScoredCandidate, truth types.GroundTruth, k int, threshold float64) (float64, error) {
	candidates, _ := align(scored, truth)
	if k <= 0 || len(candidates) == 0 {
		return 0, &InvalidKError{K: k, Candidates: len(candidates), Message: "precision@k requires k > 0 and at least one labeled candidate"}
	}
	k = clampK(k, len(candidates))

	predicted := rankByPredicted(candidates)
	relevant := 0
	for i := 0; i < k; i++ {
		if predicted[i].relevance >= threshold {
			relevant++
		}
	}
	return float64(relevant) / float64(k), nil
}

// RecallAtK computes, of all candidates whose ground-truth relevance meets
// the threshold, the fraction that appear in the top-k predicted slots. When
// no candidate meets the threshold the result is 0.0 by policy: there is
// nothing to recall. This deliberately differs from the IDCG edge case.
func RecallAtK(scored []types.ScoredCandidate, truth types.GroundTruth, k int, threshold float64) (float64, error) {
	candidates, _ := align(scored, truth)
	if k <= 0 || len(candidates) == 0 {
		return 0, &InvalidKError{K: k, Candidates: len(candidates), Message: "recall@k requires k > 0 and at least one labeled candidate"}
	}
	k = clampK(k, len(candidates))

	totalRelevant := 0
	for _, c := range candidates {
		if c.relevance >= threshold {
			totalRelevant++
		}
	}
	if totalRelevant == 0 {
		return 0, nil
	}

	predicted := rankByPredicted(candidates)
	relevantInTopK := 0
	for i := 0; i < k; i++ {
		if predicted[i].relevance >= threshold {
			relevantInTopK++
		}
	}
	return float64(relevantInTopK) / float64(totalRelevant), nil
}

// PairwiseAccuracy computes, over all unordered candidate pairs with
// differing ground-truth relevance, the fraction whose predicted ordering
// agrees with the ground-truth ordering. Pairs with equal true relevance are
// excluded from the denominator entirely. A predicted-score tie on a pair
// with differing true relevance counts as incorrect: the system made no
// distinction where one was required.
func PairwiseAccuracy(scored []types.ScoredCandidate, truth types.GroundTruth) (float64, error) {
	candidates, _ := align(scored, truth)
	if len(candidates) == 0 {
		return 0, &InvalidKError{K: 0, Candidates: 0, Message: "pairwise accuracy requires at least one labeled candidate"}
	}

	pairs := 0
	correct := 0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			if a.relevance == b.relevance {
				continue
			}
			pairs++
			if a.relevance > b.relevance && a.finalScore > b.finalScore {
				correct++
			} else if b.relevance > a.relevance && b.finalScore > a.finalScore {
				correct++
			}
		}
	}
	if pairs == 0 {
		return 0, nil
	}
	return float64(correct) / float64(pairs), nil
}
