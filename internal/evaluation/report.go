package evaluation

import (
	"github.com/jonathan/resume-ranker/internal/types"
)

// EvaluateBatch bundles the four ranking metrics for one run. Precision is
// reported at rank 1, nDCG and recall at the given k. Candidates without a
// ground-truth label are excluded from every metric and tallied in the
// report's Excluded field.
func EvaluateBatch(scored []types.ScoredCandidate, truth types.GroundTruth, k int, threshold float64) (*types.EvaluationReport, error) {
	_, excluded := align(scored, truth)

	ndcg, err := NDCGAtK(scored, truth, k)
	if err != nil {
		return nil, err
	}
	precision, err := PrecisionAtK(scored, truth, 1, threshold)
	if err != nil {
		return nil, err
	}
	recall, err := RecallAtK(scored, truth, k, threshold)
	if err != nil {
		return nil, err
	}
	pairwise, err := PairwiseAccuracy(scored, truth)
	if err != nil {
		return nil, err
	}

	return &types.EvaluationReport{
		K:                k,
		NDCGAtK:          ndcg,
		PrecisionAt1:     precision,
		RecallAtK:        recall,
		PairwiseAccuracy: pairwise,
		Excluded:         excluded,
	}, nil
}
