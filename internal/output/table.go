// Package output renders ranking results and evaluation reports for the CLI.
package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Ranking writes the scored candidates as a table ordered by final score
// descending (stable on ties). Ground-truth labels are shown when available.
func Ranking(w io.Writer, scored []types.ScoredCandidate, truth types.GroundTruth) error {
	if len(scored) == 0 {
		_, err := fmt.Fprintln(w, "No candidates scored.")
		return err
	}

	ranked := make([]types.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tFINAL\tDETERMINISTIC\tLLM\tTRUE REL")
	fmt.Fprintln(tw, "----\t--\t-----\t-------------\t---\t--------")

	for i, c := range ranked {
		trueRel := "-"
		if rel, ok := truth[c.ID]; ok {
			trueRel = fmt.Sprintf("%.1f", rel)
		}
		llm := fmt.Sprintf("%.3f", c.LLMScore)
		if c.LLMScoreClamped {
			llm += "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%s\t%s\n",
			i+1, c.ID, c.FinalScore, c.DeterministicScore, llm, trueRel)
	}

	return tw.Flush()
}

// Report writes the evaluation metrics.
func Report(w io.Writer, report *types.EvaluationReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "nDCG@%d\t%.3f\n", report.K, report.NDCGAtK)
	fmt.Fprintf(tw, "Precision@1\t%.3f\n", report.PrecisionAt1)
	fmt.Fprintf(tw, "Recall@%d\t%.3f\n", report.K, report.RecallAtK)
	fmt.Fprintf(tw, "Pairwise accuracy\t%.3f\n", report.PairwiseAccuracy)
	if report.Excluded > 0 {
		fmt.Fprintf(tw, "Excluded (no label)\t%d\n", report.Excluded)
	}
	return tw.Flush()
}

// Failures lists candidates that could not be scored, with the failure kind.
func Failures(w io.Writer, failures []pipeline.CandidateFailure) {
	for _, f := range failures {
		fmt.Fprintf(w, "failed: %s (%s): %v\n", f.ID, f.Kind(), f.Err)
	}
}
