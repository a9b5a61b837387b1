// Package evaluation computes ranking-quality metrics for a scored candidate set against graded ground truth.
package evaluation

import "fmt"

// InvalidKError represents a metric call that cannot produce a meaningful
// result: k was non-positive, or no labeled candidates were available. It is
// fatal for that metric call only, and distinguishes "no data" from "all
// top-k irrelevant".
type InvalidKError struct {
	K          int
	Candidates int
	Message    string
}

func (e *InvalidKError) Error() string {
	return fmt.Sprintf("invalid k: %s (k=%d, labeled candidates=%d)", e.Message, e.K, e.Candidates)
}
