// Package scoring combines the deterministic and LLM scoring signals into one auditable final score.
package scoring

import "fmt"

// ConfigurationError represents an invalid weight configuration.
// It is fatal at setup time and never silently corrected.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// IncompleteFactBundleError represents a fact bundle that violates its
// structural invariants, e.g. a required-vocabulary skill absent from both
// the matched and missing sets.
type IncompleteFactBundleError struct {
	ID      string
	Message string
}

func (e *IncompleteFactBundleError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("incomplete fact bundle for %s: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("incomplete fact bundle: %s", e.Message)
}

// MalformedJudgeOutputError represents an LLM judge response that cannot be
// used for scoring: a failed call, unparseable JSON, or a missing/non-numeric
// score. The affected candidate is excluded from ranking rather than
// defaulted to a guessed score.
type MalformedJudgeOutputError struct {
	ID      string
	Message string
	Cause   error
}

func (e *MalformedJudgeOutputError) Error() string {
	msg := "malformed judge output"
	if e.ID != "" {
		msg = fmt.Sprintf("malformed judge output for %s", e.ID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

func (e *MalformedJudgeOutputError) Unwrap() error {
	return e.Cause
}
