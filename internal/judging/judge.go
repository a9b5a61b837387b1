// Package judging runs the LLM judge over a (job description, resume) pair
// and turns its response into a validated JudgeOutput.
package judging

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-ranker/internal/llm"
	"github.com/jonathan/resume-ranker/internal/prompts"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Judge wraps an LLM client with the resume-judging prompt and response
// validation. Any failure (transport, unparseable JSON, schema violation)
// surfaces as a MalformedJudgeOutputError carrying the candidate ID, never
// as a guessed default score.
type Judge struct {
	client llm.Client
}

// NewJudge creates a Judge backed by the given client.
func NewJudge(client llm.Client) *Judge {
	return &Judge{client: client}
}

// Evaluate scores one resume against the job description. The fact bundle is
// injected into the prompt as verified context; the judge may still disagree
// with it and that disagreement is preserved downstream.
func (j *Judge) Evaluate(ctx context.Context, id, jobDescription, resumeText string, bundle *types.FactBundle) (*types.JudgeOutput, error) {
	prompt := buildPrompt(jobDescription, resumeText, bundle)

	raw, err := j.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &scoring.MalformedJudgeOutputError{ID: id, Message: "judge call failed", Cause: err}
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.JudgeOutput, []byte(cleaned)); err != nil {
		return nil, &scoring.MalformedJudgeOutputError{ID: id, Message: "judge response failed schema validation", Cause: err}
	}

	var output types.JudgeOutput
	if err := json.Unmarshal([]byte(cleaned), &output); err != nil {
		return nil, &scoring.MalformedJudgeOutputError{ID: id, Message: "failed to parse judge response", Cause: err}
	}
	if math.IsNaN(output.Score) || math.IsInf(output.Score, 0) {
		return nil, &scoring.MalformedJudgeOutputError{ID: id, Message: fmt.Sprintf("judge score %v is not a usable number", output.Score)}
	}

	return &output, nil
}

// buildPrompt fills the judging template with the job description, resume
// text, and the deterministic fact context.
func buildPrompt(jobDescription, resumeText string, bundle *types.FactBundle) string {
	template := prompts.MustGet("judging.json", "score-resume")
	return prompts.Format(template, map[string]string{
		"JobDescription":       jobDescription,
		"DeterministicContext": FormatFactContext(bundle),
		"ResumeText":           resumeText,
	})
}

// FormatFactContext renders the deterministic facts the way they appear in
// the judging prompt. Exported so reports can reuse the same rendering.
func FormatFactContext(bundle *types.FactBundle) string {
	if bundle == nil {
		return "No rule-based facts available."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Extracted years of experience: %.1f\n", bundle.YearsExperience)
	fmt.Fprintf(&sb, "Matched required skills: %s\n", joinOrNone(bundle.MatchedRequired))
	fmt.Fprintf(&sb, "Missing required skills: %s\n", joinOrNone(bundle.MissingRequired))
	fmt.Fprintf(&sb, "Matched preferred skills: %s\n", joinOrNone(bundle.MatchedPreferred))
	fmt.Fprintf(&sb, "AI relevance: %.3f, support relevance: %.3f", bundle.AIRelevance, bundle.SupportRelevance)
	return sb.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
