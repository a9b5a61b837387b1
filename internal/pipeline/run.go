// Package pipeline orchestrates a ranking run: extract facts, judge, combine,
// and collect per-candidate failures without aborting the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/evaluation"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/judging"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Resume is one input document.
type Resume struct {
	ID   string
	Text string
}

// CandidateFailure records why a candidate was excluded from the ranking.
type CandidateFailure struct {
	ID  string
	Err error
}

// Kind names the failure category for run summaries.
func (f CandidateFailure) Kind() string {
	var cfgErr *scoring.ConfigurationError
	var bundleErr *scoring.IncompleteFactBundleError
	var judgeErr *scoring.MalformedJudgeOutputError
	switch {
	case errors.As(f.Err, &judgeErr):
		return "MalformedJudgeOutput"
	case errors.As(f.Err, &bundleErr):
		return "IncompleteFactBundle"
	case errors.As(f.Err, &cfgErr):
		return "ConfigurationError"
	default:
		return "Error"
	}
}

// RunResult holds the outcome of one batch run. Scored candidates keep
// their input order; ranking happens downstream in the evaluator.
type RunResult struct {
	RunID    string
	Scored   []types.ScoredCandidate
	Failures []CandidateFailure
}

// Summary renders the run outcome the way operators read it, e.g.
// "8 of 10 scored, 2 failed: res_004 (MalformedJudgeOutput), res_009 (IncompleteFactBundle)".
func (r *RunResult) Summary() string {
	total := len(r.Scored) + len(r.Failures)
	if len(r.Failures) == 0 {
		return fmt.Sprintf("%d of %d scored", len(r.Scored), total)
	}
	parts := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.ID, f.Kind()))
	}
	return fmt.Sprintf("%d of %d scored, %d failed: %s",
		len(r.Scored), total, len(r.Failures), strings.Join(parts, ", "))
}

// Runner wires the extractor, the judge and the scorer together for a run.
type Runner struct {
	Extractor *extraction.Extractor
	Judge     *judging.Judge
	Config    *config.Config
	Logger    *zap.Logger
}

// NewRunner validates the configuration up front; weight errors are fatal
// here, before any LLM call is made.
func NewRunner(extractor *extraction.Extractor, judge *judging.Judge, cfg *config.Config, log *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Extractor: extractor, Judge: judge, Config: cfg, Logger: log}, nil
}

// Run scores every resume against the job description. Candidates are
// independent, so they are scored with bounded parallelism when
// Config.Concurrency allows; each worker writes only its own result slot.
// Per-candidate failures are collected, not fatal.
func (r *Runner) Run(ctx context.Context, jobDescription string, resumes []Resume) (*RunResult, error) {
	scoringCfg := r.Config.ScoringConfig()
	weights := r.Config.Hybrid

	candidates := make([]*types.ScoredCandidate, len(resumes))
	failed := make([]error, len(resumes))

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Config.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := range resumes {
		i := i
		g.Go(func() error {
			candidate, err := r.scoreOne(gctx, jobDescription, resumes[i], scoringCfg, weights)
			if err != nil {
				failed[i] = err
				return nil
			}
			candidates[i] = candidate
			return nil
		})
	}
	// Workers report failures through their slots, never through the group.
	_ = g.Wait()

	result := &RunResult{RunID: uuid.NewString()}
	for i, resume := range resumes {
		if failed[i] != nil {
			result.Failures = append(result.Failures, CandidateFailure{ID: resume.ID, Err: failed[i]})
			continue
		}
		result.Scored = append(result.Scored, *candidates[i])
	}

	for _, f := range result.Failures {
		r.Logger.Warn("candidate excluded from ranking",
			zap.String("id", f.ID),
			zap.String("kind", f.Kind()),
			zap.Error(f.Err),
		)
	}
	r.Logger.Info("scoring complete",
		zap.String("run_id", result.RunID),
		zap.Int("scored", len(result.Scored)),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}

// scoreOne runs the extract -> judge -> combine chain for a single resume.
func (r *Runner) scoreOne(ctx context.Context, jobDescription string, resume Resume, scoringCfg *scoring.Config, weights scoring.HybridWeights) (*types.ScoredCandidate, error) {
	bundle := r.Extractor.Extract(resume.Text)

	detScore, breakdown, err := scoring.ScoreDeterministic(bundle, scoringCfg)
	if err != nil {
		var bundleErr *scoring.IncompleteFactBundleError
		if errors.As(err, &bundleErr) && bundleErr.ID == "" {
			bundleErr.ID = resume.ID
		}
		return nil, err
	}

	judge, err := r.Judge.Evaluate(ctx, resume.ID, jobDescription, resume.Text, bundle)
	if err != nil {
		return nil, err
	}

	candidate, err := scoring.Combine(resume.ID, detScore, breakdown, bundle, judge, weights)
	if err != nil {
		return nil, err
	}
	if candidate.LLMScoreClamped {
		r.Logger.Warn("judge score clamped",
			zap.String("id", resume.ID),
			zap.Float64("raw", judge.Score),
			zap.Float64("clamped", candidate.LLMScore),
		)
	}

	r.Logger.Debug("candidate scored",
		zap.String("id", resume.ID),
		zap.Float64("final", candidate.FinalScore),
		zap.Float64("deterministic", candidate.DeterministicScore),
		zap.Float64("llm", candidate.LLMScore),
	)

	return candidate, nil
}

// Evaluate computes the ranking metrics for a finished run.
func (r *Runner) Evaluate(result *RunResult, truth types.GroundTruth) (*types.EvaluationReport, error) {
	report, err := evaluation.EvaluateBatch(result.Scored, truth, r.Config.K, r.Config.RelevanceThreshold)
	if err != nil {
		return nil, err
	}
	report.RunID = result.RunID
	return report, nil
}
