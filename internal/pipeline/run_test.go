package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/judging"
	"github.com/jonathan/resume-ranker/internal/llm"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// scriptedClient returns a canned judge response per resume marker found in
// the prompt. Markers work because the judging prompt embeds the resume text.
type scriptedClient struct {
	responses map[string]string
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	for marker, response := range c.responses {
		if strings.Contains(prompt, marker) {
			return response, nil
		}
	}
	return "", fmt.Errorf("no scripted response matches prompt")
}

func (c *scriptedClient) GetModel(tier llm.ModelTier) string { return "scripted" }

func (c *scriptedClient) Close() error { return nil }

func judgeResponse(score float64) string {
	return fmt.Sprintf(`{"score": %v, "reasoning": "scripted", "matched_skills": [], "missing_skills": []}`, score)
}

func newTestRunner(t *testing.T, cfg *config.Config, client llm.Client) *Runner {
	t.Helper()
	extractor, err := extraction.NewExtractor(cfg.Taxonomy)
	require.NoError(t, err)
	runner, err := NewRunner(extractor, judging.NewJudge(client), cfg, nil)
	require.NoError(t, err)
	return runner
}

func TestRun_ScoresAllCandidates(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"alpha resume body": judgeResponse(0.9),
		"beta resume body":  judgeResponse(0.4),
	}}
	runner := newTestRunner(t, config.MustPreset(config.PresetLLMOnly), client)

	result, err := runner.Run(context.Background(), "support engineer", []Resume{
		{ID: "alpha", Text: "alpha resume body"},
		{ID: "beta", Text: "beta resume body"},
	})

	require.NoError(t, err)
	require.Len(t, result.Scored, 2)
	assert.Empty(t, result.Failures)
	assert.NotEmpty(t, result.RunID)

	// Input order is preserved; ranking happens at evaluation time.
	assert.Equal(t, "alpha", result.Scored[0].ID)
	assert.Equal(t, "beta", result.Scored[1].ID)
	// Pure LLM weighting: final score equals the judge score.
	assert.InDelta(t, 0.9, result.Scored[0].FinalScore, 1e-9)
	assert.InDelta(t, 0.4, result.Scored[1].FinalScore, 1e-9)
}

func TestRun_CollectsFailuresWithoutAborting(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"good resume body": judgeResponse(0.8),
		"bad resume body":  "not json at all",
	}}
	runner := newTestRunner(t, config.MustPreset(config.PresetLLMOnly), client)

	result, err := runner.Run(context.Background(), "job", []Resume{
		{ID: "good", Text: "good resume body"},
		{ID: "bad", Text: "bad resume body"},
	})

	require.NoError(t, err)
	require.Len(t, result.Scored, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "good", result.Scored[0].ID)
	assert.Equal(t, "bad", result.Failures[0].ID)
	assert.Equal(t, "MalformedJudgeOutput", result.Failures[0].Kind())
	assert.Equal(t, "1 of 2 scored, 1 failed: bad (MalformedJudgeOutput)", result.Summary())
}

func TestRun_ConcurrencyDoesNotChangeResults(t *testing.T) {
	resumes := make([]Resume, 0, 8)
	responses := make(map[string]string, 8)
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("res_%03d", i)
		text := fmt.Sprintf("resume body %s", id)
		resumes = append(resumes, Resume{ID: id, Text: text})
		responses[text] = judgeResponse(float64(i) / 10)
	}

	sequential := config.MustPreset(config.PresetLLMOnly)
	sequential.Concurrency = 1
	parallel := config.MustPreset(config.PresetLLMOnly)
	parallel.Concurrency = 4

	seqResult, err := newTestRunner(t, sequential, &scriptedClient{responses: responses}).Run(context.Background(), "job", resumes)
	require.NoError(t, err)
	parResult, err := newTestRunner(t, parallel, &scriptedClient{responses: responses}).Run(context.Background(), "job", resumes)
	require.NoError(t, err)

	require.Len(t, parResult.Scored, len(seqResult.Scored))
	for i := range seqResult.Scored {
		assert.Equal(t, seqResult.Scored[i].ID, parResult.Scored[i].ID)
		assert.InDelta(t, seqResult.Scored[i].FinalScore, parResult.Scored[i].FinalScore, 1e-9)
	}
}

func TestRun_HybridWeighting(t *testing.T) {
	cfg := config.Default()
	// A resume matching none of the required skills scores 0 deterministically
	// on the skills factor but still carries experience weight.
	client := &scriptedClient{responses: map[string]string{
		"plain resume body": judgeResponse(0.5),
	}}
	runner := newTestRunner(t, cfg, client)

	result, err := runner.Run(context.Background(), "job", []Resume{
		{ID: "plain", Text: "plain resume body"},
	})

	require.NoError(t, err)
	require.Len(t, result.Scored, 1)
	got := result.Scored[0]
	want := cfg.Hybrid.LLM*got.LLMScore + cfg.Hybrid.Deterministic*got.DeterministicScore
	assert.InDelta(t, want, got.FinalScore, 0.0005)
}

func TestNewRunner_RejectsInvalidWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Hybrid = scoring.HybridWeights{LLM: 0.5, Deterministic: 0.4}
	extractor, err := extraction.NewExtractor(cfg.Taxonomy)
	require.NoError(t, err)

	_, err = NewRunner(extractor, judging.NewJudge(&scriptedClient{}), cfg, nil)

	assert.Error(t, err)
}

func TestEvaluate_StampsRunID(t *testing.T) {
	runner := newTestRunner(t, config.MustPreset(config.PresetLLMOnly), &scriptedClient{})
	result := &RunResult{
		RunID: "run-123",
		Scored: []types.ScoredCandidate{
			{ID: "a", FinalScore: 0.9},
			{ID: "b", FinalScore: 0.4},
		},
	}
	truth := types.GroundTruth{"a": 1.0, "b": 0.0}

	report, err := runner.Evaluate(result, truth)

	require.NoError(t, err)
	assert.Equal(t, "run-123", report.RunID)
	assert.InDelta(t, 1.0, report.NDCGAtK, 1e-9)
	assert.InDelta(t, 1.0, report.PairwiseAccuracy, 1e-9)
}
