package output

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/types"
)

func TestRanking(t *testing.T) {
	scored := []types.ScoredCandidate{
		{ID: "b", FinalScore: 0.4, DeterministicScore: 0.3, LLMScore: 0.5},
		{ID: "a", FinalScore: 0.9, DeterministicScore: 0.8, LLMScore: 1.0, LLMScoreClamped: true},
	}
	truth := types.GroundTruth{"a": 1.0}

	var sb strings.Builder
	require.NoError(t, Ranking(&sb, scored, truth))
	out := sb.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	// Highest final score ranks first.
	assert.Contains(t, lines[2], "a")
	assert.Contains(t, lines[3], "b")
	// Clamped LLM scores are flagged, unlabeled candidates show a dash.
	assert.Contains(t, lines[2], "1.000*")
	assert.Contains(t, lines[3], "-")
}

func TestRanking_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Ranking(&sb, nil, nil))

	assert.Equal(t, "No candidates scored.\n", sb.String())
}

func TestReport(t *testing.T) {
	report := &types.EvaluationReport{
		K:                3,
		NDCGAtK:          0.95,
		PrecisionAt1:     1.0,
		RecallAtK:        0.5,
		PairwiseAccuracy: 2.0 / 3.0,
		Excluded:         1,
	}

	var sb strings.Builder
	require.NoError(t, Report(&sb, report))
	out := sb.String()

	assert.Contains(t, out, "nDCG@3")
	assert.Contains(t, out, "0.950")
	assert.Contains(t, out, "Excluded (no label)")
}

func TestFailures(t *testing.T) {
	var sb strings.Builder
	Failures(&sb, []pipeline.CandidateFailure{
		{ID: "res_004", Err: errors.New("boom")},
	})

	assert.Contains(t, sb.String(), "failed: res_004")
	assert.Contains(t, sb.String(), "boom")
}
