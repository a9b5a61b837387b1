package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("judging.json", "score-resume")

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.JobDescription}}")
	assert.Contains(t, prompt, "{{.ResumeText}}")
	assert.Contains(t, prompt, "{{.DeterministicContext}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("judging.json", "no-such-prompt")

	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "score-resume")

	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("judging.json", "no-such-prompt") })
}

func TestFormat(t *testing.T) {
	got := Format("Job: {{.Job}}\nResume: {{.Resume}}", map[string]string{
		"Job":    "support engineer",
		"Resume": "ten years of apis",
	})

	assert.Equal(t, "Job: support engineer\nResume: ten years of apis", got)
}

func TestFormat_UnusedPlaceholdersSurvive(t *testing.T) {
	got := Format("{{.Known}} {{.Unknown}}", map[string]string{"Known": "x"})

	assert.Equal(t, "x {{.Unknown}}", got)
}
