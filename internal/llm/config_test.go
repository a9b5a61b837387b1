package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	// Unknown tiers fall back to standard.
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("experimental")))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()

	custom := base.WithModel(TierStandard, "gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-pro", custom.GetModel(TierStandard))
	// The original config is untouched.
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierLite))
}
