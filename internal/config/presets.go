package config

import (
	"fmt"

	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Preset names. The pipeline variants differ only in their weight
// configuration; there is one scoring code path.
const (
	PresetHybrid            = "hybrid"
	PresetHybridEducation   = "hybrid-education"
	PresetLLMOnly           = "llm-only"
	PresetDeterministicOnly = "deterministic-only"
)

// Default returns the hybrid preset configuration.
func Default() *Config {
	return Preset(PresetHybrid)
}

// Preset returns a named preset, or nil for an unknown name. The two hybrid
// presets carry the two deterministic sub-weight profiles the system has
// been run with; neither is privileged.
func Preset(name string) *Config {
	base := &Config{
		Preset:             name,
		Hybrid:             scoring.HybridWeights{LLM: 0.6, Deterministic: 0.4},
		Deterministic:      scoring.DeterministicWeights{Skills: 0.40, AI: 0.20, Experience: 0.20, Support: 0.20, Education: 0},
		Taxonomy:           DefaultTaxonomy(),
		RequiredYears:      3,
		K:                  3,
		RelevanceThreshold: 0.7,
	}

	switch name {
	case PresetHybrid:
	case PresetHybridEducation:
		base.Deterministic = scoring.DeterministicWeights{Skills: 0.35, AI: 0.35, Experience: 0.15, Support: 0.10, Education: 0.05}
	case PresetLLMOnly:
		base.Hybrid = scoring.HybridWeights{LLM: 1, Deterministic: 0}
	case PresetDeterministicOnly:
		base.Hybrid = scoring.HybridWeights{LLM: 0, Deterministic: 1}
	default:
		return nil
	}

	return base
}

// PresetNames lists the available presets for CLI help output.
func PresetNames() []string {
	return []string{PresetHybrid, PresetHybridEducation, PresetLLMOnly, PresetDeterministicOnly}
}

// MustPreset returns a named preset, panicking on an unknown name.
func MustPreset(name string) *Config {
	cfg := Preset(name)
	if cfg == nil {
		panic(fmt.Sprintf("unknown preset %q", name))
	}
	return cfg
}

// DefaultTaxonomy is the skill vocabulary for the AI applications support
// engineer role the ranker was built around. A config file can replace it
// wholesale.
func DefaultTaxonomy() types.SkillTaxonomy {
	return types.SkillTaxonomy{
		Required: []string{
			"python", "api", "rest", "json", "troubleshooting",
			"production", "technical support", "saas",
		},
		Preferred: []string{
			"genai", "llm", "ml", "langchain", "prompt engineering",
			"observability", "logging", "dashboard", "aws", "gcp",
			"crm", "ats", "soap", "integration",
		},
		AIKeywords: []string{
			"ai", "artificial intelligence", "machine learning", "ml",
			"llm", "large language model", "genai", "generative ai",
			"langchain", "langgraph", "prompt", "rag", "embedding",
		},
		SupportKeywords: []string{
			"support", "customer success", "technical support",
			"troubleshooting", "debugging", "production issues",
			"incident", "ticket", "escalation", "customer-facing",
		},
		DegreeFields: []string{
			"computer science", "software engineering", "information technology",
		},
	}
}
