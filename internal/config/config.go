// Package config provides configuration loading, validation and presets for ranking runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Config represents a full ranking run configuration. It can be loaded from
// a JSON file; missing values are filled from the hybrid preset.
type Config struct {
	// Preset the config was derived from, informational only
	Preset string `json:"preset,omitempty"`

	// Weight split between the LLM judge and the deterministic score
	Hybrid scoring.HybridWeights `json:"hybrid_weights"`

	// Sub-factor weights for the deterministic score
	Deterministic scoring.DeterministicWeights `json:"deterministic_weights"`

	// Taxonomy is the skill vocabulary scored against
	Taxonomy types.SkillTaxonomy `json:"taxonomy"`

	// RequiredYears is where the experience sub-factor saturates
	RequiredYears float64 `json:"required_years" validate:"gt=0"`

	// K is the cutoff for nDCG@k and recall@k
	K int `json:"k" validate:"gt=0"`

	// RelevanceThreshold marks a ground-truth label as a "good match"
	RelevanceThreshold float64 `json:"relevance_threshold" validate:"gte=0,lte=1"`

	// Model overrides the default judging model when non-empty
	Model string `json:"model,omitempty"`

	// Concurrency bounds parallel scoring; 0 or 1 means sequential
	Concurrency int `json:"concurrency,omitempty" validate:"gte=0"`
}

var validate = validator.New()

// Load reads a configuration JSON file and fills unset values from the
// hybrid preset.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return cfg, nil
}

// Validate checks field ranges and the weight-sum invariants. Weight sets
// that do not sum to 1.0 fail here, before any scoring happens.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.Hybrid.Validate(); err != nil {
		return err
	}
	if err := c.Deterministic.Validate(); err != nil {
		return err
	}
	if len(c.Taxonomy.Required) == 0 {
		return &scoring.ConfigurationError{Message: "taxonomy has no required skills"}
	}
	return nil
}

// ScoringConfig derives the deterministic scorer configuration.
func (c *Config) ScoringConfig() *scoring.Config {
	return &scoring.Config{
		Weights:       c.Deterministic,
		RequiredYears: c.RequiredYears,
		Taxonomy:      c.Taxonomy,
	}
}
