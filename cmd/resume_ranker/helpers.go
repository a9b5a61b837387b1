package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/judging"
	"github.com/jonathan/resume-ranker/internal/llm"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
)

// resolveConfig merges preset, config file and flag overrides, preferring
// the config file over the preset and flags over both.
func resolveConfig(configPath, preset string, kOverride, concurrency int) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configPath != "":
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.Preset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.PresetNames(), ", "))
		}
	default:
		cfg = config.Default()
	}

	if kOverride > 0 {
		cfg.K = kOverride
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}

	return cfg, cfg.Validate()
}

// newRunner builds the full scoring chain from a validated config.
func newRunner(ctx context.Context, cfg *config.Config, apiKey string, log *zap.Logger) (*pipeline.Runner, *llm.GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor, err := extraction.NewExtractor(cfg.Taxonomy)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	runner, err := pipeline.NewRunner(extractor, judging.NewJudge(client), cfg, log)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	return runner, client, nil
}

// loadResumes reads every .txt file in the directory as one resume; the ID
// is the file name without its extension. Files are loaded in name order so
// tie-breaks stay reproducible across runs.
func loadResumes(dir string) ([]pipeline.Resume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resumes directory %s: %w", dir, err)
	}

	var resumes []pipeline.Resume
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read resume %s: %w", entry.Name(), err)
		}
		resumes = append(resumes, pipeline.Resume{
			ID:   strings.TrimSuffix(entry.Name(), ".txt"),
			Text: string(data),
		})
	}
	if len(resumes) == 0 {
		return nil, fmt.Errorf("no .txt resumes found in %s", dir)
	}

	sort.Slice(resumes, func(i, j int) bool { return resumes[i].ID < resumes[j].ID })
	return resumes, nil
}

// loadGroundTruth reads and schema-validates a ground-truth label file.
func loadGroundTruth(path string) (types.GroundTruth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth file %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.GroundTruth, data); err != nil {
		return nil, err
	}

	var truth types.GroundTruth
	if err := json.Unmarshal(data, &truth); err != nil {
		return nil, fmt.Errorf("failed to parse ground truth JSON: %w", err)
	}
	return truth, nil
}

// writeJSON marshals v with indentation and writes it to path, creating the
// parent directory if needed.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
