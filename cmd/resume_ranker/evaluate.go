package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/output"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a batch of resumes and evaluate the ranking",
	Long:  "Scores every resume in a directory against a job description, ranks them by final score, and computes nDCG@k, precision@1, recall@k and pairwise accuracy against a ground-truth label file.",
	RunE:  runEvaluate,
}

var (
	evalJob         string
	evalResumes     string
	evalTruth       string
	evalConfig      string
	evalPreset      string
	evalAPIKey      string
	evalK           int
	evalConcurrency int
	evalOut         string
	evalDebug       bool
	evalLogJSON     bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalJob, "job", "j", "", "Path to job description text file (required)")
	evaluateCmd.Flags().StringVarP(&evalResumes, "resumes", "r", "", "Directory of resume .txt files (required)")
	evaluateCmd.Flags().StringVarP(&evalTruth, "truth", "t", "", "Path to ground truth JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evalConfig, "config", "c", "", "Path to config JSON file")
	evaluateCmd.Flags().StringVarP(&evalPreset, "preset", "p", "", "Named weight preset (hybrid, hybrid-education, llm-only, deterministic-only)")
	evaluateCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	evaluateCmd.Flags().IntVarP(&evalK, "k", "k", 0, "Cutoff for nDCG@k and recall@k (default from config)")
	evaluateCmd.Flags().IntVar(&evalConcurrency, "concurrency", 0, "Max resumes scored in parallel (default sequential)")
	evaluateCmd.Flags().StringVarP(&evalOut, "out", "o", "", "Directory to write results.json and metrics.json")
	evaluateCmd.Flags().BoolVar(&evalDebug, "debug", false, "Enable debug logging")
	evaluateCmd.Flags().BoolVar(&evalLogJSON, "log-json", false, "Emit logs as JSON")

	for _, flag := range []string{"job", "resumes", "truth"} {
		if err := evaluateCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(evalConfig, evalPreset, evalK, evalConcurrency)
	if err != nil {
		return err
	}

	log, err := logger.New(evalLogJSON, evalDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	jobText, err := os.ReadFile(evalJob)
	if err != nil {
		return fmt.Errorf("failed to read job description %s: %w", evalJob, err)
	}
	resumes, err := loadResumes(evalResumes)
	if err != nil {
		return err
	}
	truth, err := loadGroundTruth(evalTruth)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, client, err := newRunner(ctx, cfg, evalAPIKey, log)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := runner.Run(ctx, string(jobText), resumes)
	if err != nil {
		return err
	}
	report, err := runner.Evaluate(result, truth)
	if err != nil {
		return err
	}

	if evalOut != "" {
		if err := writeJSON(filepath.Join(evalOut, "results.json"), result.Scored); err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(evalOut, "metrics.json"), report); err != nil {
			return err
		}
	}

	fmt.Println(result.Summary())
	output.Failures(os.Stdout, result.Failures)
	fmt.Println()
	if err := output.Ranking(os.Stdout, result.Scored, truth); err != nil {
		return err
	}
	fmt.Println()
	return output.Report(os.Stdout, report)
}

// baseID derives a candidate ID from a file path, dropping the extension.
func baseID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
