package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/logger"
	"github.com/jonathan/resume-ranker/internal/pipeline"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single resume against a job description",
	Long:  "Scores one resume with both the deterministic extractor and the LLM judge, printing the combined ScoredCandidate record with its full explanation.",
	RunE:  runScore,
}

var (
	scoreJob     string
	scoreResume  string
	scoreConfig  string
	scorePreset  string
	scoreAPIKey  string
	scoreOut     string
	scoreDebug   bool
	scoreLogJSON bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description text file (required)")
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume text file (required)")
	scoreCmd.Flags().StringVarP(&scoreConfig, "config", "c", "", "Path to config JSON file")
	scoreCmd.Flags().StringVarP(&scorePreset, "preset", "p", "", "Named weight preset (hybrid, hybrid-education, llm-only, deterministic-only)")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Path to write the ScoredCandidate JSON")
	scoreCmd.Flags().BoolVar(&scoreDebug, "debug", false, "Enable debug logging")
	scoreCmd.Flags().BoolVar(&scoreLogJSON, "log-json", false, "Emit logs as JSON")

	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(scoreConfig, scorePreset, 0, 0)
	if err != nil {
		return err
	}

	log, err := logger.New(scoreLogJSON, scoreDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	jobText, err := os.ReadFile(scoreJob)
	if err != nil {
		return fmt.Errorf("failed to read job description %s: %w", scoreJob, err)
	}
	resumeText, err := os.ReadFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", scoreResume, err)
	}

	ctx := cmd.Context()
	runner, client, err := newRunner(ctx, cfg, scoreAPIKey, log)
	if err != nil {
		return err
	}
	defer client.Close()

	id := baseID(scoreResume)
	result, err := runner.Run(ctx, string(jobText), []pipeline.Resume{{ID: id, Text: string(resumeText)}})
	if err != nil {
		return err
	}
	if len(result.Failures) > 0 {
		f := result.Failures[0]
		return fmt.Errorf("failed to score %s (%s): %w", f.ID, f.Kind(), f.Err)
	}

	candidate := result.Scored[0]
	if scoreOut != "" {
		if err := writeJSON(scoreOut, candidate); err != nil {
			return err
		}
	}

	fmt.Printf("Candidate %s: final score %.3f\n\n%s\n", candidate.ID, candidate.FinalScore, candidate.Explanation)
	return nil
}
