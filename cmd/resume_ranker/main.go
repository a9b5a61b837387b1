// Package main implements the resume_ranker CLI for hybrid resume scoring and ranking evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_ranker",
	Short: "Hybrid resume ranking and evaluation",
	Long:  "resume_ranker scores resumes against a job description by combining a rule-based signal with an LLM judge, and evaluates the resulting ranking against graded ground truth.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
