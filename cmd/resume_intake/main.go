// Package main provides the entry point for the Resume Intake HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_intake",
	Short: "Resume Intake HTTP API Server",
	Long:  "Resume Intake fetches resumes from SharePoint, extracts their text, runs LLM structured extraction and persists searchable candidate records via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
