package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/db"
	"github.com/jonathan/resume-intake/internal/graph"
	"github.com/jonathan/resume-intake/internal/llm"
	"github.com/jonathan/resume-intake/internal/pipeline"
	"github.com/jonathan/resume-intake/internal/types"
)

var (
	parseSiteID  string
	parseDriveID string
	parseFileID  string
	parseFolder  bool
	parseVerbose bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse resumes without starting the server",
	Long: `Run the ingestion pipeline once from the command line. Requires tenant
credentials (GRAPH_TENANT_ID, GRAPH_CLIENT_ID, GRAPH_CLIENT_SECRET) to obtain
a Graph token.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseSiteID, "site-id", "", "SharePoint site ID")
	parseCmd.Flags().StringVar(&parseDriveID, "drive-id", "", "Document library (drive) ID")
	parseCmd.Flags().StringVar(&parseFileID, "file-id", "", "File ID of a single resume to parse")
	parseCmd.Flags().BoolVar(&parseFolder, "folder", false, "Parse every resume in the Resume folder")
	parseCmd.Flags().BoolVar(&parseVerbose, "verbose", false, "Print pipeline debug output")
	_ = parseCmd.MarkFlagRequired("site-id")
	_ = parseCmd.MarkFlagRequired("drive-id")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	if !parseFolder && parseFileID == "" {
		return fmt.Errorf("either --file-id or --folder is required")
	}

	cfg := config.FromEnv()
	if parseVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tokens := graph.NewTokenProvider(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	if !tokens.Configured() {
		return fmt.Errorf("GRAPH_TENANT_ID, GRAPH_CLIENT_ID and GRAPH_CLIENT_SECRET are required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(cfg.Model)
	}
	llmClient, err := llm.NewClient(ctx, llmConfig, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	parser, err := pipeline.New(pipeline.Options{
		Files:   graph.NewClient(&graph.Options{BaseURL: cfg.GraphBaseURL}),
		LLM:     llmClient,
		Store:   database,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}

	token, err := tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	if parseFolder {
		results, err := parser.ParseFolder(ctx, token, parseSiteID, parseDriveID)
		if err != nil {
			return err
		}
		for _, result := range results {
			if result.Err != nil {
				fmt.Fprintf(os.Stderr, "FAILED %s (%s): %v\n", result.Name, result.FileID, result.Err)
				continue
			}
			fmt.Printf("OK %s -> candidate %s\n", result.Name, result.Candidate.ResumeID)
		}
		return nil
	}

	candidate, err := parser.Run(ctx, token, types.DocumentRef{
		SiteID:  parseSiteID,
		DriveID: parseDriveID,
		FileID:  parseFileID,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(candidate)
}
