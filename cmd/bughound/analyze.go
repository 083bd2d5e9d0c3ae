package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bughound/internal/analyzer"
	"bughound/internal/config"
	"bughound/internal/insight"
	"bughound/internal/server"
)

var (
	analyzeLanguage string
	analyzeNoML     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a single file (or stdin with '-') and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}
		if strings.TrimSpace(source) == "" {
			return fmt.Errorf("no code provided")
		}

		language := analyzeLanguage
		if language == "" {
			language = languageFromPath(args[0])
		}

		engine := analyzer.New()
		report := engine.Analyze(source, language)
		resp := server.NewAnalyzeResponse(report, source)

		if !analyzeNoML {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cfg.Insight.Enabled {
				scorer, err := insight.NewScorer(cmd.Context(), cfg.Insight.APIKey, cfg.Insight.Model)
				if err == nil {
					resp.AttachInsights(scorer.Score(cmd.Context(), source))
				}
			}
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "language tag (default: from file extension)")
	analyzeCmd.Flags().BoolVar(&analyzeNoML, "no-ml", false, "skip model insights")
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// languageFromPath maps a file extension to a language tag; anything
// unrecognized routes to the generic fallback analysis.
func languageFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".py", ".pyw":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	default:
		return "generic"
	}
}
