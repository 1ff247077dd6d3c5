package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config.yaml with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "config.yaml"
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		starter := config.Config{
			Anthropic: config.AnthropicConfig{
				Model:       "claude-sonnet-4-5-20250929",
				MaxTokens:   4000,
				Temperature: 0.1,
				TimeoutSecs: 120,
			},
			OCR: config.OCRConfig{
				Provider:      "local",
				PdfToTextPath: "pdftotext",
				MaxTextLen:    15000,
			},
			Store: config.StoreConfig{
				Driver:      "fs",
				ReportsDir:  "results",
				DatabaseURL: "reports.db",
			},
			Export: config.ExportConfig{Dir: "csv_exports"},
			Server: config.ServerConfig{Port: 8000},
			Batch:  config.BatchConfig{Concurrency: 2, RatePerSec: 0.5},
			Log:    config.LogConfig{Level: "info", Format: "json"},
		}

		data, err := yaml.Marshal(starter)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}

		fmt.Printf("wrote %s (set TRANSFORMIQ_ANTHROPIC_KEY or anthropic.key before analyzing)\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}
