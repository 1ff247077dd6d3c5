package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "transformiq",
	Short: "AI-assisted transformer diagnostic analysis",
	Long:  "Extracts text from TRAX transformer test reports, runs Claude-based diagnostic analysis with IEEE C57.152 health scoring, and exports results as JSON, CSV and Excel.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
