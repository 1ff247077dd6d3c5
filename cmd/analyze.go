package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

var analyzeDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [pdf...]",
	Short: "Analyze transformer test report PDFs",
	Long:  "Runs OCR, metadata extraction and Claude diagnostic analysis over one or more PDFs (or a whole directory with --dir), persisting one report per equipment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && analyzeDir == "" {
			return fmt.Errorf("provide PDF paths or --dir")
		}

		e, err := initEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()

		if analyzeDir != "" {
			result, err := e.Pipeline.AnalyzeDir(ctx, analyzeDir)
			if err != nil {
				return err
			}
			out, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(out))
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d of %d files failed", len(result.Failed), len(result.Failed)+len(result.Succeeded))
			}
			return nil
		}

		var reports []*model.AnalysisReport
		for _, path := range args {
			r, err := e.Pipeline.AnalyzeFile(ctx, path, "")
			if err != nil {
				return err
			}
			reports = append(reports, r)
			fmt.Printf("analyzed %s: %s (risk %s, health index %.1f)\n",
				path, r.EquipmentName, r.RiskAssessment.RiskLevel, r.AssetHealth.HealthIndexIEEE)
		}

		if len(reports) == 1 {
			out, _ := json.MarshalIndent(reports[0], "", "  ")
			fmt.Println(string(out))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDir, "dir", "", "analyze every PDF in a directory")
	rootCmd.AddCommand(analyzeCmd)
}
