package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clm6/transformer-diagnostic-ai/internal/export"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the fleet dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		summary, listings, err := export.Summarize(cmd.Context(), e.Store)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(map[string]any{
			"summary":        summary,
			"equipment_list": listings,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
