package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clm6/transformer-diagnostic-ai/internal/model"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect and manage stored analysis reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		listings, err := e.Store.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "EQUIPMENT\tANALYSIS DATE\tHEALTH\tRISK")
		for _, l := range listings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				l.EquipmentName, l.AnalysisDate, model.RenderID(l.HealthScore), l.RiskLevel)
		}
		return w.Flush()
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <equipment-name>",
	Short: "Print one report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		r, err := e.Store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <equipment-name>",
	Short: "Delete one report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.Store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("no report for %s", args[0])
		}
		fmt.Printf("deleted report for %s\n", args[0])
		return nil
	},
}

var reportsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.Store.DeleteAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("cleared %d reports\n", n)
		return nil
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsDeleteCmd, reportsClearCmd)
	rootCmd.AddCommand(reportsCmd)
}
