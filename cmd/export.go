package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored reports as CSV or Excel",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write one detailed CSV per equipment",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		paths, err := e.Exporter.ExportAll(cmd.Context(), e.Store)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

var exportMasterCmd = &cobra.Command{
	Use:   "master",
	Short: "Write the combined master CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		path, err := e.Exporter.ExportMaster(cmd.Context(), e.Store)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write the master Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initStoreEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		path, err := e.Exporter.ExportMasterXLSX(cmd.Context(), e.Store)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportCSVCmd, exportMasterCmd, exportXLSXCmd)
	rootCmd.AddCommand(exportCmd)
}
