package main

import (
	"fmt"
	"os"

	"foodonbus-dashboard/store"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the seeded store as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := store.NewSeeded()
		if exportOut == "" {
			return st.WriteJSON(cmd.OutOrStdout())
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := st.WriteJSON(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
}
