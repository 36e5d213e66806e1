package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "foodonbus",
	Short:         "FoodOnBus admin dashboard",
	Long:          "Admin dashboard for on-bus food delivery: orders, menu, drivers, buses and a live map.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Running without a subcommand serves the dashboard.
	rootCmd.RunE = runServe

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
