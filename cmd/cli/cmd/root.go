// Package cmd provides the CLI commands for crewcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crewcost/internal/config"
	"crewcost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crewcost",
	Short: "Cost delivery, collection, and crewed jobs",
	Long: `crewcost prices delivery, collection, and crewed-work bookings.

It runs the same deterministic costing engine the portal uses: freelancer
fee, client charge, fuel estimate, expense accounting, and automatic
unsociable-hours detection, from a job description and the current rates.

Examples:
  crewcost quote job.hcl
  crewcost quote --format json job.hcl
  crewcost rates show`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.crewcost/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("crewcost version 0.1.0")
	},
}
