// Package cmd - rates commands
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crewcost/adapters/storage"
	"crewcost/internal/config"
)

// ratesCmd manages the stored rate settings
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Manage rate settings",
}

var ratesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current rate settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		rates, err := store.GetRates(context.Background())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rates)
	},
}

var ratesSetCmd = &cobra.Command{
	Use:   "set <rates-file>",
	Short: "Replace the stored rate settings from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()

		// Start from the current settings so a partial file updates
		// only the fields it names.
		rates, err := store.GetRates(ctx)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &rates); err != nil {
			return err
		}

		if err := store.PutRates(ctx, rates); err != nil {
			return err
		}
		fmt.Println("Rate settings updated.")
		return nil
	},
}

func init() {
	ratesCmd.AddCommand(ratesShowCmd)
	ratesCmd.AddCommand(ratesSetCmd)
}
