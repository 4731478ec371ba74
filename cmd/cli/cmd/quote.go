// Package cmd - quote command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crewcost/adapters/jobfile"
	"crewcost/adapters/storage"
	v1 "crewcost/api/v1"
	"crewcost/core/costing"
	"crewcost/core/types"
	"crewcost/internal/config"
	"crewcost/internal/logging"
)

var (
	quoteFormat    string
	quoteRatesFile string
	quoteReference string
	quoteSave      bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <job-file>",
	Short: "Cost a job described in an HCL file",
	Long: `Run the costing engine over a job description.

The job file is HCL: one job block plus any number of expense blocks.

Examples:
  crewcost quote job.hcl
  crewcost quote --format json job.hcl
  crewcost quote --save --reference ACME-42 job.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "text", "output format (text, json)")
	quoteCmd.Flags().StringVar(&quoteRatesFile, "rates", "", "JSON file with rate settings (default: the configured store)")
	quoteCmd.Flags().StringVarP(&quoteReference, "reference", "r", "", "booking reference stored with the quote")
	quoteCmd.Flags().BoolVar(&quoteSave, "save", false, "persist the quote to the configured store")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	job, entries, err := jobfile.ParseFile(args[0])
	if err != nil {
		return err
	}

	var store storage.Store
	if quoteSave || quoteRatesFile == "" {
		store, err = storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	rates, err := loadRates(ctx, cfg, store)
	if err != nil {
		return err
	}

	result := costing.Calculate(job, rates, entries)
	quote := &storage.StoredQuote{
		Reference: quoteReference,
		Job:       job,
		Rates:     rates,
		Ledger:    result.Ledger,
		Costs:     result.Costs,
		Breakdown: result.BreakdownText(),
	}

	if quoteSave {
		if err := store.SaveQuote(ctx, quote); err != nil {
			return err
		}
		logging.Info("quote saved", zap.String("id", quote.ID))
	}

	switch quoteFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v1.FromQuote(quote))
	default:
		printQuote(quote)
		return nil
	}
}

// loadRates resolves the settings for this run: an explicit rates file
// wins, then the configured store, then the config fallback.
func loadRates(ctx context.Context, cfg *config.Config, store storage.Store) (types.RateSettings, error) {
	if quoteRatesFile != "" {
		data, err := os.ReadFile(quoteRatesFile)
		if err != nil {
			return types.RateSettings{}, err
		}
		rates := cfg.Rates
		if err := json.Unmarshal(data, &rates); err != nil {
			return types.RateSettings{}, err
		}
		return rates, nil
	}

	if store != nil {
		return store.GetRates(ctx)
	}
	return cfg.Rates, nil
}

func printQuote(q *storage.StoredQuote) {
	c := q.Costs

	fmt.Println("Job costing")
	fmt.Println("===========")
	if q.ID != "" {
		fmt.Printf("Quote ID:        %s\n", q.ID)
	}
	if q.Reference != "" {
		fmt.Printf("Reference:       %s\n", q.Reference)
	}
	fmt.Printf("Estimated time:  %s h (%d min)\n", c.EstimatedHours.StringFixed(2), c.EstimatedMinutes)
	if c.DepartureTime != "" {
		fmt.Printf("Departure:       %s, finish %s\n", c.DepartureTime, c.FinishTime)
	}
	if c.OutOfHoursMinutes() > 0 {
		fmt.Printf("Out of hours:    %d min early, %d min late\n", c.EarlyStartMinutes, c.LateFinishMinutes)
	}
	fmt.Println()
	fmt.Printf("Freelancer fee:  £%s (£%s before rounding)\n", c.FreelancerFeeRounded.StringFixed(2), c.FreelancerFee.StringFixed(2))
	fmt.Printf("Client labour:   £%s\n", c.ClientChargeLabour.StringFixed(2))
	fmt.Printf("Client fuel:     £%s (estimated £%s)\n", c.ClientChargeFuel.StringFixed(2), c.ExpectedFuelCost.StringFixed(2))
	fmt.Printf("Client expenses: £%s\n", c.ClientChargeExpenses.StringFixed(2))
	fmt.Printf("Client total:    £%s (rounded £%s)\n", c.ClientChargeTotal.StringFixed(2), c.ClientChargeTotalRounded.StringFixed(2))
	fmt.Printf("Our cost:        £%s, margin £%s\n", c.OurTotalCost.StringFixed(2), c.Margin.StringFixed(2))
	for _, w := range c.Warnings {
		fmt.Printf("Warning:         %s\n", w)
	}
	fmt.Println()
	fmt.Print(q.Breakdown)
}
