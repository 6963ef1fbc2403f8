package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
)

// genCmd holds the flags for the 'gen' subcommand.
type genCmd struct {
	customers int
	seed      int64
}

func (*genCmd) Name() string     { return "gen" }
func (*genCmd) Synopsis() string { return "generate a demo dataset" }
func (*genCmd) Usage() string {
	return `tug gen [-n <customers>] [-seed <seed>]

  Generates a reproducible demo dataset: a customer population and a
  five-year expense history, written to the customers and history files.
`
}

func (c *genCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.customers, "n", 1000, "Number of customers to generate.")
	f.Int64Var(&c.seed, "seed", costing.DefaultSampleSeed, "Seed for the generator.")
}

func (c *genCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records := costing.SampleCustomers(c.customers, c.seed)
	if err := writeFile(*customersFile, func(w *os.File) error {
		return costing.EncodeCustomers(w, records)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing customers file: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d customers to %s\n", len(records), *customersFile)

	summaries := costing.SamplePeriodSummaries()
	if err := writeFile(*historyFile, func(w *os.File) error {
		return costing.EncodePeriodSummaries(w, summaries)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing history file: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d periods to %s\n", len(summaries), *historyFile)
	return subcommands.ExitSuccess
}

func writeFile(filename string, encode func(*os.File) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create file %q: %w", filename, err)
	}
	defer f.Close()
	return encode(f)
}
