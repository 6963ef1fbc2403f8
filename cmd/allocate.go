package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
)

// allocateCmd holds the flags for the 'allocate' subcommand.
type allocateCmd struct {
	allocationFlags
	outputFile string
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "allocate the period's expenses to customers" }
func (*allocateCmd) Usage() string {
	return `tug allocate [-p <year>] [-o <file>]

  Runs the activity-based cost allocation for a period and persists the
  run: a context line with the population aggregates, then one line per
  customer with every derived field. Use -o - to write to stdout.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.outputFile, "o", "allocation.jsonl", "Output file for the run. Use - for stdout.")
}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.outputFile == "-" {
		if err := costing.EncodeAllocation(os.Stdout, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing allocation: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	if err := writeFile(c.outputFile, func(w *os.File) error {
		return costing.EncodeAllocation(w, a)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Allocated %s over %d customers (rate %s of revenue), wrote %s\n",
		a.Context.TotalOtherExpenses, len(a.Records), a.Context.FixedCostRate.AsPercent(), c.outputFile)
	for _, w := range a.Context.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	return subcommands.ExitSuccess
}
