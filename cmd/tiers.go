package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
	"github.com/tugpack/costing/renderer"
)

// tiersCmd holds the flags for the 'tiers' subcommand.
type tiersCmd struct {
	allocationFlags
	drivers    int
	outputFile string
}

func (*tiersCmd) Name() string     { return "tiers" }
func (*tiersCmd) Synopsis() string { return "score customers into profitability tiers" }
func (*tiersCmd) Usage() string {
	return `tug tiers [-p <year>] [-drivers <n>] [-o <file>]

  Allocates the period, trains the profitability classifier, scores
  every customer and displays the tier report. With -o, the scored run
  is also persisted in the allocation format.
`
}

func (c *tiersCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.IntVar(&c.drivers, "drivers", 5, "Number of features in the model drivers list.")
	f.StringVar(&c.outputFile, "o", "", "Optional output file for the scored run.")
}

func (c *tiersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	m, err := costing.Train(a.Records, costing.DefaultTrainerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error training model: %v\n", err)
		return subcommands.ExitFailure
	}
	scored, err := m.Score(a.Records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring customers: %v\n", err)
		return subcommands.ExitFailure
	}
	a.Records = scored

	if c.outputFile != "" {
		if err := writeFile(c.outputFile, func(w *os.File) error {
			return costing.EncodeAllocation(w, a)
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing scored run: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.RenderTiers(costing.NewTierReport(a.Context.Period, scored, m, c.drivers)))
	return subcommands.ExitSuccess
}
