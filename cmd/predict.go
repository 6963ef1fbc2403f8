package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
)

// predictCmd holds the flags for the 'predict' subcommand: the profile
// of a hypothetical customer to score.
type predictCmd struct {
	allocationFlags
	ctype   string
	revenue [costing.NumProducts]float64
	cogs    [costing.NumProducts]float64
	counts  [costing.NumActivities]float64
}

func (*predictCmd) Name() string     { return "predict" }
func (*predictCmd) Synopsis() string { return "score a hypothetical customer" }
func (*predictCmd) Usage() string {
	return `tug predict [-p <year>] [-type new|existing] [-corrugated-board <revenue>] ...

  Trains the classifier on the period's allocation, then scores a
  hypothetical customer described by the flags. Useful to sanity-check
  a prospect before quoting.
`
}

func (c *predictCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.ctype, "type", "new", "Customer type: new or existing.")
	for _, p := range costing.Products {
		f.Float64Var(&c.revenue[p], p.String(), 0, fmt.Sprintf("Expected %s revenue.", p))
		f.Float64Var(&c.cogs[p], p.String()+"-cogs", 0, fmt.Sprintf("Expected %s cost of goods sold.", p))
	}
	for _, a := range costing.Activities {
		f.Float64Var(&c.counts[a], a.String(), 0, fmt.Sprintf("Expected %s per year.", a))
	}
}

func (c *predictCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	candidate := costing.CustomerRecord{ID: "candidate", Type: costing.CustomerType(c.ctype)}
	for _, p := range costing.Products {
		candidate.Revenue[p] = costing.M(c.revenue[p], costing.LedgerCurrency)
		candidate.COGS[p] = costing.M(c.cogs[p], costing.LedgerCurrency)
	}
	for _, act := range costing.Activities {
		candidate.Counts[act] = costing.Q(c.counts[act])
	}
	candidate = costing.NewEngine().Derive(candidate)

	prob, tier, err := m.PredictRecord(candidate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring candidate: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Probability of profitability: %.3f\n", prob)
	fmt.Printf("Tier: %s\n", tier)
	fmt.Printf("Gross margin rate: %s\n", candidate.GrossMarginRate.AsPercent())
	return subcommands.ExitSuccess
}
