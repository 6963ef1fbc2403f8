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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	allocationFlags
	edge int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the customer profitability report" }
func (*reportCmd) Usage() string {
	return `tug report [-p <year>] [-top <n>]

  Runs the cost allocation for a period and displays the profitability
  report: population KPIs, expense pool breakdown, product lines,
  margin bands, and the best and worst customers.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.IntVar(&c.edge, "top", 10, "Number of customers in the best and worst lists.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderAllocation(costing.NewAllocationReport(a, c.edge)))
	return subcommands.ExitSuccess
}
