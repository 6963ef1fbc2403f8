package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
)

// trainCmd holds the flags for the 'train' subcommand.
type trainCmd struct {
	allocationFlags
	trees int
	depth int
	seed  int64
}

func (*trainCmd) Name() string     { return "train" }
func (*trainCmd) Synopsis() string { return "train the profitability classifier and report its quality" }
func (*trainCmd) Usage() string {
	return `tug train [-p <year>] [-trees <n>] [-depth <n>] [-seed <seed>]

  Allocates the period, trains the random-forest profitability
  classifier on the result, and displays the held-out evaluation.
`
}

func (c *trainCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	cfg := costing.DefaultTrainerConfig()
	f.IntVar(&c.trees, "trees", cfg.Trees, "Number of trees in the forest.")
	f.IntVar(&c.depth, "depth", cfg.MaxDepth, "Maximum tree depth.")
	f.Int64Var(&c.seed, "seed", cfg.Seed, "Seed for the split and the forest.")
}

func (c *trainCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cfg := costing.DefaultTrainerConfig()
	cfg.Trees = c.trees
	cfg.MaxDepth = c.depth
	cfg.Seed = c.seed
	m, err := costing.Train(a.Records, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error training model: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(metricsMarkdown(a, m))
	return subcommands.ExitSuccess
}

func metricsMarkdown(a *costing.Allocation, m *costing.TrainedModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# FY %s Model Evaluation\n\n", a.Context.Period)
	fmt.Fprintf(&b, "Trained on %d rows, evaluated on %d held-out rows.\n\n", m.Metrics.TrainRows, m.Metrics.TestRows)
	fmt.Fprintf(&b, "Held-out accuracy: %.1f%%\n\n", 100*m.Metrics.Accuracy)

	b.WriteString("| | predicted unprofitable | predicted profitable |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| actual unprofitable | %d | %d |\n", m.Metrics.Confusion[0][0], m.Metrics.Confusion[0][1])
	fmt.Fprintf(&b, "| actual profitable | %d | %d |\n\n", m.Metrics.Confusion[1][0], m.Metrics.Confusion[1][1])

	b.WriteString("## Feature Importance\n\n| Feature | Weight |\n|---|---:|\n")
	for i, name := range m.Names {
		fmt.Fprintf(&b, "| %s | %.1f%% |\n", name, 100*m.Metrics.Importance[i])
	}
	return b.String()
}
