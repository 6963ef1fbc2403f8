// Package cmd implements the CLI application to analyze customer
// profitability.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"

	"github.com/tugpack/costing"
	"github.com/tugpack/costing/period"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&genCmd{}, "data")
	c.Register(&allocateCmd{}, "costing")
	c.Register(&reportCmd{}, "costing")
	c.Register(&trainCmd{}, "model")
	c.Register(&tiersCmd{}, "model")
	c.Register(&predictCmd{}, "model")
	c.Register(&assistCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var customersFile = flag.String("customers-file", "customers.jsonl", "Path to the customers file (JSONL format)")
var historyFile = flag.String("history-file", "history.jsonl", "Path to the expense history file (JSONL format)")

// DecodeCustomers decodes the customer population from the app customers file.
func DecodeCustomers() ([]costing.CustomerRecord, error) {
	f, err := os.Open(*customersFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open customers file %q: %w", *customersFile, err)
	}
	defer f.Close()
	records, err := costing.DecodeCustomers(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode customers file %q: %w", *customersFile, err)
	}
	return records, nil
}

// DecodeHistory decodes the expense history from the app history file.
// A missing file is an empty history, not an error.
func DecodeHistory() ([]costing.PeriodSummary, error) {
	f, err := os.Open(*historyFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot open history file %q: %w", *historyFile, err)
	}
	defer f.Close()
	summaries, err := costing.DecodePeriodSummaries(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode history file %q: %w", *historyFile, err)
	}
	return summaries, nil
}

// allocationFlags holds the flags shared by every subcommand that needs
// a full costing run.
type allocationFlags struct {
	period       string
	expenses     float64
	expensesJSON string
	expensesPath string
}

func (a *allocationFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&a.period, "p", "", "Fiscal year to run on. Defaults to the latest period in the history.")
	f.Float64Var(&a.expenses, "expenses", 0, "Total other expenses to allocate. Overrides the history.")
	f.StringVar(&a.expensesJSON, "expenses-json", "", "JSON export to pull the expense pool from, instead of the history.")
	f.StringVar(&a.expensesPath, "expenses-path", "$.total_other_expenses", "jsonpath expression locating the expense pool in -expenses-json.")
}

// resolve determines the period and expense pool from the flags and the
// history, in precedence order: explicit amount, JSON export, history.
func (a *allocationFlags) resolve() (period.Period, costing.Money, error) {
	history, err := DecodeHistory()
	if err != nil {
		return 0, costing.Money{}, err
	}

	var p period.Period
	if a.period != "" {
		p, err = period.Parse(a.period)
	} else {
		p, err = costing.LatestPeriod(history)
	}
	if err != nil {
		return 0, costing.Money{}, err
	}

	if a.expenses != 0 {
		return p, costing.M(a.expenses, costing.LedgerCurrency), nil
	}
	if a.expensesJSON != "" {
		doc, err := os.ReadFile(a.expensesJSON)
		if err != nil {
			return 0, costing.Money{}, fmt.Errorf("cannot read expense export %q: %w", a.expensesJSON, err)
		}
		expenses, err := costing.ExtractOtherExpenses(doc, a.expensesPath)
		if err != nil {
			return 0, costing.Money{}, err
		}
		return p, expenses, nil
	}
	expenses, err := costing.OtherExpensesFor(history, p)
	if err != nil {
		return 0, costing.Money{}, err
	}
	return p, expenses, nil
}

// run performs the full costing run for the flags.
func (a *allocationFlags) run() (*costing.Allocation, error) {
	p, expenses, err := a.resolve()
	if err != nil {
		return nil, err
	}
	customers, err := DecodeCustomers()
	if err != nil {
		return nil, err
	}
	alloc := costing.NewEngine().Allocate(p, customers, expenses)
	for _, rej := range alloc.Rejected {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", rej)
	}
	return alloc, nil
}
