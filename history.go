package costing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/tugpack/costing/period"
)

// PeriodSummary is one closed period of the expense ledger. Only the
// period and the expense pool are required; the booked P&L figures and
// the customer count are carried when the ledger has them.
type PeriodSummary struct {
	Period             period.Period `json:"period"`
	TotalOtherExpenses Money         `json:"total_other_expenses"`
	TotalRevenue       Money         `json:"total_revenue,omitzero"`
	TotalCOGS          Money         `json:"total_cogs,omitzero"`
	GrossProfit        Money         `json:"gross_profit,omitzero"`
	NetProfit          Money         `json:"net_profit,omitzero"`
	Customers          int           `json:"customers,omitzero"`
}

// DecodePeriodSummaries reads a JSONL expense history, one period per
// line. Lines keep their file order; periods are not required to be
// contiguous.
func DecodePeriodSummaries(r io.Reader) ([]PeriodSummary, error) {
	var summaries []PeriodSummary
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var s PeriodSummary
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, line, err)
		}
		if s.Period.IsZero() {
			return nil, fmt.Errorf("format error on line %d: missing period", i)
		}
		summaries = append(summaries, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return summaries, nil
}

// EncodePeriodSummaries persists the expense history as JSONL.
func EncodePeriodSummaries(w io.Writer, summaries []PeriodSummary) error {
	for _, s := range summaries {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal period %s: %w", s.Period, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write period %s: %w", s.Period, err)
		}
	}
	return nil
}

// OtherExpensesFor returns the expense pool of the given period from
// the history, or an error naming the missing period.
func OtherExpensesFor(summaries []PeriodSummary, p period.Period) (Money, error) {
	for _, s := range summaries {
		if s.Period == p {
			return s.TotalOtherExpenses, nil
		}
	}
	return Money{}, fmt.Errorf("no expense history for period %s", p)
}

// LatestPeriod returns the most recent period present in the history.
func LatestPeriod(summaries []PeriodSummary) (period.Period, error) {
	var latest period.Period
	for _, s := range summaries {
		if s.Period.After(latest) {
			latest = s.Period
		}
	}
	if latest.IsZero() {
		return 0, fmt.Errorf("expense history is empty")
	}
	return latest, nil
}

// ExtractOtherExpenses pulls the expense pool out of an arbitrary JSON
// export with a jsonpath expression, for finance systems that do not
// produce the native history format.
func ExtractOtherExpenses(doc []byte, path string) (Money, error) {
	var jobj any
	if err := json.Unmarshal(doc, &jobj); err != nil {
		return Money{}, fmt.Errorf("error parsing expense export: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return Money{}, fmt.Errorf("error evaluating %q: not a number: %v", path, jval)
	}
	return M(val, LedgerCurrency), nil
}
