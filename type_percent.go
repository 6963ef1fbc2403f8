package costing

import "fmt"

// Percent is a display-ready percentage: a margin rate, an expense pool
// share, or a feature weight. Exact engine math stays on Quantity;
// values become Percent only at the report boundary.
type Percent float64

// Equal compares two percentages within display precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString formats the percentage with an explicit sign, so profit
// and loss rates read apart in a report column. 0 renders as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
