// Package period represents costing periods. The company closes its
// books yearly, so a period is a fiscal year.
package period

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Period represents one costing period with year granularity.
type Period int

// New returns the period for a given fiscal year.
func New(year int) Period { return Period(year) }

// Year returns the fiscal year of the period.
func (p Period) Year() int { return int(p) }

// Before reports whether the period p closed before x.
func (p Period) Before(x Period) bool { return p < x }

// After reports whether the period p closed after x.
func (p Period) After(x Period) bool { return p > x }

// Prev returns the preceding period.
func (p Period) Prev() Period { return p - 1 }

// String formats the period in its standard form, e.g. "2020".
func (p Period) String() string { return strconv.Itoa(int(p)) }

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool { return p == 0 }

// Parse parses a Period from a string like "2020".
func Parse(str string) (Period, error) {
	y, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: want a fiscal year like %q: %w", str, "2020", err)
	}
	if y < 1900 || y > 9999 {
		return 0, fmt.Errorf("invalid period %q: year out of range", str)
	}
	return Period(y), nil
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(p))
}

func (p *Period) UnmarshalJSON(data []byte) error {
	var y int
	if err := json.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}
	*p = Period(y)
	return nil
}
