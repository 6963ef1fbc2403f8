package costing

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tugpack/costing/period"
)

// DefaultSampleSeed makes the demo population reproducible across runs.
const DefaultSampleSeed = 42

// SampleCustomers generates a synthetic customer population for demos
// and tests. Revenues and costs are uniform per product, activity
// counts follow the observed per-customer frequencies, and 70% of
// accounts are long-standing. A given (n, seed) pair always produces
// the same population.
func SampleCustomers(n int, seed int64) []CustomerRecord {
	rng := rand.New(rand.NewSource(seed))

	revLow := [NumProducts]float64{
		CorrugatedBoard:     1000,
		CorrugatedCartons:   1000,
		DieCutBoxes:         500,
		AssembledCartons:    500,
		HeavyDutyCorrugated: 2000,
	}
	revHigh := [NumProducts]float64{
		CorrugatedBoard:     50000,
		CorrugatedCartons:   30000,
		DieCutBoxes:         20000,
		AssembledCartons:    15000,
		HeavyDutyCorrugated: 40000,
	}
	// Costs run at 80% of the revenue range for every product.
	lambda := [NumActivities]float64{
		Shipments:       10,
		Orders:          50,
		ExpeditedOrders: 2,
		Inquiries:       5,
		DesignHours:     3,
	}

	records := make([]CustomerRecord, n)
	for i := range records {
		c := &records[i]
		c.ID = fmt.Sprintf("C%04d", i+1)
		c.Type = ExistingCustomer
		if rng.Float64() < 0.3 {
			c.Type = NewCustomer
		}
		for _, p := range Products {
			c.Revenue[p] = M(uniform(rng, revLow[p], revHigh[p]), LedgerCurrency)
			c.COGS[p] = M(uniform(rng, 0.8*revLow[p], 0.8*revHigh[p]), LedgerCurrency)
		}
		for _, a := range Activities {
			c.Counts[a] = Q(poisson(rng, lambda[a]))
		}
	}
	return records
}

// SamplePeriodSummaries returns the demo expense history for fiscal
// years 2016 through 2020: a 70% cost of sales and 10% year-over-year
// growth on the 2016 base, with the customer base growing by 50
// accounts a year.
func SamplePeriodSummaries() []PeriodSummary {
	summaries := make([]PeriodSummary, 0, 5)
	for i, year := range []int{2016, 2017, 2018, 2019, 2020} {
		summaries = append(summaries, PeriodSummary{
			Period:             period.New(year),
			TotalOtherExpenses: M(1200000+i*120000, LedgerCurrency),
			TotalRevenue:       M(5000000+i*500000, LedgerCurrency),
			TotalCOGS:          M(3500000+i*350000, LedgerCurrency),
			GrossProfit:        M(1500000+i*150000, LedgerCurrency),
			NetProfit:          M(300000+i*30000, LedgerCurrency),
			Customers:          800 + i*50,
		})
	}
	return summaries
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

// poisson draws a Poisson count by Knuth's product-of-uniforms method,
// fine for the small rates used here.
func poisson(rng *rand.Rand, lambda float64) int {
	l := math.Exp(-lambda)
	k, p := 0, 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
