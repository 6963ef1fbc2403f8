package costing

import (
	"fmt"
	"sync"

	"github.com/tugpack/costing/period"
)

// MissingIdentityError reports a raw row that carries no customer
// identifier. The row is excluded from the run; the rest of the batch
// is unaffected.
type MissingIdentityError struct {
	Row int // zero-based index of the row in the input collection
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("row %d: missing customer identifier", e.Row)
}

// Condition is a warning-level finding attached to an allocation run.
// Conditions are reported, never silently fixed; the downstream policy
// belongs to the caller.
type Condition string

// NegativeResidualCost signals that activity costs plus commissions
// already exceed the period's total other expenses, so the residual
// fixed cost is negative and every customer receives a fixed-cost
// credit instead of a charge.
const NegativeResidualCost Condition = "negative-residual-cost"

// AllocationContext holds the population-wide aggregates of one costing
// period. It is computed once, between the two per-customer passes, and
// is immutable for the remainder of the run.
type AllocationContext struct {
	Period                    period.Period
	TotalOtherExpenses        Money
	TotalVariableActivityCost Money
	TotalSalesCommission      Money
	TotalRevenue              Money
	RemainingFixedCost        Money
	FixedCostRate             Quantity
	Warnings                  []Condition
}

// Has reports whether the run raised the given condition.
func (ctx AllocationContext) Has(c Condition) bool {
	for _, w := range ctx.Warnings {
		if w == c {
			return true
		}
	}
	return false
}

// Allocation is the result of one costing run: the enriched customer
// records, the population aggregates, and the rows that could not take
// part. It is a fresh value; re-running with different inputs produces
// a new Allocation, never a mutation of a previous one.
type Allocation struct {
	Context  AllocationContext
	Records  []CustomerRecord
	Rejected []*MissingIdentityError
}

// Engine allocates a period's shared operating expenses to customers
// using activity-based costing. The rate tables are read-only for the
// lifetime of the engine.
type Engine struct {
	Rates       RateTable
	Commissions CommissionTable
}

// NewEngine returns an engine loaded with the default rate tables.
func NewEngine() *Engine {
	return &Engine{Rates: DefaultRates(), Commissions: DefaultCommissions()}
}

// Allocate runs the full absorption costing for one period.
//
// The computation is a two-phase fork-join. Pass 1 derives the
// per-customer margins, activity costs and commissions; every customer
// is independent. The barrier then reduces the whole population into
// the AllocationContext: the fixed-cost rate is a function of every
// customer's pass-1 output, so no pass-2 work may start before the
// reduction has seen them all. Pass 2 spreads the residual fixed cost
// by revenue and settles the net profit.
//
// Input records are not mutated.
func (e *Engine) Allocate(p period.Period, customers []CustomerRecord, totalOtherExpenses Money) *Allocation {
	records := make([]CustomerRecord, 0, len(customers))
	var rejected []*MissingIdentityError
	for i, c := range customers {
		if c.ID == "" {
			rejected = append(rejected, &MissingIdentityError{Row: i})
			continue
		}
		records = append(records, c)
	}

	// Pass 1: independent map over customers.
	parallel(len(records), func(i int) { e.pass1(&records[i]) })

	// Barrier: aggregate the whole population.
	ctx := e.aggregate(p, records, totalOtherExpenses)

	// Pass 2: independent map, now that the rate is known.
	parallel(len(records), func(i int) { pass2(&records[i], ctx.FixedCostRate) })

	return &Allocation{Context: ctx, Records: records, Rejected: rejected}
}

// Derive returns a copy of c with the population-independent fields
// filled in. It is what the predictor needs to score a hypothetical
// customer that never took part in an allocation run.
func (e *Engine) Derive(c CustomerRecord) CustomerRecord {
	e.pass1(&c)
	return c
}

// pass1 derives the fields of one customer that do not depend on the
// rest of the population.
func (e *Engine) pass1(c *CustomerRecord) {
	c.TotalRevenue = M(0, LedgerCurrency)
	c.TotalCOGS = M(0, LedgerCurrency)
	for _, p := range Products {
		c.TotalRevenue = c.TotalRevenue.Add(c.Revenue[p])
		c.TotalCOGS = c.TotalCOGS.Add(c.COGS[p])
	}
	c.GrossMargin = c.TotalRevenue.Sub(c.TotalCOGS)
	// A zero-revenue customer has a zero rate, not an undefined one.
	c.GrossMarginRate = Q(0)
	if c.TotalRevenue.IsPositive() {
		c.GrossMarginRate = c.GrossMargin.Ratio(c.TotalRevenue)
	}

	c.VariableActivityCost = M(0, LedgerCurrency)
	for _, a := range Activities {
		c.ActivityCost[a] = e.Rates[a].Mul(c.Counts[a])
		c.VariableActivityCost = c.VariableActivityCost.Add(c.ActivityCost[a])
	}

	c.SalesCommission = M(0, LedgerCurrency)
	for _, p := range Products {
		c.Commission[p] = c.Revenue[p].Mul(e.Commissions[p])
		c.SalesCommission = c.SalesCommission.Add(c.Commission[p])
	}
}

// aggregate reduces every customer's pass-1 output into the period
// context. This is the synchronization barrier of the run.
func (e *Engine) aggregate(p period.Period, records []CustomerRecord, totalOtherExpenses Money) AllocationContext {
	ctx := AllocationContext{
		Period:                    p,
		TotalOtherExpenses:        totalOtherExpenses,
		TotalVariableActivityCost: sumMoney(records, func(c CustomerRecord) Money { return c.VariableActivityCost }),
		TotalSalesCommission:      sumMoney(records, func(c CustomerRecord) Money { return c.SalesCommission }),
		TotalRevenue:              sumMoney(records, func(c CustomerRecord) Money { return c.TotalRevenue }),
	}
	ctx.RemainingFixedCost = totalOtherExpenses.Sub(ctx.TotalVariableActivityCost).Sub(ctx.TotalSalesCommission)
	ctx.FixedCostRate = Q(0)
	if ctx.TotalRevenue.IsPositive() {
		ctx.FixedCostRate = ctx.RemainingFixedCost.Ratio(ctx.TotalRevenue)
	}
	if ctx.RemainingFixedCost.IsNegative() {
		ctx.Warnings = append(ctx.Warnings, NegativeResidualCost)
	}
	return ctx
}

// pass2 settles one customer's share of the residual fixed cost and the
// resulting net profit. Requires the barrier's fixed-cost rate.
func pass2(c *CustomerRecord, fixedCostRate Quantity) {
	c.AllocatedFixedCost = c.TotalRevenue.Mul(fixedCostRate)
	c.NetProfit = c.GrossMargin.
		Sub(c.VariableActivityCost).
		Sub(c.AllocatedFixedCost).
		Sub(c.SalesCommission)
	c.NetMarginRate = Q(0)
	if c.TotalRevenue.IsPositive() {
		c.NetMarginRate = c.NetProfit.Ratio(c.TotalRevenue)
	}
}

// sumMoney is a pure reduction over the customer collection.
func sumMoney(records []CustomerRecord, f func(CustomerRecord) Money) Money {
	s := M(0, LedgerCurrency)
	for _, r := range records {
		s = s.Add(f(r))
	}
	return s
}

// parallel runs f(0..n-1) concurrently and waits for all of them.
// Every index owns its own slot; there is no shared mutable state.
func parallel(n int, f func(int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			f(i)
		}(i)
	}
	wg.Wait()
}
