package costing

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tugpack/costing/period"
)

// Customer gross-margin bands used by the portfolio breakdown. These
// classify customers, not products, so the upper band differs from the
// commission bands.
const (
	CustomerHighMarginBand = 0.40
	CustomerLowMarginBand  = 0.20
)

// CostShare is one slice of the period's expense pool.
type CostShare struct {
	Total Money
	Share Percent // of total other expenses
}

// ProductLine aggregates one product across the whole population.
type ProductLine struct {
	Product     Product
	Revenue     Money
	COGS        Money
	GrossMargin Money
	MarginRate  Percent
	Commission  Money
}

// ActivityLine aggregates one activity across the whole population.
type ActivityLine struct {
	Activity Activity
	Count    Quantity
	Cost     Money
}

// CustomerLine is one customer row of a report, ordered by the report's
// own criterion.
type CustomerLine struct {
	ID            string
	Type          CustomerType
	Revenue       Money
	GrossMargin   Money
	NetProfit     Money
	NetMarginRate Percent
	Probability   float64
	Tier          Tier
}

// AllocationReport provides an at-a-glance overview of one costing
// run: the population KPIs, where the expense pool went, and the
// extremes of the customer base.
type AllocationReport struct {
	Period       period.Period
	Customers    int
	Rejected     int
	Profitable   int
	Unprofitable int

	TotalRevenue     Money
	TotalCOGS        Money
	TotalGrossMargin Money
	TotalNetProfit   Money
	NetMarginRate    Percent
	MedianNetProfit  Money

	// Expense pool breakdown. The three shares sum to 100% of the
	// period's total other expenses.
	TotalOtherExpenses Money
	VariableActivity   CostShare
	SalesCommission    CostShare
	AllocatedFixed     CostShare
	FixedCostRate      Percent

	Activities [NumActivities]ActivityLine
	Products   [NumProducts]ProductLine

	// Customers by gross margin band, high >= 40%, low < 20%.
	HighMarginCustomers int
	MidMarginCustomers  int
	LowMarginCustomers  int

	Top      []CustomerLine // best customers by net profit
	Bottom   []CustomerLine // worst customers by net profit
	Warnings []Condition
}

// NewAllocationReport summarizes an allocation run. The edge parameter
// bounds the Top and Bottom lists.
func NewAllocationReport(a *Allocation, edge int) *AllocationReport {
	ctx := a.Context
	r := &AllocationReport{
		Period:             ctx.Period,
		Customers:          len(a.Records),
		Rejected:           len(a.Rejected),
		TotalRevenue:       ctx.TotalRevenue,
		TotalOtherExpenses: ctx.TotalOtherExpenses,
		FixedCostRate:      ctx.FixedCostRate.AsPercent(),
		Warnings:           ctx.Warnings,
	}

	r.TotalCOGS = sumMoney(a.Records, func(c CustomerRecord) Money { return c.TotalCOGS })
	r.TotalNetProfit = sumMoney(a.Records, func(c CustomerRecord) Money { return c.NetProfit })
	r.TotalGrossMargin = r.TotalRevenue.Sub(r.TotalCOGS)
	if ctx.TotalRevenue.IsPositive() {
		r.NetMarginRate = r.TotalNetProfit.PercentOf(ctx.TotalRevenue)
	}

	fixed := sumMoney(a.Records, func(c CustomerRecord) Money { return c.AllocatedFixedCost })
	r.VariableActivity = costShare(ctx.TotalVariableActivityCost, ctx.TotalOtherExpenses)
	r.SalesCommission = costShare(ctx.TotalSalesCommission, ctx.TotalOtherExpenses)
	r.AllocatedFixed = costShare(fixed, ctx.TotalOtherExpenses)

	for _, act := range Activities {
		line := ActivityLine{Activity: act, Count: Q(0), Cost: M(0, LedgerCurrency)}
		for _, c := range a.Records {
			line.Count = line.Count.Add(c.Counts[act])
			line.Cost = line.Cost.Add(c.ActivityCost[act])
		}
		r.Activities[act] = line
	}
	for _, p := range Products {
		line := ProductLine{
			Product:    p,
			Revenue:    sumMoney(a.Records, func(c CustomerRecord) Money { return c.Revenue[p] }),
			COGS:       sumMoney(a.Records, func(c CustomerRecord) Money { return c.COGS[p] }),
			Commission: sumMoney(a.Records, func(c CustomerRecord) Money { return c.Commission[p] }),
		}
		line.GrossMargin = line.Revenue.Sub(line.COGS)
		if line.Revenue.IsPositive() {
			line.MarginRate = line.GrossMargin.PercentOf(line.Revenue)
		}
		r.Products[p] = line
	}

	profits := make([]float64, 0, len(a.Records))
	for _, c := range a.Records {
		profits = append(profits, c.NetProfit.AsFloat())
		if c.IsProfitable() {
			r.Profitable++
		} else {
			r.Unprofitable++
		}
		switch rate := c.GrossMarginRate.AsFloat(); {
		case rate >= CustomerHighMarginBand:
			r.HighMarginCustomers++
		case rate >= CustomerLowMarginBand:
			r.MidMarginCustomers++
		default:
			r.LowMarginCustomers++
		}
	}
	if len(profits) > 0 {
		sort.Float64s(profits)
		r.MedianNetProfit = M(stat.Quantile(0.5, stat.Empirical, profits, nil), LedgerCurrency)
	}

	byProfit := make([]CustomerRecord, len(a.Records))
	copy(byProfit, a.Records)
	sort.SliceStable(byProfit, func(i, j int) bool {
		return byProfit[i].NetProfit.GreaterThan(byProfit[j].NetProfit)
	})
	if edge > len(byProfit) {
		edge = len(byProfit)
	}
	for i := 0; i < edge; i++ {
		r.Top = append(r.Top, customerLine(byProfit[i]))
	}
	for i := len(byProfit) - edge; i < len(byProfit); i++ {
		r.Bottom = append(r.Bottom, customerLine(byProfit[i]))
	}
	return r
}

func costShare(part, whole Money) CostShare {
	s := CostShare{Total: part}
	if !whole.IsZero() {
		s.Share = part.PercentOf(whole)
	}
	return s
}

func customerLine(c CustomerRecord) CustomerLine {
	return CustomerLine{
		ID:            c.ID,
		Type:          c.Type,
		Revenue:       c.TotalRevenue,
		GrossMargin:   c.GrossMargin,
		NetProfit:     c.NetProfit,
		NetMarginRate: c.NetMarginRate.AsPercent(),
		Probability:   c.ProfitProbability,
		Tier:          c.Tier,
	}
}

// FeatureWeight is one feature's share of the model's split decisions.
type FeatureWeight struct {
	Name   string
	Weight Percent
}

// TierCount is one tier's share of the scored population.
type TierCount struct {
	Tier     Tier
	Count    int
	New      int // new customers in this tier
	Existing int // existing customers in this tier
}

// TierReport provides an overview of a scoring run: the tier
// distribution, the model's held-out quality, and the scored customers
// ordered by descending probability.
type TierReport struct {
	Period    period.Period
	Customers int
	Metrics   Metrics
	Tiers     [4]TierCount    // HighPotential first
	Drivers   []FeatureWeight // top features by importance
	Scored    []CustomerLine  // ordered by descending probability
}

// NewTierReport summarizes a scored population. The drivers parameter
// bounds the feature-importance list.
func NewTierReport(p period.Period, scored []CustomerRecord, m *TrainedModel, drivers int) *TierReport {
	r := &TierReport{Period: p, Customers: len(scored), Metrics: m.Metrics}
	for i, t := range []Tier{HighPotential, MediumPotential, LowPotential, LossRisk} {
		r.Tiers[i].Tier = t
	}
	for _, c := range scored {
		tc := &r.Tiers[c.Tier.Rank()]
		tc.Count++
		if c.Type == NewCustomer {
			tc.New++
		} else {
			tc.Existing++
		}
		r.Scored = append(r.Scored, customerLine(c))
	}

	weights := make([]FeatureWeight, len(m.Names))
	for i, name := range m.Names {
		weights[i] = FeatureWeight{Name: name, Weight: Percent(100 * m.Metrics.Importance[i])}
	}
	sort.SliceStable(weights, func(i, j int) bool { return weights[i].Weight > weights[j].Weight })
	if drivers > len(weights) {
		drivers = len(weights)
	}
	r.Drivers = weights[:drivers]
	return r
}
