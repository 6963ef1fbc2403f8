package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tugpack/costing"
	"github.com/tugpack/costing/period"
)

func usd(v float64) costing.Money { return costing.M(v, costing.LedgerCurrency) }

// population returns accounts with a clean split between money makers
// and money losers so a model can be trained on it.
func population(n int) []costing.CustomerRecord {
	records := make([]costing.CustomerRecord, n)
	for i := range records {
		c := &records[i]
		c.ID = fmt.Sprintf("R%03d", i)
		c.Type = costing.NewCustomer
		if i%2 == 0 {
			c.Type = costing.ExistingCustomer
		}
		base := 8000 + 100*float64(i)
		c.Revenue[costing.CorrugatedBoard] = usd(base)
		c.Revenue[costing.CorrugatedCartons] = usd(base / 2)
		c.Revenue[costing.DieCutBoxes] = usd(500 + 10*float64(i))
		c.Revenue[costing.AssembledCartons] = usd(300 + 5*float64(i))
		c.Revenue[costing.HeavyDutyCorrugated] = usd(1000 + 20*float64(i))
		costRatio := 0.5
		if i%2 == 1 {
			costRatio = 1.2
		}
		for _, p := range costing.Products {
			c.COGS[p] = c.Revenue[p].Mul(costing.Q(costRatio))
		}
		c.Counts[costing.Shipments] = costing.Q(5 + i%7)
		c.Counts[costing.Orders] = costing.Q(20 + i%11)
		c.Counts[costing.ExpeditedOrders] = costing.Q(i % 3)
		c.Counts[costing.Inquiries] = costing.Q(i % 5)
		c.Counts[costing.DesignHours] = costing.Q(i % 4)
	}
	return records
}

func TestRenderAllocation(t *testing.T) {
	a := costing.NewEngine().Allocate(period.New(2020), population(20), usd(50000))
	md := RenderAllocation(costing.NewAllocationReport(a, 3))

	if strings.Contains(md, "error ") {
		t.Fatalf("render failed:\n%s", md)
	}
	for _, want := range []string{
		"# FY 2020 Customer Profitability",
		"Allocated 20 customers",
		"Total revenue",
		"Expense Pool",
		"corrugated-board",
		"shipments",
		"## Best Customers",
		"## Worst Customers",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered report misses %q", want)
		}
	}
}

func TestRenderAllocation_Warnings(t *testing.T) {
	// A pool smaller than the traceable costs triggers a warning line.
	a := costing.NewEngine().Allocate(period.New(2020), population(20), usd(100))
	md := RenderAllocation(costing.NewAllocationReport(a, 3))

	if !strings.Contains(md, "Warning: negative-residual-cost") {
		t.Errorf("rendered report misses the residual cost warning:\n%s", md)
	}
}

func TestRenderTiers(t *testing.T) {
	a := costing.NewEngine().Allocate(period.New(2020), population(60), usd(50000))
	m, err := costing.Train(a.Records, costing.DefaultTrainerConfig())
	if err != nil {
		t.Fatal(err)
	}
	scored, err := m.Score(a.Records)
	if err != nil {
		t.Fatal(err)
	}
	md := RenderTiers(costing.NewTierReport(period.New(2020), scored, m, 5))

	if strings.Contains(md, "error ") {
		t.Fatalf("render failed:\n%s", md)
	}
	for _, want := range []string{
		"# FY 2020 Customer Tiers",
		"Held-out accuracy",
		"## Tier Distribution",
		string(costing.HighPotential),
		string(costing.LossRisk),
		"## Model Drivers",
		"| Feature | Weight |",
		"## Scored Customers",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("rendered report misses %q", want)
		}
	}
}
