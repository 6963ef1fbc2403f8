package costing

import "testing"

func TestSampleCustomers(t *testing.T) {
	records := SampleCustomers(200, DefaultSampleSeed)
	if len(records) != 200 {
		t.Fatalf("generated %d customers, want 200", len(records))
	}

	newCount := 0
	for _, c := range records {
		if c.ID == "" {
			t.Fatal("generated a customer without an identifier")
		}
		if c.Type == NewCustomer {
			newCount++
		}
		if c.Revenue[CorrugatedBoard].LessThan(USD(1000)) || c.Revenue[CorrugatedBoard].GreaterThan(USD(50000)) {
			t.Errorf("customer %s: board revenue %s out of range", c.ID, c.Revenue[CorrugatedBoard])
		}
		if c.Counts[Orders].IsNegative() {
			t.Errorf("customer %s: negative order count", c.ID)
		}
	}
	// Roughly 30% of accounts are new.
	if newCount < 30 || newCount > 90 {
		t.Errorf("new customers = %d of 200, want around 60", newCount)
	}
}

func TestSampleCustomers_Deterministic(t *testing.T) {
	a := SampleCustomers(50, 7)
	b := SampleCustomers(50, 7)
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Revenue[DieCutBoxes].Equal(b[i].Revenue[DieCutBoxes]) {
			t.Fatalf("record %d differs between runs", i)
		}
		if !a[i].Counts[Shipments].Equal(b[i].Counts[Shipments]) {
			t.Fatalf("record %d counts differ between runs", i)
		}
	}
}

func TestSamplePeriodSummaries(t *testing.T) {
	summaries := SamplePeriodSummaries()
	if len(summaries) != 5 {
		t.Fatalf("generated %d periods, want 5", len(summaries))
	}
	for i := 1; i < len(summaries); i++ {
		if !summaries[i-1].Period.Before(summaries[i].Period) {
			t.Errorf("periods out of order at %d", i)
		}
		if !summaries[i-1].TotalOtherExpenses.LessThan(summaries[i].TotalOtherExpenses) {
			t.Errorf("expenses not growing at %d", i)
		}
	}
	for _, s := range summaries {
		if !s.GrossProfit.Equal(s.TotalRevenue.Sub(s.TotalCOGS)) {
			t.Errorf("period %s: gross profit %s is not revenue minus COGS", s.Period, s.GrossProfit)
		}
		if s.Customers == 0 {
			t.Errorf("period %s: no customer count", s.Period)
		}
	}

	last := summaries[4]
	if !last.TotalRevenue.Equal(USD(7000000)) || !last.TotalCOGS.Equal(USD(4900000)) {
		t.Errorf("2020 P&L = %s / %s, want $7,000,000.00 / $4,900,000.00", last.TotalRevenue, last.TotalCOGS)
	}
	if !last.NetProfit.Equal(USD(420000)) || last.Customers != 1000 {
		t.Errorf("2020 net profit = %s, customers = %d, want $420,000.00 and 1000", last.NetProfit, last.Customers)
	}
}
