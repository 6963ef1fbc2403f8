package costing

import "github.com/tugpack/costing/period"

// USD is a helper for tests to create ledger money from const.
func USD(v float64) Money { return M(v, LedgerCurrency) }

// FY2020 is the costing period used by most tests.
var FY2020 = period.New(2020)

// twoCustomerScenario builds the worked reference case: a 15,000
// revenue population and a 100,000 expense pool.
func twoCustomerScenario() (customers []CustomerRecord, expenses Money) {
	a := CustomerRecord{ID: "A", Type: ExistingCustomer}
	a.Revenue[CorrugatedBoard] = USD(10000)
	a.COGS[CorrugatedBoard] = USD(6000)
	a.Counts[Shipments] = Q(5)
	a.Counts[Orders] = Q(20)
	a.Counts[Inquiries] = Q(2)
	a.Counts[DesignHours] = Q(1)

	b := CustomerRecord{ID: "B", Type: NewCustomer}
	b.Revenue[CorrugatedCartons] = USD(5000)
	b.COGS[CorrugatedCartons] = USD(4000)
	b.Counts[Shipments] = Q(2)
	b.Counts[Orders] = Q(10)
	b.Counts[ExpeditedOrders] = Q(1)
	b.Counts[Inquiries] = Q(1)

	return []CustomerRecord{a, b}, USD(100000)
}
