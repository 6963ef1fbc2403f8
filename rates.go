package costing

// Product enumerates the five product lines sold to customers.
type Product int

const (
	CorrugatedBoard Product = iota
	CorrugatedCartons
	DieCutBoxes
	AssembledCartons
	HeavyDutyCorrugated
)

// NumProducts is the number of product lines.
const NumProducts = 5

// Products lists all product lines in their canonical order.
var Products = [NumProducts]Product{CorrugatedBoard, CorrugatedCartons, DieCutBoxes, AssembledCartons, HeavyDutyCorrugated}

func (p Product) String() string {
	switch p {
	case CorrugatedBoard:
		return "corrugated-board"
	case CorrugatedCartons:
		return "corrugated-cartons"
	case DieCutBoxes:
		return "die-cut-boxes"
	case AssembledCartons:
		return "assembled-cartons"
	case HeavyDutyCorrugated:
		return "heavy-duty-corrugated"
	}
	return "unknown"
}

// Activity enumerates the five service activities performed for customers.
type Activity int

const (
	Shipments Activity = iota
	Orders
	ExpeditedOrders
	Inquiries
	DesignHours
)

// NumActivities is the number of tracked service activities.
const NumActivities = 5

// Activities lists all activities in their canonical order.
var Activities = [NumActivities]Activity{Shipments, Orders, ExpeditedOrders, Inquiries, DesignHours}

func (a Activity) String() string {
	switch a {
	case Shipments:
		return "shipments"
	case Orders:
		return "orders"
	case ExpeditedOrders:
		return "expedited-orders"
	case Inquiries:
		return "inquiries"
	case DesignHours:
		return "design-hours"
	}
	return "unknown"
}

// RateTable maps each activity to the cost of one unit of that
// activity, established by the activity-based costing study.
type RateTable [NumActivities]Money

// CommissionTable maps each product to the sales commission rate paid
// on its revenue. Rates are fixed per product according to the
// product's margin band; they are not recomputed from the data.
type CommissionTable [NumProducts]Quantity

// Commission rates by product margin band.
const (
	HighMarginCommission = 0.03 // gross margin above HighMarginBand
	MidMarginCommission  = 0.02 // gross margin between LowMarginBand and HighMarginBand
	LowMarginCommission  = 0.01 // gross margin below LowMarginBand
)

// Product margin bands used to set commission rates.
const (
	HighMarginBand = 0.50
	LowMarginBand  = 0.20
)

// DefaultRates returns the activity unit costs from the 2020 costing study.
func DefaultRates() RateTable {
	return RateTable{
		Shipments:       M(7.00, LedgerCurrency),
		Orders:          M(0.17, LedgerCurrency),
		ExpeditedOrders: M(267.00, LedgerCurrency),
		Inquiries:       M(33.00, LedgerCurrency),
		DesignHours:     M(70.00, LedgerCurrency),
	}
}

// DefaultCommissions returns the per-product commission rates.
// Board and cartons are high-margin products, die-cut boxes sit in the
// middle band, assembled cartons and heavy-duty corrugated are
// low-margin.
func DefaultCommissions() CommissionTable {
	return CommissionTable{
		CorrugatedBoard:     Q(HighMarginCommission),
		CorrugatedCartons:   Q(HighMarginCommission),
		DieCutBoxes:         Q(MidMarginCommission),
		AssembledCartons:    Q(LowMarginCommission),
		HeavyDutyCorrugated: Q(LowMarginCommission),
	}
}
