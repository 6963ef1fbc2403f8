package costing

// CustomerType distinguishes accounts opened in the current period from
// long-standing ones.
type CustomerType string

const (
	NewCustomer      CustomerType = "new"
	ExistingCustomer CustomerType = "existing"
)

// Indicator returns the numeric encoding used by the model: existing
// customers are 1, new ones 0.
func (t CustomerType) Indicator() float64 {
	if t == ExistingCustomer {
		return 1
	}
	return 0
}

// CustomerRecord is one customer account in a costing period: the raw
// inputs supplied by the data collaborator, and the derived allocation
// fields filled in by the Engine. Raw sources may omit any product or
// activity column; an omitted column is a zero value, never an error.
type CustomerRecord struct {
	ID   string
	Type CustomerType

	// Raw inputs, zero-filled when absent from the source.
	Revenue [NumProducts]Money
	COGS    [NumProducts]Money
	Counts  [NumActivities]Quantity

	// Derived by the Engine (pass 1).
	TotalRevenue         Money
	TotalCOGS            Money
	GrossMargin          Money
	GrossMarginRate      Quantity
	ActivityCost         [NumActivities]Money
	VariableActivityCost Money
	Commission           [NumProducts]Money
	SalesCommission      Money

	// Derived by the Engine (pass 2, after the population barrier).
	AllocatedFixedCost Money
	NetProfit          Money
	NetMarginRate      Quantity

	// Attached by the Tier Predictor; zero values until scored.
	ProfitProbability float64
	Tier              Tier
}

// IsProfitable reports whether the allocated economics left a positive
// net profit. It is the training label for the classifier.
func (c CustomerRecord) IsProfitable() bool { return c.NetProfit.IsPositive() }

// Scored reports whether a tier has been attached by the predictor.
func (c CustomerRecord) Scored() bool { return c.Tier != "" }
