package costing

// NumFeatures is the width of the model's feature vector: the five
// product revenues, the five activity counts, the customer-type
// indicator and the gross margin rate.
const NumFeatures = NumProducts + NumActivities + 2

// FeatureNames returns the column names of the feature vector, in the
// exact order produced by Features.
func FeatureNames() []string {
	names := make([]string, 0, NumFeatures)
	for _, p := range Products {
		names = append(names, "revenue/"+p.String())
	}
	for _, a := range Activities {
		names = append(names, "count/"+a.String())
	}
	names = append(names, "existing-customer", "gross-margin-rate")
	return names
}

// Features extracts the model's feature vector from an allocated
// customer record. The gross margin rate is a ratio, on the same scale
// as the type indicator rather than a percentage.
func Features(c CustomerRecord) []float64 {
	x := make([]float64, 0, NumFeatures)
	for _, p := range Products {
		x = append(x, c.Revenue[p].AsFloat())
	}
	for _, a := range Activities {
		x = append(x, c.Counts[a].AsFloat())
	}
	x = append(x, c.Type.Indicator(), c.GrossMarginRate.AsFloat())
	return x
}

// FeatureTable is the design matrix built from one allocated
// population: one row per customer, one label per row.
type FeatureTable struct {
	X     [][]float64
	Y     []bool // true when the customer's net profit is positive
	Names []string
}

// BuildFeatureTable assembles the design matrix from allocated records.
// Rows keep the order of the input collection.
func BuildFeatureTable(records []CustomerRecord) FeatureTable {
	t := FeatureTable{
		X:     make([][]float64, len(records)),
		Y:     make([]bool, len(records)),
		Names: FeatureNames(),
	}
	for i, c := range records {
		t.X[i] = Features(c)
		t.Y[i] = c.IsProfitable()
	}
	return t
}
