package costing

import "gonum.org/v1/gonum/stat"

// Scaler standardizes feature columns to zero mean and unit variance.
// It is fitted on the training split only, so the held-out rows carry
// no information into the model.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// fitScaler computes per-column mean and standard deviation over rows.
// Columns without variance get a unit deviation so transforming them is
// the identity shift rather than a division by zero.
func fitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	cols := len(rows[0])
	s := &Scaler{Mean: make([]float64, cols), Std: make([]float64, cols)}
	col := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i, row := range rows {
			col[i] = row[j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.StdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return s
}

// Transform returns a standardized copy of x. The input is not mutated.
func (s *Scaler) Transform(x []float64) []float64 {
	z := make([]float64, len(x))
	for j, v := range x {
		z[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return z
}

// TransformAll standardizes every row.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	z := make([][]float64, len(rows))
	for i, row := range rows {
		z[i] = s.Transform(row)
	}
	return z
}
