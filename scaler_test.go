package costing

import "testing"

func TestFitScaler(t *testing.T) {
	rows := [][]float64{
		{1, 10, 5},
		{3, 10, 7},
	}
	s := fitScaler(rows)

	approx(t, "mean[0]", s.Mean[0], 2, 1e-12)
	approx(t, "mean[2]", s.Mean[2], 6, 1e-12)
	// Constant columns keep a unit deviation.
	if s.Std[1] != 1 {
		t.Errorf("std of a constant column = %v, want 1", s.Std[1])
	}

	z := s.Transform(rows[0])
	if z[1] != 0 {
		t.Errorf("transform of a constant column = %v, want 0", z[1])
	}
	if z[0] >= 0 {
		t.Errorf("transform below the mean = %v, want negative", z[0])
	}
	// The input row is untouched.
	if rows[0][0] != 1 {
		t.Errorf("Transform mutated its input: %v", rows[0])
	}
}

func TestScaler_TransformAll(t *testing.T) {
	rows := [][]float64{{0}, {10}}
	s := fitScaler(rows)
	z := s.TransformAll(rows)
	approx(t, "z[0]+z[1]", z[0][0]+z[1][0], 0, 1e-12)
}
