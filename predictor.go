package costing

import "sort"

// Tier buckets a customer by its predicted probability of being
// profitable. Tiers drive account-management attention, not pricing.
type Tier string

const (
	HighPotential   Tier = "high-potential"   // probability >= 0.8
	MediumPotential Tier = "medium-potential" // probability >= 0.6
	LowPotential    Tier = "low-potential"    // probability >= 0.4
	LossRisk        Tier = "loss-risk"        // everything below
)

// Tier probability thresholds.
const (
	HighPotentialThreshold   = 0.8
	MediumPotentialThreshold = 0.6
	LowPotentialThreshold    = 0.4
)

// TierFor maps a profitability probability to its tier.
func TierFor(p float64) Tier {
	switch {
	case p >= HighPotentialThreshold:
		return HighPotential
	case p >= MediumPotentialThreshold:
		return MediumPotential
	case p >= LowPotentialThreshold:
		return LowPotential
	}
	return LossRisk
}

// Rank orders tiers from best to worst, HighPotential first.
func (t Tier) Rank() int {
	switch t {
	case HighPotential:
		return 0
	case MediumPotential:
		return 1
	case LowPotential:
		return 2
	case LossRisk:
		return 3
	}
	return 4
}

// Predict scores one feature vector. The input is raw (unscaled);
// standardization happens inside.
func (m *TrainedModel) Predict(x []float64) (float64, Tier, error) {
	if m == nil || m.Forest == nil || m.Scaler == nil {
		return 0, "", ErrUntrainedModel
	}
	p := m.Forest.Prob(m.Scaler.Transform(x))
	return p, TierFor(p), nil
}

// PredictRecord scores one allocated customer record.
func (m *TrainedModel) PredictRecord(c CustomerRecord) (float64, Tier, error) {
	return m.Predict(Features(c))
}

// Score returns a scored copy of the population, each record annotated
// with its probability and tier. The input slice is not mutated; the
// result is sorted by descending probability.
func (m *TrainedModel) Score(records []CustomerRecord) ([]CustomerRecord, error) {
	scored := make([]CustomerRecord, len(records))
	for i, c := range records {
		p, tier, err := m.PredictRecord(c)
		if err != nil {
			return nil, err
		}
		c.ProfitProbability = p
		c.Tier = tier
		scored[i] = c
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].ProfitProbability > scored[b].ProfitProbability
	})
	return scored, nil
}
