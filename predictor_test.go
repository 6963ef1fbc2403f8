package costing

import (
	"errors"
	"testing"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		p    float64
		want Tier
	}{
		{0.95, HighPotential},
		{0.8, HighPotential},
		{0.79, MediumPotential},
		{0.6, MediumPotential},
		{0.59, LowPotential},
		{0.4, LowPotential},
		{0.39, LossRisk},
		{0, LossRisk},
	}
	for _, c := range cases {
		if got := TierFor(c.p); got != c.want {
			t.Errorf("TierFor(%v) = %s, want %s", c.p, got, c.want)
		}
	}
}

func TestTier_Monotonic(t *testing.T) {
	// A better probability never yields a worse tier.
	prev := TierFor(0)
	for p := 0.0; p <= 1.0; p += 0.01 {
		cur := TierFor(p)
		if cur.Rank() > prev.Rank() {
			t.Fatalf("tier rank worsened from %s to %s at p=%v", prev, cur, p)
		}
		prev = cur
	}
}

func TestPredict_Untrained(t *testing.T) {
	var m *TrainedModel
	if _, _, err := m.Predict(make([]float64, NumFeatures)); !errors.Is(err, ErrUntrainedModel) {
		t.Errorf("Predict error = %v, want ErrUntrainedModel", err)
	}
	if _, err := m.Score(trainingPopulation(3)); !errors.Is(err, ErrUntrainedModel) {
		t.Errorf("Score error = %v, want ErrUntrainedModel", err)
	}
}

func TestScore(t *testing.T) {
	a, m := trainedOn(t, 60)

	scored, err := m.Score(a.Records)
	if err != nil {
		t.Fatalf("Score error = %v", err)
	}
	if len(scored) != len(a.Records) {
		t.Fatalf("Score returned %d records, want %d", len(scored), len(a.Records))
	}
	for i, c := range scored {
		if !c.Scored() {
			t.Fatalf("record %d has no tier", i)
		}
		if c.Tier != TierFor(c.ProfitProbability) {
			t.Errorf("record %s: tier %s does not match probability %v", c.ID, c.Tier, c.ProfitProbability)
		}
		if i > 0 && scored[i-1].ProfitProbability < c.ProfitProbability {
			t.Errorf("records not sorted by descending probability at %d", i)
		}
	}
	// The input records are left unscored.
	for _, c := range a.Records {
		if c.Scored() {
			t.Fatal("Score mutated its input")
		}
	}
}

func TestPredictRecord_Hypothetical(t *testing.T) {
	_, m := trainedOn(t, 60)

	// A derived record that never took part in the allocation.
	candidate := CustomerRecord{ID: "candidate", Type: NewCustomer}
	candidate.Revenue[CorrugatedBoard] = USD(12000)
	candidate.COGS[CorrugatedBoard] = USD(6000)
	candidate.Counts[Shipments] = Q(6)
	candidate.Counts[Orders] = Q(25)
	candidate = NewEngine().Derive(candidate)

	p, tier, err := m.PredictRecord(candidate)
	if err != nil {
		t.Fatalf("PredictRecord error = %v", err)
	}
	if p < 0 || p > 1 {
		t.Errorf("probability = %v, want within [0,1]", p)
	}
	if tier != TierFor(p) {
		t.Errorf("tier = %s, want %s", tier, TierFor(p))
	}
}
