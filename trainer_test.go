package costing

import (
	"errors"
	"fmt"
	"testing"
)

// trainingPopulation builds a separable population: even customers run
// a 50% gross margin, odd ones sell below cost.
func trainingPopulation(n int) []CustomerRecord {
	records := make([]CustomerRecord, n)
	for i := range records {
		c := &records[i]
		c.ID = fmt.Sprintf("T%03d", i)
		c.Type = NewCustomer
		if i%2 == 0 {
			c.Type = ExistingCustomer
		}
		base := 8000 + 100*float64(i)
		c.Revenue[CorrugatedBoard] = USD(base)
		c.Revenue[CorrugatedCartons] = USD(base / 2)
		c.Revenue[DieCutBoxes] = USD(500 + 10*float64(i))
		c.Revenue[AssembledCartons] = USD(300 + 5*float64(i))
		c.Revenue[HeavyDutyCorrugated] = USD(1000 + 20*float64(i))
		costRatio := 0.5
		if i%2 == 1 {
			costRatio = 1.2
		}
		for _, p := range Products {
			c.COGS[p] = c.Revenue[p].Mul(Q(costRatio))
		}
		c.Counts[Shipments] = Q(5 + i%7)
		c.Counts[Orders] = Q(20 + i%11)
		c.Counts[ExpeditedOrders] = Q(i % 3)
		c.Counts[Inquiries] = Q(i % 5)
		c.Counts[DesignHours] = Q(i % 4)
	}
	return records
}

// trainedOn allocates a small expense pool over the population and
// trains with the default configuration.
func trainedOn(t *testing.T, n int) (*Allocation, *TrainedModel) {
	t.Helper()
	a := NewEngine().Allocate(FY2020, trainingPopulation(n), USD(1000))
	m, err := Train(a.Records, DefaultTrainerConfig())
	if err != nil {
		t.Fatalf("Train error = %v", err)
	}
	return a, m
}

func TestTrain_Metrics(t *testing.T) {
	_, m := trainedOn(t, 60)

	if m.Metrics.TrainRows+m.Metrics.TestRows != 60 {
		t.Errorf("split %d+%d rows, want 60", m.Metrics.TrainRows, m.Metrics.TestRows)
	}
	if m.Metrics.TestRows != 12 {
		t.Errorf("test rows = %d, want 12 (20%% of each class)", m.Metrics.TestRows)
	}
	total := 0
	for _, row := range m.Metrics.Confusion {
		for _, n := range row {
			total += n
		}
	}
	if total != m.Metrics.TestRows {
		t.Errorf("confusion counts %d rows, want %d", total, m.Metrics.TestRows)
	}
	if len(m.Metrics.Importance) != NumFeatures {
		t.Fatalf("importance has %d entries, want %d", len(m.Metrics.Importance), NumFeatures)
	}
	sum := 0.0
	for _, w := range m.Metrics.Importance {
		if w < 0 {
			t.Errorf("negative importance %v", w)
		}
		sum += w
	}
	approx(t, "importance sum", sum, 1, 1e-9)
}

func TestTrain_SeparableAccuracy(t *testing.T) {
	// Margin sign fully determines the label, the model should find it.
	_, m := trainedOn(t, 60)
	if m.Metrics.Accuracy < 0.75 {
		t.Errorf("held-out accuracy = %v, want at least 0.75", m.Metrics.Accuracy)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	a := NewEngine().Allocate(FY2020, trainingPopulation(60), USD(1000))

	m1, err := Train(a.Records, DefaultTrainerConfig())
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Train(a.Records, DefaultTrainerConfig())
	if err != nil {
		t.Fatal(err)
	}

	if m1.Metrics.Accuracy != m2.Metrics.Accuracy {
		t.Errorf("accuracy differs between runs: %v vs %v", m1.Metrics.Accuracy, m2.Metrics.Accuracy)
	}
	for i := range m1.Metrics.Importance {
		if m1.Metrics.Importance[i] != m2.Metrics.Importance[i] {
			t.Fatalf("importance[%d] differs between runs", i)
		}
	}
	x := Features(a.Records[7])
	p1, _, err := m1.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	p2, _, err := m2.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Errorf("predictions differ between runs: %v vs %v", p1, p2)
	}
}

func TestTrain_InsufficientData(t *testing.T) {
	a := NewEngine().Allocate(FY2020, trainingPopulation(5), USD(1000))
	_, err := Train(a.Records, DefaultTrainerConfig())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Train error = %v, want ErrInsufficientData", err)
	}
}

func TestTrain_InsufficientFeatures(t *testing.T) {
	// Identical customers except for their cost ratio: both labels are
	// present but only the margin rate column carries information.
	records := make([]CustomerRecord, 20)
	for i := range records {
		c := &records[i]
		c.ID = fmt.Sprintf("F%03d", i)
		c.Type = ExistingCustomer
		c.Revenue[CorrugatedBoard] = USD(10000)
		ratio := 0.5 + 0.05*float64(i)
		c.COGS[CorrugatedBoard] = c.Revenue[CorrugatedBoard].Mul(Q(ratio))
	}
	a := NewEngine().Allocate(FY2020, records, USD(1000))
	_, err := Train(a.Records, DefaultTrainerConfig())
	if !errors.Is(err, ErrInsufficientFeatures) {
		t.Errorf("Train error = %v, want ErrInsufficientFeatures", err)
	}
}

func TestTrain_SingleClass(t *testing.T) {
	// Every customer is profitable: one class, nothing to learn.
	records := trainingPopulation(20)
	for i := range records {
		for _, p := range Products {
			records[i].COGS[p] = records[i].Revenue[p].Mul(Q(0.5))
		}
	}
	a := NewEngine().Allocate(FY2020, records, USD(1000))
	_, err := Train(a.Records, DefaultTrainerConfig())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Train error = %v, want ErrInsufficientData", err)
	}
}

func TestTrain_LoneMinorityExample(t *testing.T) {
	// Twelve customers with a single profitable one. The stratified
	// split cannot hold out any of a one-element class, so training
	// would silently produce a one-sided model; it must refuse instead.
	records := trainingPopulation(12)
	for i := 1; i < len(records); i++ {
		for _, p := range Products {
			records[i].COGS[p] = records[i].Revenue[p].Mul(Q(1.2))
		}
	}
	a := NewEngine().Allocate(FY2020, records, USD(1000))

	profitable := 0
	for _, c := range a.Records {
		if c.IsProfitable() {
			profitable++
		}
	}
	if profitable != 1 {
		t.Fatalf("scenario has %d profitable customers, want exactly 1", profitable)
	}

	m, err := Train(a.Records, DefaultTrainerConfig())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Train error = %v, want ErrInsufficientData", err)
	}
	if m != nil {
		t.Error("Train produced a model from a lone minority example")
	}
}
