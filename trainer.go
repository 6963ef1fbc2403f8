package costing

import (
	"fmt"
	"math/rand"
)

// TrainerConfig holds the hyperparameters of a training run. The zero
// value is not usable; start from DefaultTrainerConfig.
type TrainerConfig struct {
	Trees        int     // number of bootstrap trees
	MaxDepth     int     // maximum tree depth
	MinSplit     int     // minimum rows to attempt a split
	MinLeaf      int     // minimum rows on each side of a split
	TestFraction float64 // share of each class held out for evaluation
	Seed         int64   // seed for the split and the forest
	MinCustomers int     // minimum population size to train on
	MinFeatures  int     // minimum usable feature columns
}

// DefaultTrainerConfig returns the hyperparameters used in production.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Trees:        100,
		MaxDepth:     10,
		MinSplit:     5,
		MinLeaf:      2,
		TestFraction: 0.2,
		Seed:         42,
		MinCustomers: 10,
		MinFeatures:  8,
	}
}

// Metrics is the held-out evaluation of a trained model.
type Metrics struct {
	Accuracy float64 `json:"accuracy"`
	// Confusion counts test rows by [actual][predicted], with index 0
	// for unprofitable and 1 for profitable.
	Confusion [2][2]int `json:"confusion"`
	// Importance is the normalized impurity decrease per feature, in
	// FeatureNames order.
	Importance []float64 `json:"importance"`
	TrainRows  int       `json:"train_rows"`
	TestRows   int       `json:"test_rows"`
}

// TrainedModel bundles everything needed to score a customer: the
// scaler fitted on the training split, the forest, the feature names
// and the held-out metrics.
type TrainedModel struct {
	Scaler  *Scaler  `json:"scaler"`
	Forest  *Forest  `json:"forest"`
	Names   []string `json:"names"`
	Metrics Metrics  `json:"metrics"`
}

// Train fits a profitability classifier on an allocated population.
// The label of each customer is the sign of its allocated net profit.
func Train(records []CustomerRecord, cfg TrainerConfig) (*TrainedModel, error) {
	return TrainTable(BuildFeatureTable(records), cfg)
}

// TrainTable fits the classifier on a prebuilt design matrix.
//
// The run is deterministic: a stratified split and a forest grown from
// a single source seeded with cfg.Seed. Validation rejects, in order,
// populations too small to train on, label sets without at least two
// examples of each class, tables with too few informative columns, and
// splits where only one class remains.
func TrainTable(t FeatureTable, cfg TrainerConfig) (*TrainedModel, error) {
	if len(t.X) < cfg.MinCustomers {
		return nil, fmt.Errorf("training on %d customers: %w", len(t.X), ErrInsufficientData)
	}
	pos := 0
	for _, label := range t.Y {
		if label {
			pos++
		}
	}
	// A lone example of a class cannot appear on both sides of the
	// split; the model it would yield is one-sided.
	if pos < 2 || len(t.Y)-pos < 2 {
		return nil, fmt.Errorf("%d profitable and %d unprofitable customers, need 2 of each: %w",
			pos, len(t.Y)-pos, ErrInsufficientData)
	}
	if usable := usableColumns(t.X); usable < cfg.MinFeatures {
		return nil, fmt.Errorf("%d usable columns of %d: %w", usable, len(t.Names), ErrInsufficientFeatures)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trainIdx, testIdx := stratifiedSplit(t.Y, cfg.TestFraction, rng)
	pos = 0
	for _, i := range trainIdx {
		if t.Y[i] {
			pos++
		}
	}
	if pos == 0 || pos == len(trainIdx) {
		return nil, fmt.Errorf("training split has a single class: %w", ErrDegenerateData)
	}

	x := make([][]float64, len(trainIdx))
	y := make([]bool, len(trainIdx))
	for k, i := range trainIdx {
		x[k] = t.X[i]
		y[k] = t.Y[i]
	}
	scaler := fitScaler(x)
	x = scaler.TransformAll(x)

	// Balanced class weights: each class contributes half the total.
	n := float64(len(y))
	wPos := n / (2 * float64(pos))
	wNeg := n / (2 * float64(len(y)-pos))
	weights := make([]float64, len(y))
	for i, label := range y {
		if label {
			weights[i] = wPos
		} else {
			weights[i] = wNeg
		}
	}

	forest := trainForest(x, y, weights, forestConfig{
		trees:    cfg.Trees,
		maxDepth: cfg.MaxDepth,
		minSplit: cfg.MinSplit,
		minLeaf:  cfg.MinLeaf,
	}, rng)

	m := &TrainedModel{Scaler: scaler, Forest: forest, Names: t.Names}
	m.Metrics = evaluate(m, t, testIdx)
	m.Metrics.Importance = forest.Importance
	m.Metrics.TrainRows = len(trainIdx)
	m.Metrics.TestRows = len(testIdx)
	return m, nil
}

// evaluate scores the held-out rows at the 0.5 decision threshold.
func evaluate(m *TrainedModel, t FeatureTable, testIdx []int) Metrics {
	var metrics Metrics
	correct := 0
	for _, i := range testIdx {
		actual, predicted := 0, 0
		if t.Y[i] {
			actual = 1
		}
		if m.Forest.Prob(m.Scaler.Transform(t.X[i])) >= 0.5 {
			predicted = 1
		}
		metrics.Confusion[actual][predicted]++
		if actual == predicted {
			correct++
		}
	}
	if len(testIdx) > 0 {
		metrics.Accuracy = float64(correct) / float64(len(testIdx))
	}
	return metrics
}

// stratifiedSplit holds out frac of each class, preserving the class
// balance between the two splits.
func stratifiedSplit(y []bool, frac float64, rng *rand.Rand) (train, test []int) {
	var byClass [2][]int
	for i, label := range y {
		k := 0
		if label {
			k = 1
		}
		byClass[k] = append(byClass[k], i)
	}
	for _, class := range byClass {
		rng.Shuffle(len(class), func(a, b int) { class[a], class[b] = class[b], class[a] })
		hold := int(frac * float64(len(class)))
		test = append(test, class[:hold]...)
		train = append(train, class[hold:]...)
	}
	return train, test
}

// usableColumns counts the feature columns that are not constant.
func usableColumns(rows [][]float64) int {
	if len(rows) == 0 {
		return 0
	}
	usable := 0
	for j := range rows[0] {
		for _, row := range rows[1:] {
			if row[j] != rows[0][j] {
				usable++
				break
			}
		}
	}
	return usable
}
