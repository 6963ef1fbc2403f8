package costing

import "errors"

// Sentinel errors returned by the trainer and predictor. They are
// matched with errors.Is by callers that want to distinguish bad data
// from misuse.
var (
	// ErrInsufficientData is returned when the population is too small
	// to train on, or carries fewer than two examples of either class.
	ErrInsufficientData = errors.New("insufficient data to train")

	// ErrInsufficientFeatures is returned when too few usable feature
	// columns survive validation.
	ErrInsufficientFeatures = errors.New("insufficient features: need at least 8 usable feature columns")

	// ErrDegenerateData is returned when the training split collapses
	// to a single class, so no split can ever reduce impurity.
	ErrDegenerateData = errors.New("degenerate data: labels carry no variance")

	// ErrUntrainedModel is returned when a prediction is requested from
	// a model that has not been trained.
	ErrUntrainedModel = errors.New("untrained model")
)
