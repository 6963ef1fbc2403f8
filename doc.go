// Package costing implements activity-based customer profitability
// analysis for a packaging business. It allocates a period's shared
// operating expenses down to individual customer accounts and predicts
// each customer's profitability from the resulting economics.
//
// The core functionalities include:
//   - Allocation Engine: a stateless, two-pass engine that turns raw
//     per-customer revenue, cost and activity data plus one aggregate
//     expense figure into a fully reconciled net profit per customer.
//     No expense is lost or double-counted: the sum of all allocated
//     costs equals the period's total other expenses.
//   - Feature Builder: a stable, fixed-order numeric view of each
//     customer used for model training and scoring.
//   - Classifier Trainer: trains a bagged decision-tree ensemble on the
//     allocation output to predict whether a customer is profitable.
//   - Tier Predictor: maps the model's profitability probability to a
//     discrete tier (high/medium/low-potential, loss-risk).
//   - Data Persistence: encoding and decoding of customer rows, period
//     summaries and allocation results in human-readable JSONL.
//
// This package serves as the foundational logic for the `tug`
// command-line tool, ensuring that all operations are consistent and
// based on a single source of truth.
package costing
