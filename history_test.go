package costing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tugpack/costing/period"
)

func TestDecodePeriodSummaries(t *testing.T) {
	input := `{"period":2019,"total_other_expenses":1560000,"total_revenue":6500000}
{"period":2020,"total_other_expenses":1680000}
`
	summaries, err := DecodePeriodSummaries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePeriodSummaries error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("decoded %d summaries, want 2", len(summaries))
	}
	if summaries[0].Period != period.New(2019) {
		t.Errorf("period = %v, want 2019", summaries[0].Period)
	}
	if !summaries[1].TotalOtherExpenses.Equal(USD(1680000)) {
		t.Errorf("expenses = %s, want $1,680,000.00", summaries[1].TotalOtherExpenses)
	}

	var buf bytes.Buffer
	if err := EncodePeriodSummaries(&buf, summaries); err != nil {
		t.Fatalf("EncodePeriodSummaries error = %v", err)
	}
	again, err := DecodePeriodSummaries(&buf)
	if err != nil {
		t.Fatalf("round trip error = %v", err)
	}
	if len(again) != 2 || again[0].Period != summaries[0].Period {
		t.Errorf("round trip = %v", again)
	}
}

func TestDecodePeriodSummaries_MissingPeriod(t *testing.T) {
	input := `{"total_other_expenses":100}` + "\n"
	if _, err := DecodePeriodSummaries(strings.NewReader(input)); err == nil {
		t.Fatal("expected an error for a summary without a period")
	}
}

func TestOtherExpensesFor(t *testing.T) {
	summaries := SamplePeriodSummaries()

	expenses, err := OtherExpensesFor(summaries, period.New(2018))
	if err != nil {
		t.Fatalf("OtherExpensesFor error = %v", err)
	}
	if !expenses.Equal(USD(1440000)) {
		t.Errorf("2018 expenses = %s, want $1,440,000.00", expenses)
	}

	if _, err := OtherExpensesFor(summaries, period.New(1999)); err == nil {
		t.Fatal("expected an error for a period with no history")
	}
}

func TestLatestPeriod(t *testing.T) {
	latest, err := LatestPeriod(SamplePeriodSummaries())
	if err != nil {
		t.Fatalf("LatestPeriod error = %v", err)
	}
	if latest != period.New(2020) {
		t.Errorf("latest = %v, want 2020", latest)
	}
	if _, err := LatestPeriod(nil); err == nil {
		t.Fatal("expected an error for an empty history")
	}
}

func TestExtractOtherExpenses(t *testing.T) {
	doc := []byte(`{"fiscal":{"periods":[{"year":2019,"opex":1560000},{"year":2020,"opex":1680000}]}}`)

	expenses, err := ExtractOtherExpenses(doc, "$.fiscal.periods[-1:].opex")
	if err != nil {
		t.Fatalf("ExtractOtherExpenses error = %v", err)
	}
	if !expenses.Equal(USD(1680000)) {
		t.Errorf("expenses = %s, want $1,680,000.00", expenses)
	}
}

func TestExtractOtherExpenses_NotANumber(t *testing.T) {
	doc := []byte(`{"opex":"n/a"}`)
	if _, err := ExtractOtherExpenses(doc, "$.opex"); err == nil {
		t.Fatal("expected an error for a non-numeric value")
	}
}
