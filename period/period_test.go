package period

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	p, err := Parse("2020")
	if err != nil {
		t.Fatalf("Parse(2020) error = %v", err)
	}
	if p.Year() != 2020 {
		t.Errorf("Year() = %d, want 2020", p.Year())
	}
	if p.String() != "2020" {
		t.Errorf("String() = %q, want %q", p.String(), "2020")
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, str := range []string{"", "20x0", "123456"} {
		if _, err := Parse(str); err == nil {
			t.Errorf("Parse(%q) expected an error", str)
		}
	}
}

func TestOrdering(t *testing.T) {
	if !New(2019).Before(New(2020)) {
		t.Errorf("2019 should be before 2020")
	}
	if !New(2020).After(New(2019)) {
		t.Errorf("2020 should be after 2019")
	}
	if New(2020).Prev() != New(2019) {
		t.Errorf("Prev(2020) = %v, want 2019", New(2020).Prev())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(New(2020))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != "2020" {
		t.Errorf("Marshal = %s, want 2020", data)
	}
	var p Period
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if p != New(2020) {
		t.Errorf("round trip = %v, want 2020", p)
	}
}
