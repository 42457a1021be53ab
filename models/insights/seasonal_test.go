package insights

import (
	"testing"
	"time"
)

func TestDetectSeasonality_RequiresSixDistinctMonths(t *testing.T) {
	window := Window{Start: day(2024, time.January, 1), End: day(2024, time.May, 31)}
	records := []Record{}
	for m := time.January; m <= time.May; m++ {
		records = append(records, Record{ItemId: 1, Date: day(2024, m, 10), Quantity: d("100")})
	}
	snap := NewSnapshot(window, []Item{{Id: 1, UnitPrice: d("1")}}, records)
	if _, ok := DetectSeasonality(snap); ok {
		t.Fatal("five distinct months must not be assessed")
	}
}

func TestDetectSeasonality_FlagsPeakAndTrough(t *testing.T) {
	window := Window{Start: day(2024, time.January, 1), End: day(2024, time.June, 30)}
	quantities := map[time.Month]string{
		time.January:  "100",
		time.February: "100",
		time.March:    "100",
		time.April:    "100",
		time.May:      "100",
		time.June:     "200",
	}
	records := []Record{}
	for m, q := range quantities {
		records = append(records, Record{ItemId: 1, Date: day(2024, m, 10), Quantity: d(q)})
	}
	snap := NewSnapshot(window, []Item{{Id: 1, UnitPrice: d("1")}}, records)

	result, ok := DetectSeasonality(snap)
	if !ok {
		t.Fatal("expected a seasonality result")
	}
	if result.PeakMonth != "Jun" {
		t.Fatalf("expected peak Jun, got %s", result.PeakMonth)
	}
	if result.TroughMonth != "Jan" {
		t.Fatalf("expected trough Jan, got %s", result.TroughMonth)
	}
	if !result.Variance.Equal(d("100")) {
		t.Fatalf("expected variance 100, got %s", result.Variance)
	}
	if !result.Seasonal {
		t.Fatalf("variance percent %s should flag seasonal", result.VariancePercent)
	}
	if len(result.Months) != 6 {
		t.Fatalf("expected 6 month aggregates, got %d", len(result.Months))
	}
}

func TestDetectSeasonality_FlatConsumptionNotSeasonal(t *testing.T) {
	window := Window{Start: day(2024, time.January, 1), End: day(2024, time.June, 30)}
	records := []Record{}
	for m := time.January; m <= time.June; m++ {
		records = append(records, Record{ItemId: 1, Date: day(2024, m, 10), Quantity: d("100")})
	}
	snap := NewSnapshot(window, []Item{{Id: 1, UnitPrice: d("1")}}, records)

	result, ok := DetectSeasonality(snap)
	if !ok {
		t.Fatal("expected a result")
	}
	if result.Seasonal {
		t.Fatal("flat consumption must not be seasonal")
	}
}

func TestDetectSeasonality_CollapsesYears(t *testing.T) {
	window := Window{Start: day(2023, time.January, 1), End: day(2024, time.June, 30)}
	records := []Record{}
	for m := time.January; m <= time.June; m++ {
		records = append(records, Record{ItemId: 1, Date: day(2023, m, 10), Quantity: d("50")})
		records = append(records, Record{ItemId: 1, Date: day(2024, m, 10), Quantity: d("50")})
	}
	snap := NewSnapshot(window, []Item{{Id: 1, UnitPrice: d("1")}}, records)

	result, ok := DetectSeasonality(snap)
	if !ok {
		t.Fatal("expected a result")
	}
	if len(result.Months) != 6 {
		t.Fatalf("two years must collapse to 6 month buckets, got %d", len(result.Months))
	}
	if !result.Months[0].Cost.Equal(d("100")) {
		t.Fatalf("January across both years should total 100, got %s", result.Months[0].Cost)
	}
}
