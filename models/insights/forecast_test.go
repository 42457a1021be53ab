package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestScoreForecastAccuracy_PerfectForecast(t *testing.T) {
	// 10-day window, forecast rate 100/day, actuals sum to 1000.
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{{Id: 1, Name: "Rice", ForecastDailyRate: d("100")}}
	records := []Record{
		{ItemId: 1, Date: day(2024, time.March, 3), Quantity: d("400")},
		{ItemId: 1, Date: day(2024, time.March, 7), Quantity: d("600")},
	}
	snap := NewSnapshot(window, items, records)

	result := ScoreForecastAccuracy(snap, true)
	if !result.TotalForecast.Equal(d("1000")) || !result.TotalActual.Equal(d("1000")) {
		t.Fatalf("unexpected totals: %+v", result)
	}
	if !result.Accuracy.Equal(d("100")) {
		t.Fatalf("expected accuracy 100, got %s", result.Accuracy)
	}
	if result.Rating != RatingExcellent {
		t.Fatalf("expected EXCELLENT, got %s", result.Rating)
	}
	if result.ItemsEvaluated != 1 || len(result.Items) != 1 {
		t.Fatalf("unexpected item breakdown: %+v", result)
	}
}

func TestScoreForecastAccuracy_ZeroForecastItemsExcluded(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{
		{Id: 1, ForecastDailyRate: d("10")},
		{Id: 2, ForecastDailyRate: decimal.Zero}, // no stored forecast
	}
	records := []Record{
		{ItemId: 1, Date: day(2024, time.March, 3), Quantity: d("100")},
		{ItemId: 2, Date: day(2024, time.March, 3), Quantity: d("999")},
	}
	snap := NewSnapshot(window, items, records)

	result := ScoreForecastAccuracy(snap, false)
	if result.ItemsEvaluated != 1 {
		t.Fatalf("zero-forecast item must be excluded, evaluated %d", result.ItemsEvaluated)
	}
	if !result.TotalActual.Equal(d("100")) {
		t.Fatalf("excluded item's actuals must not count, got %s", result.TotalActual)
	}
	if len(result.Items) != 0 {
		t.Fatal("summary depth must omit the item breakdown")
	}
}

func TestScoreForecastAccuracy_FlooredAtZero(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{{Id: 1, ForecastDailyRate: d("10")}}
	records := []Record{{ItemId: 1, Date: day(2024, time.March, 3), Quantity: d("500")}}
	snap := NewSnapshot(window, items, records)

	result := ScoreForecastAccuracy(snap, false)
	if !result.Accuracy.IsZero() {
		t.Fatalf("400%% error must floor accuracy at zero, got %s", result.Accuracy)
	}
	if result.Rating != RatingNeedsImprovement {
		t.Fatalf("expected NEEDS_IMPROVEMENT, got %s", result.Rating)
	}
}

func TestScoreForecastAccuracy_EmptySnapshot(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	result := ScoreForecastAccuracy(NewSnapshot(window, nil, nil), false)
	if !result.Accuracy.Equal(d("100")) {
		t.Fatalf("no evaluable items means no error, got %s", result.Accuracy)
	}
	if result.ItemsEvaluated != 0 {
		t.Fatalf("expected 0 items evaluated, got %d", result.ItemsEvaluated)
	}
}
