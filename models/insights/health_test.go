package insights

import (
	"testing"
	"time"
)

func TestScoreHealth_MediumTier(t *testing.T) {
	// 30-day window, 150 consumed -> observed rate 5/day; 100 on hand -> 20
	// days remaining, MEDIUM.
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	items := []Item{{Id: 1, Name: "Rice", CurrentQuantity: d("100")}}
	records := []Record{
		{ItemId: 1, Date: day(2024, time.March, 5), Quantity: d("75")},
		{ItemId: 1, Date: day(2024, time.March, 20), Quantity: d("75")},
	}
	snap := NewSnapshot(window, items, records)

	score := ScoreHealth(snap, true)
	if len(score.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(score.Items))
	}
	item := score.Items[0]
	if !item.ObservedDailyRate.Equal(d("5")) {
		t.Fatalf("expected observed rate 5, got %s", item.ObservedDailyRate)
	}
	if item.DaysRemaining != 20 {
		t.Fatalf("expected 20 days remaining, got %d", item.DaysRemaining)
	}
	if item.Tier != HealthTierMedium {
		t.Fatalf("expected MEDIUM, got %s", item.Tier)
	}
	if score.OverallScore != 100 {
		t.Fatalf("one MEDIUM item scores 100, got %d", score.OverallScore)
	}
	if score.Rating != HealthRatingExcellent {
		t.Fatalf("expected EXCELLENT, got %s", score.Rating)
	}
}

func TestScoreHealth_NoConsumptionIsSafe(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	items := []Item{{Id: 1, CurrentQuantity: d("5")}}
	snap := NewSnapshot(window, items, nil)

	score := ScoreHealth(snap, true)
	if score.Items[0].DaysRemaining != daysRemainingSentinel {
		t.Fatalf("no consumption should use the sentinel, got %d", score.Items[0].DaysRemaining)
	}
	if score.Items[0].Tier != HealthTierSafe {
		t.Fatalf("expected SAFE, got %s", score.Items[0].Tier)
	}
}

func TestScoreHealth_TiersAndWeighting(t *testing.T) {
	// 10-day window; four items pinned to the four tiers.
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{
		{Id: 1, CurrentQuantity: d("10")},  // rate 10 -> 1 day, CRITICAL
		{Id: 2, CurrentQuantity: d("100")}, // rate 10 -> 10 days, WARNING
		{Id: 3, CurrentQuantity: d("200")}, // rate 10 -> 20 days, MEDIUM
		{Id: 4, CurrentQuantity: d("900")}, // rate 10 -> 90 days, SAFE
	}
	records := []Record{}
	for _, item := range items {
		records = append(records, Record{ItemId: item.Id, Date: day(2024, time.March, 5), Quantity: d("100")})
	}
	snap := NewSnapshot(window, items, records)

	score := ScoreHealth(snap, false)
	if score.CriticalCount != 1 || score.WarningCount != 1 || score.MediumCount != 1 || score.SafeCount != 1 {
		t.Fatalf("tier counts wrong: %+v", score)
	}
	// (2 healthy * 100 + 1 warning * 50) / 4 = 62.5, rounded half-up to 63.
	if score.OverallScore != 63 {
		t.Fatalf("expected overall 63, got %d", score.OverallScore)
	}
	if score.Rating != HealthRatingGood {
		t.Fatalf("expected GOOD, got %s", score.Rating)
	}
	if score.Items != nil {
		t.Fatal("summary depth must omit items")
	}
}

func TestScoreHealth_EmptySnapshot(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	score := ScoreHealth(NewSnapshot(window, nil, nil), true)
	if score.TotalItems != 0 || score.OverallScore != 0 {
		t.Fatalf("empty snapshot must zero out, got %+v", score)
	}
	if score.Rating != "" {
		t.Fatalf("empty snapshot carries no rating, got %q", score.Rating)
	}
}
