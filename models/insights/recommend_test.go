package insights

import (
	"fmt"
	"testing"
	"time"
)

func TestSynthesizeRecommendations_PrecedenceAndPriorities(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	items := []Item{
		{Id: 1, Name: "Out", StockAlertLevel: "Stockout", CurrentQuantity: d("0"), ReorderLevel: d("10")},
		{Id: 2, Name: "Crit A", StockAlertLevel: "Critical", CurrentQuantity: d("2"), ReorderLevel: d("10")},
		{Id: 3, Name: "Crit B", StockAlertLevel: "Critical", CurrentQuantity: d("3"), ReorderLevel: d("10")},
		{Id: 4, Name: "Crit C", StockAlertLevel: "Critical", CurrentQuantity: d("4"), ReorderLevel: d("10")},
	}
	snap := NewSnapshot(window, items, nil)

	health := HealthScore{Items: []ItemHealth{
		{ItemId: 5, ItemName: "Soon", DaysRemaining: 3, Tier: HealthTierCritical, CurrentQuantity: d("6"), ObservedDailyRate: d("2")},
		{ItemId: 6, ItemName: "Later", DaysRemaining: 12, Tier: HealthTierWarning, CurrentQuantity: d("24"), ObservedDailyRate: d("2")},
		{ItemId: 7, ItemName: "Fine", DaysRemaining: 40, Tier: HealthTierSafe, CurrentQuantity: d("80"), ObservedDailyRate: d("2")},
	}}
	anomalies := []ItemAnomaly{
		{ItemId: 8, ItemName: "Spiky", OutlierCount: 2, RecordCount: 20, Confidence: 0.8},
		{ItemId: 9, ItemName: "Odd", OutlierCount: 1, RecordCount: 15, Confidence: 0.7},
		{ItemId: 10, ItemName: "Weird", OutlierCount: 1, RecordCount: 12, Confidence: 0.7},
	}
	movers := TopMovers{ByCost: []ItemMover{
		{ItemId: 11, ItemName: "Pricey", Cost: d("9000")},
		{ItemId: 12, ItemName: "Costly", Cost: d("7000")},
		{ItemId: 13, ItemName: "Cheap", Cost: d("100")},
	}}

	recs := SynthesizeRecommendations(snap, health, anomalies, movers)

	// Caps: 3 critical alerts + 2 cost + 2 anomalies + 2 stockouts.
	if len(recs) != 9 {
		t.Fatalf("expected 9 recommendations, got %d", len(recs))
	}

	wantCategories := []string{
		RecommendationCategoryCriticalAlert, RecommendationCategoryCriticalAlert, RecommendationCategoryCriticalAlert,
		RecommendationCategoryCostOpportunity, RecommendationCategoryCostOpportunity,
		RecommendationCategoryAnomaly, RecommendationCategoryAnomaly,
		RecommendationCategoryStockout, RecommendationCategoryStockout,
	}
	for i, want := range wantCategories {
		if recs[i].Category != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, recs[i].Category)
		}
	}

	// Stockout-level alerts outrank Critical-level ones.
	if recs[0].RelatedItemIds[0] != 1 {
		t.Fatalf("stockout alert must come first, got item %d", recs[0].RelatedItemIds[0])
	}

	// Strictly decreasing priorities from the base.
	for i, rec := range recs {
		if rec.Priority != recommendationBasePriority-i {
			t.Fatalf("position %d: expected priority %d, got %d", i, recommendationBasePriority-i, rec.Priority)
		}
	}

	// Stockout predictions ordered by days remaining; SAFE items excluded.
	if recs[7].RelatedItemIds[0] != 5 || recs[8].RelatedItemIds[0] != 6 {
		t.Fatalf("stockout ordering wrong: %+v", recs[7:])
	}
}

func TestSynthesizeRecommendations_EmptyInputs(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	snap := NewSnapshot(window, nil, nil)
	recs := SynthesizeRecommendations(snap, HealthScore{}, nil, TopMovers{})
	if len(recs) != 0 {
		t.Fatalf("no findings must mean no recommendations, got %d", len(recs))
	}
}

func TestSynthesizeRecommendations_NoCrossSourceDedup(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 30)}
	items := []Item{{Id: 1, Name: "Busy", StockAlertLevel: "Critical", CurrentQuantity: d("2"), ReorderLevel: d("10")}}
	snap := NewSnapshot(window, items, nil)

	health := HealthScore{Items: []ItemHealth{
		{ItemId: 1, ItemName: "Busy", DaysRemaining: 2, Tier: HealthTierCritical, CurrentQuantity: d("2"), ObservedDailyRate: d("1")},
	}}
	movers := TopMovers{ByCost: []ItemMover{{ItemId: 1, ItemName: "Busy", Cost: d("500")}}}

	recs := SynthesizeRecommendations(snap, health, nil, movers)
	if len(recs) != 3 {
		t.Fatalf("the same item may appear once per source, got %d", len(recs))
	}
	seen := map[string]bool{}
	for _, rec := range recs {
		key := fmt.Sprintf("%s-%d", rec.Category, rec.RelatedItemIds[0])
		if seen[key] {
			t.Fatalf("duplicate within one source: %s", key)
		}
		seen[key] = true
	}
}
