package insights

import (
	"fmt"
	"testing"
	"time"
)

func TestRankTopMovers_VolumeAndCostRankings(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{
		{Id: 1, Name: "A", UnitPrice: d("1")},
		{Id: 2, Name: "B", UnitPrice: d("2")},
		{Id: 3, Name: "C", UnitPrice: d("3")},
	}
	records := []Record{
		{ItemId: 1, Date: day(2024, time.March, 2), Quantity: d("30")},
		{ItemId: 2, Date: day(2024, time.March, 2), Quantity: d("20")},
		{ItemId: 3, Date: day(2024, time.March, 2), Quantity: d("10")},
	}
	snap := NewSnapshot(window, items, records)

	movers := RankTopMovers(snap, 0)
	if len(movers.ByVolume) != 3 || movers.ByVolume[0].ItemId != 1 {
		t.Fatalf("volume ranking wrong: %+v", movers.ByVolume)
	}
	// Costs: A=30, B=40, C=30. Ties break by item id ascending.
	if movers.ByCost[0].ItemId != 2 || movers.ByCost[1].ItemId != 1 || movers.ByCost[2].ItemId != 3 {
		t.Fatalf("cost ranking wrong: %+v", movers.ByCost)
	}
}

func TestRankTopMovers_GrowthThreshold(t *testing.T) {
	// 10-day window: first half is Mar 1-5, second Mar 6-10.
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{
		{Id: 1, Name: "Growing", UnitPrice: d("1")},
		{Id: 2, Name: "Flat", UnitPrice: d("1")},
	}
	records := []Record{
		{ItemId: 1, Date: day(2024, time.March, 2), Quantity: d("5")},
		{ItemId: 1, Date: day(2024, time.March, 8), Quantity: d("25")},
		{ItemId: 2, Date: day(2024, time.March, 2), Quantity: d("10")},
		{ItemId: 2, Date: day(2024, time.March, 8), Quantity: d("10")},
	}
	snap := NewSnapshot(window, items, records)

	movers := RankTopMovers(snap, 0)
	if len(movers.FastestGrowing) != 1 {
		t.Fatalf("expected 1 fast grower, got %d", len(movers.FastestGrowing))
	}
	grower := movers.FastestGrowing[0]
	if grower.ItemId != 1 {
		t.Fatalf("wrong item flagged: %+v", grower)
	}
	if !grower.GrowthPercent.Equal(d("400")) {
		t.Fatalf("expected 400%% growth, got %s", grower.GrowthPercent)
	}
}

func TestRankTopMovers_ZeroFirstHalfNotFlagged(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{{Id: 1, Name: "New", UnitPrice: d("1")}}
	records := []Record{{ItemId: 1, Date: day(2024, time.March, 8), Quantity: d("50")}}
	snap := NewSnapshot(window, items, records)

	movers := RankTopMovers(snap, 0)
	if len(movers.FastestGrowing) != 0 {
		t.Fatalf("zero first half divides to zero growth, got %+v", movers.FastestGrowing)
	}
}

func TestRankTopMovers_CapsApplied(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := make([]Item, 0, 30)
	records := make([]Record, 0, 30)
	for i := 1; i <= 30; i++ {
		items = append(items, Item{Id: i, Name: fmt.Sprintf("item-%d", i), UnitPrice: d("1")})
		records = append(records, Record{ItemId: i, Date: day(2024, time.March, 2), Quantity: d(fmt.Sprintf("%d", i))})
	}
	snap := NewSnapshot(window, items, records)

	movers := RankTopMovers(snap, 0)
	if len(movers.ByVolume) != moversDefaultTopN || len(movers.ByCost) != moversDefaultTopN {
		t.Fatalf("result lists must cap at %d: %d/%d", moversDefaultTopN, len(movers.ByVolume), len(movers.ByCost))
	}
	if movers.ByVolume[0].ItemId != 30 {
		t.Fatalf("highest volume first, got %+v", movers.ByVolume[0])
	}

	custom := RankTopMovers(snap, 2)
	if len(custom.ByVolume) != 2 {
		t.Fatalf("explicit topN must be honored, got %d", len(custom.ByVolume))
	}
}

func TestRankTopMovers_ItemsWithoutRecordsOmitted(t *testing.T) {
	window := Window{Start: day(2024, time.March, 1), End: day(2024, time.March, 10)}
	items := []Item{
		{Id: 1, Name: "Used", UnitPrice: d("1")},
		{Id: 2, Name: "Idle", UnitPrice: d("1")},
	}
	records := []Record{{ItemId: 1, Date: day(2024, time.March, 2), Quantity: d("5")}}
	snap := NewSnapshot(window, items, records)

	movers := RankTopMovers(snap, 0)
	if len(movers.ByVolume) != 1 {
		t.Fatalf("idle items must be omitted, got %+v", movers.ByVolume)
	}
}
