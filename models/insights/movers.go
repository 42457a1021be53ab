package insights

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	// moversProcessingCap bounds the per-item growth computation so latency
	// scales with the item count, not combinatorially.
	moversProcessingCap = 20

	// moversDefaultTopN is the per-list result cap.
	moversDefaultTopN = 5

	// fastestGrowingThreshold: growth below this percent is not "fast".
	fastestGrowingThreshold = 20
)

// ItemMover is one ranked item with its window totals and half-over-half
// growth.
type ItemMover struct {
	ItemId        int             `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	GrowthPercent decimal.Decimal `json:"growth_percent"`
}

// TopMovers carries the capped rankings by volume, cost and growth.
type TopMovers struct {
	ByVolume       []ItemMover `json:"by_volume"`
	ByCost         []ItemMover `json:"by_cost"`
	FastestGrowing []ItemMover `json:"fastest_growing"`
}

// RankTopMovers ranks items by consumed volume, consumed cost, and growth
// (second window half vs first). Growth is computed only for the top items
// by volume (processing cap); items qualify as fastest growing only above
// the growth threshold. topN <= 0 uses the default cap.
func RankTopMovers(snap *Snapshot, topN int) TopMovers {
	if topN <= 0 {
		topN = moversDefaultTopN
	}

	midpoint := snap.Window.Midpoint()
	movers := make([]ItemMover, 0, len(snap.Items))
	for _, item := range snap.Items {
		totals := snap.AggregateItem(item.Id)
		if totals.Count == 0 {
			continue
		}
		movers = append(movers, ItemMover{
			ItemId:   item.Id,
			ItemName: item.Name,
			Quantity: totals.Quantity,
			Cost:     totals.Cost,
		})
	}

	byVolume := sortedCopy(movers, func(a, b ItemMover) bool {
		if !a.Quantity.Equal(b.Quantity) {
			return a.Quantity.GreaterThan(b.Quantity)
		}
		return a.ItemId < b.ItemId
	})
	byCost := sortedCopy(movers, func(a, b ItemMover) bool {
		if !a.Cost.Equal(b.Cost) {
			return a.Cost.GreaterThan(b.Cost)
		}
		return a.ItemId < b.ItemId
	})

	// Growth only for the highest-volume items, inside the processing cap.
	growthPool := byVolume
	if len(growthPool) > moversProcessingCap {
		growthPool = growthPool[:moversProcessingCap]
	}
	growing := []ItemMover{}
	for _, mover := range growthPool {
		firstHalf := decimal.Zero
		secondHalf := decimal.Zero
		for _, r := range snap.RecordsForItem(mover.ItemId) {
			if r.Date.After(midpoint) {
				secondHalf = secondHalf.Add(r.Quantity)
			} else {
				firstHalf = firstHalf.Add(r.Quantity)
			}
		}
		growth := Percent(secondHalf.Sub(firstHalf), firstHalf)
		if growth.GreaterThan(decimal.NewFromInt(fastestGrowingThreshold)) {
			mover.GrowthPercent = growth
			growing = append(growing, mover)
		}
	}
	sort.SliceStable(growing, func(i, j int) bool {
		if !growing[i].GrowthPercent.Equal(growing[j].GrowthPercent) {
			return growing[i].GrowthPercent.GreaterThan(growing[j].GrowthPercent)
		}
		return growing[i].ItemId < growing[j].ItemId
	})

	return TopMovers{
		ByVolume:       capList(byVolume, topN),
		ByCost:         capList(byCost, topN),
		FastestGrowing: capList(growing, topN),
	}
}

func sortedCopy(movers []ItemMover, less func(a, b ItemMover) bool) []ItemMover {
	out := make([]ItemMover, len(movers))
	copy(out, movers)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func capList(movers []ItemMover, n int) []ItemMover {
	if len(movers) > n {
		return movers[:n]
	}
	return movers
}
