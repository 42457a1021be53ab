package insights

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Item is the read-only view of a stocked item the engine works with.
// ForecastDailyRate is the stored forecast input (items.avg_daily_consumption);
// it is distinct from the window-local observed rate computed by the health
// scorer, and the two are never merged.
type Item struct {
	Id                int             `json:"id"`
	CategoryId        int             `json:"category_id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"` // missing price coalesced to zero upstream
	ForecastDailyRate decimal.Decimal `json:"forecast_daily_rate"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	StockAlertLevel   string          `json:"stock_alert_level"`
}

// Record is one (item, date) consumption observation. Quantity is already
// null-coalesced to zero by the source.
type Record struct {
	ItemId   int             `json:"item_id"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RecordFilter narrows source queries. Zero values mean "no filter".
type RecordFilter struct {
	From       *time.Time
	To         *time.Time
	ItemId     int
	CategoryId int
}

// ItemSource and ConsumptionRecordSource are the engine's only boundary with
// the rest of the application. Both are read-only.
type ItemSource interface {
	Items(ctx context.Context, businessId string) ([]Item, error)
	ItemsByCategory(ctx context.Context, businessId string, categoryId int) ([]Item, error)
}

type ConsumptionRecordSource interface {
	Records(ctx context.Context, businessId string, filter RecordFilter) ([]Record, error)
	DateBounds(ctx context.Context, businessId string, categoryId int) (*time.Time, *time.Time, error)
}

// Snapshot is the immutable, call-scoped view every analyzer reads from.
// It is loaded once per analysis and never mutated afterwards, so analyzers
// can share it without coordination.
type Snapshot struct {
	Window  Window
	Items   []Item
	Records []Record

	itemsById     map[int]Item
	recordsByItem map[int][]Record
}

// LoadSnapshot resolves the analysis window and fetches one consistent view
// of items and in-window records from the two sources.
func LoadSnapshot(ctx context.Context, itemSrc ItemSource, recordSrc ConsumptionRecordSource, businessId string, params Params) (*Snapshot, error) {
	window := ResolveWindow(ctx, recordSrc, businessId, params)

	var items []Item
	var err error
	if params.CategoryId > 0 {
		items, err = itemSrc.ItemsByCategory(ctx, businessId, params.CategoryId)
	} else {
		items, err = itemSrc.Items(ctx, businessId)
	}
	if err != nil {
		return nil, err
	}

	records, err := recordSrc.Records(ctx, businessId, RecordFilter{
		From:       &window.Start,
		To:         &window.End,
		CategoryId: params.CategoryId,
	})
	if err != nil {
		return nil, err
	}

	return NewSnapshot(window, items, records), nil
}

// NewSnapshot builds a snapshot directly from in-memory data.
// Used by LoadSnapshot and by tests.
func NewSnapshot(window Window, items []Item, records []Record) *Snapshot {
	snap := &Snapshot{
		Window:        window,
		Items:         items,
		Records:       records,
		itemsById:     make(map[int]Item, len(items)),
		recordsByItem: make(map[int][]Record, len(items)),
	}
	for _, item := range items {
		snap.itemsById[item.Id] = item
	}
	for _, r := range records {
		snap.recordsByItem[r.ItemId] = append(snap.recordsByItem[r.ItemId], r)
	}
	return snap
}

func (s *Snapshot) ItemById(id int) (Item, bool) {
	item, ok := s.itemsById[id]
	return item, ok
}

// RecordsForItem returns the item's in-window records in chronological order.
func (s *Snapshot) RecordsForItem(id int) []Record {
	return s.recordsByItem[id]
}

// CostOf prices one record against its item's unit price.
// Unknown items and missing prices contribute zero cost.
func (s *Snapshot) CostOf(r Record) decimal.Decimal {
	item, ok := s.itemsById[r.ItemId]
	if !ok {
		return decimal.Zero
	}
	return r.Quantity.Mul(item.UnitPrice)
}

// Params are the per-call knobs of one analysis.
type Params struct {
	StartDate     *time.Time  `json:"start_date"`
	EndDate       *time.Time  `json:"end_date"`
	CategoryId    int         `json:"category_id"`
	Granularity   Granularity `json:"granularity"`
	MinConfidence float64     `json:"min_confidence"`
	Depth         string      `json:"depth"` // "summary" or "full"
}

const (
	DepthSummary = "summary"
	DepthFull    = "full"
)

// normalized fills in documented defaults.
func (p Params) normalized() Params {
	if p.Granularity == "" {
		p.Granularity = GranularityMonthly
	}
	if p.MinConfidence <= 0 {
		p.MinConfidence = 0.7
	}
	if p.Depth == "" {
		p.Depth = DepthSummary
	}
	return p
}
