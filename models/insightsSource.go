package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/models/insights"
)

// GormItemSource adapts the items table to the insights engine's read-only
// ItemSource boundary.
type GormItemSource struct{}

func (GormItemSource) Items(ctx context.Context, businessId string) ([]insights.Item, error) {
	items, err := ListItems(ctx, businessId)
	if err != nil {
		return nil, err
	}
	return toInsightItems(items), nil
}

func (GormItemSource) ItemsByCategory(ctx context.Context, businessId string, categoryId int) ([]insights.Item, error) {
	items, err := ListItemsByCategory(ctx, businessId, categoryId)
	if err != nil {
		return nil, err
	}
	return toInsightItems(items), nil
}

func toInsightItems(items []*Item) []insights.Item {
	out := make([]insights.Item, 0, len(items))
	for _, item := range items {
		out = append(out, insights.Item{
			Id:                item.ID,
			CategoryId:        item.CategoryId,
			Name:              item.Name,
			Unit:              item.Unit,
			CurrentQuantity:   item.CurrentQuantity,
			UnitPrice:         item.UnitPriceOrZero(),
			ForecastDailyRate: item.AvgDailyConsumption,
			ReorderLevel:      item.ReorderLevel,
			StockAlertLevel:   string(item.StockAlertLevel),
		})
	}
	return out
}

// GormConsumptionSource adapts consumption_records to the insights engine's
// ConsumptionRecordSource boundary.
type GormConsumptionSource struct{}

func (GormConsumptionSource) Records(ctx context.Context, businessId string, filter insights.RecordFilter) ([]insights.Record, error) {
	records, err := ListConsumptionRecords(ctx, businessId, ConsumptionFilter{
		From:       filter.From,
		To:         filter.To,
		ItemId:     filter.ItemId,
		CategoryId: filter.CategoryId,
	})
	if err != nil {
		return nil, err
	}
	out := make([]insights.Record, 0, len(records))
	for _, r := range records {
		out = append(out, insights.Record{
			ItemId:   r.ItemId,
			Date:     r.ConsumptionDate,
			Quantity: r.ConsumedQuantity, // already null-coalesced on write
		})
	}
	return out, nil
}

func (GormConsumptionSource) DateBounds(ctx context.Context, businessId string, categoryId int) (*time.Time, *time.Time, error) {
	return ConsumptionDateBounds(ctx, businessId, categoryId)
}
