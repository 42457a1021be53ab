package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/shopspring/decimal"
)

type Item struct {
	ID         int    `gorm:"primary_key" json:"id"`
	BusinessId string `gorm:"index;not null" json:"business_id"`
	CategoryId int    `gorm:"index;not null" json:"category_id"`
	Name       string `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Sku        string `gorm:"size:100" json:"sku"`
	Unit       string `gorm:"size:20" json:"unit"`

	CurrentQuantity decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"current_quantity"`
	UnitPrice       *decimal.Decimal `gorm:"type:decimal(20,4)" json:"unit_price"`
	ReorderLevel    decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"reorder_level"`

	// AvgDailyConsumption is the stored forecast daily rate, recomputed by the
	// consumption-backfill job. The insights engine treats it as an opaque
	// input (forecastDailyRate) and never writes it.
	AvgDailyConsumption decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"avg_daily_consumption"`

	// StockAlertLevel is maintained by the stock-level job, consumed as input.
	StockAlertLevel StockAlertLevel `gorm:"type:enum('None','Low','Critical','Stockout');default:None" json:"stock_alert_level"`

	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewItem struct {
	CategoryId      int              `json:"category_id" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	Sku             string           `json:"sku"`
	Unit            string           `json:"unit"`
	CurrentQuantity decimal.Decimal  `json:"current_quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	ReorderLevel    decimal.Decimal  `json:"reorder_level"`
}

// UnitPriceOrZero coalesces a missing price to zero cost.
func (item Item) UnitPriceOrZero() decimal.Decimal {
	if item.UnitPrice == nil {
		return decimal.Zero
	}
	return *item.UnitPrice
}

func (input *NewItem) validate(ctx context.Context, businessId string) error {
	if input.CurrentQuantity.IsNegative() {
		return errors.New("current quantity cannot be negative")
	}
	if input.UnitPrice != nil && input.UnitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}
	if err := utils.ValidateResourceId[ItemCategory](ctx, businessId, input.CategoryId); err != nil {
		return errors.New("category not found")
	}
	return utils.ValidateUnique[Item](ctx, businessId, "name", input.Name, 0)
}

func GetItem(ctx context.Context, businessId string, id int) (*Item, error) {
	return utils.FetchModel[Item](ctx, businessId, id)
}

func ListItems(ctx context.Context, businessId string) ([]*Item, error) {
	return utils.FetchAllModels[Item](ctx, businessId)
}

func ListItemsByCategory(ctx context.Context, businessId string, categoryId int) ([]*Item, error) {
	db := config.GetDB()
	var items []*Item
	err := db.WithContext(ctx).
		Where("business_id = ? AND category_id = ?", businessId, categoryId).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func CreateItem(ctx context.Context, businessId string, input *NewItem) (*Item, error) {
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}
	item := Item{
		BusinessId:      businessId,
		CategoryId:      input.CategoryId,
		Name:            input.Name,
		Sku:             input.Sku,
		Unit:            input.Unit,
		CurrentQuantity: input.CurrentQuantity,
		UnitPrice:       input.UnitPrice,
		ReorderLevel:    input.ReorderLevel,
		StockAlertLevel: StockAlertLevelNone,
		IsActive:        utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemDerivedFields persists the backfill job's outputs
// (forecast daily rate + alert level) without touching user-entered fields.
func UpdateItemDerivedFields(ctx context.Context, businessId string, itemId int, avgDailyConsumption decimal.Decimal, alertLevel StockAlertLevel) error {
	db := config.GetDB()
	return db.WithContext(ctx).Model(&Item{}).
		Where("business_id = ? AND id = ?", businessId, itemId).
		Updates(map[string]interface{}{
			"avg_daily_consumption": avgDailyConsumption,
			"stock_alert_level":     alertLevel,
		}).Error
}
