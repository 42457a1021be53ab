package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

// ConsumptionRecord is one observed (item, date) quantity-used event.
// Multiple rows per (item, date) are legal and are summed, not deduplicated.
type ConsumptionRecord struct {
	ID              int       `gorm:"primary_key" json:"id"`
	BusinessId      string    `gorm:"index;not null" json:"business_id"`
	ItemId          int       `gorm:"index:idx_cr_item_date,priority:1;not null" json:"item_id"`
	ConsumptionDate time.Time `gorm:"index:idx_cr_item_date,priority:2;not null" json:"consumption_date"`

	ConsumedQuantity decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"consumed_quantity"`
	OpeningStock     *decimal.Decimal `gorm:"type:decimal(20,4)" json:"opening_stock"`
	ReceivedQuantity *decimal.Decimal `gorm:"type:decimal(20,4)" json:"received_quantity"`
	ClosingStock     *decimal.Decimal `gorm:"type:decimal(20,4)" json:"closing_stock"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewConsumptionRecord struct {
	ItemId           int              `json:"item_id" binding:"required"`
	ConsumptionDate  time.Time        `json:"consumption_date" binding:"required"`
	ConsumedQuantity *decimal.Decimal `json:"consumed_quantity"`
	OpeningStock     *decimal.Decimal `json:"opening_stock"`
	ReceivedQuantity *decimal.Decimal `json:"received_quantity"`
	ClosingStock     *decimal.Decimal `json:"closing_stock"`
}

// ConsumptionFilter narrows record queries. Zero values mean "no filter".
type ConsumptionFilter struct {
	From       *time.Time
	To         *time.Time
	ItemId     int
	CategoryId int
}

func CreateConsumptionRecord(ctx context.Context, businessId string, input *NewConsumptionRecord) (*ConsumptionRecord, error) {
	if err := utils.ValidateResourceId[Item](ctx, businessId, input.ItemId); err != nil {
		return nil, errors.New("item not found")
	}
	qty := utils.DereferencePtr(input.ConsumedQuantity) // null -> 0
	if qty.IsNegative() {
		return nil, errors.New("consumed quantity cannot be negative")
	}
	record := ConsumptionRecord{
		BusinessId:       businessId,
		ItemId:           input.ItemId,
		ConsumptionDate:  utils.TruncateToDate(input.ConsumptionDate),
		ConsumedQuantity: qty,
		OpeningStock:     input.OpeningStock,
		ReceivedQuantity: input.ReceivedQuantity,
		ClosingStock:     input.ClosingStock,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func BulkCreateConsumptionRecords(ctx context.Context, records []*ConsumptionRecord) error {
	if len(records) == 0 {
		return nil
	}
	db := config.GetDB()
	return db.WithContext(ctx).CreateInBatches(records, 500).Error
}

func ListConsumptionRecords(ctx context.Context, businessId string, filter ConsumptionFilter) ([]*ConsumptionRecord, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&ConsumptionRecord{}).
		Where("consumption_records.business_id = ?", businessId)

	if filter.From != nil {
		dbCtx = dbCtx.Where("consumption_records.consumption_date >= ?", *filter.From)
	}
	if filter.To != nil {
		dbCtx = dbCtx.Where("consumption_records.consumption_date <= ?", *filter.To)
	}
	if filter.ItemId > 0 {
		dbCtx = dbCtx.Where("consumption_records.item_id = ?", filter.ItemId)
	}
	if filter.CategoryId > 0 {
		dbCtx = dbCtx.Joins("JOIN items ON items.id = consumption_records.item_id").
			Where("items.category_id = ?", filter.CategoryId)
	}

	var records []*ConsumptionRecord
	if err := dbCtx.Order("consumption_records.consumption_date ASC, consumption_records.id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ConsumptionDateBounds returns the min/max consumption dates for the tenant,
// optionally narrowed to one category. Nil bounds mean no records exist.
func ConsumptionDateBounds(ctx context.Context, businessId string, categoryId int) (*time.Time, *time.Time, error) {
	db := config.GetDB()

	sql := `
	SELECT
		MIN(cr.consumption_date) AS min_date,
		MAX(cr.consumption_date) AS max_date
	FROM consumption_records cr`
	args := []interface{}{businessId}
	if categoryId > 0 {
		sql += `
	JOIN items i ON i.id = cr.item_id
	WHERE cr.business_id = ? AND i.category_id = ?`
		args = append(args, categoryId)
	} else {
		sql += `
	WHERE cr.business_id = ?`
	}

	var bounds struct {
		MinDate *time.Time
		MaxDate *time.Time
	}
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&bounds).Error; err != nil {
		return nil, nil, err
	}
	return bounds.MinDate, bounds.MaxDate, nil
}
