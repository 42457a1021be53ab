package models

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
)

type ItemCategory struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index;not null" json:"business_id"`
	Name       string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	IsActive   *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewItemCategory struct {
	Name string `json:"name" binding:"required"`
}

// get ids of associated items
func (c ItemCategory) ItemIds(ctx context.Context) (ids []int, err error) {
	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Item{}).
		Where("category_id = ?", c.ID).
		Select("id").Scan(&ids).Error
	return
}

func GetItemCategory(ctx context.Context, businessId string, id int) (*ItemCategory, error) {
	return utils.FetchModel[ItemCategory](ctx, businessId, id)
}

func ListItemCategories(ctx context.Context, businessId string) ([]*ItemCategory, error) {
	return utils.FetchAllModels[ItemCategory](ctx, businessId)
}

func CreateItemCategory(ctx context.Context, businessId string, input *NewItemCategory) (*ItemCategory, error) {
	if err := utils.ValidateUnique[ItemCategory](ctx, businessId, "name", input.Name, 0); err != nil {
		return nil, err
	}
	category := ItemCategory{
		BusinessId: businessId,
		Name:       input.Name,
		IsActive:   utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
