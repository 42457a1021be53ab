// seed-admin creates or updates the admin console user and, with --demo,
// seeds a small demo catalog so the insights endpoints have data to chew on.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin [--demo]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/models"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminUsername = "stocksAdmin"
	adminPassword = "St0cks@Admin"
	adminName     = "Stocks Admin"
)

func main() {
	demo := flag.Bool("demo", false, "also seed a demo catalog with consumption history")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	businessId := os.Getenv("SEED_BUSINESS_ID")
	if businessId == "" {
		businessId = uuid.NewString()
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		u := models.User{
			BusinessId: businessId,
			Username:   adminUsername,
			Name:       adminName,
			Password:   string(hashed),
			IsActive:   utils.NewTrue(),
			Role:       models.UserRoleAdmin,
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created admin user %q for business %s\n", adminUsername, businessId)
	case err != nil:
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	default:
		businessId = existing.BusinessId
		if err := db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"password":  string(hashed),
			"is_active": true,
		}).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("updated admin user %q for business %s\n", adminUsername, businessId)
	}

	if *demo {
		if err := seedDemoCatalog(ctx, businessId); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed demo catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("seeded demo catalog")
	}
}

func seedDemoCatalog(ctx context.Context, businessId string) error {
	category, err := models.CreateItemCategory(ctx, businessId, &models.NewItemCategory{Name: "Dry Goods"})
	if err != nil {
		return err
	}

	price := decimal.NewFromFloat(2.5)
	item, err := models.CreateItem(ctx, businessId, &models.NewItem{
		CategoryId:      category.ID,
		Name:            "Rice 25kg",
		Sku:             "RICE-25",
		Unit:            "bag",
		CurrentQuantity: decimal.NewFromInt(120),
		UnitPrice:       &price,
		ReorderLevel:    decimal.NewFromInt(30),
	})
	if err != nil {
		return err
	}

	// 90 days of daily usage with a mild upward drift.
	today := utils.TruncateToDate(time.Now().UTC())
	records := make([]*models.ConsumptionRecord, 0, 90)
	for i := 89; i >= 0; i-- {
		qty := decimal.NewFromInt(int64(3 + (89-i)/30))
		records = append(records, &models.ConsumptionRecord{
			BusinessId:       businessId,
			ItemId:           item.ID,
			ConsumptionDate:  today.AddDate(0, 0, -i),
			ConsumedQuantity: qty,
		})
	}
	return models.BulkCreateConsumptionRecords(ctx, records)
}
