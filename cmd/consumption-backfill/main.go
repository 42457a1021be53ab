// consumption-backfill recomputes each item's avg_daily_consumption and
// stock_alert_level from its trailing consumption history. Run it after bulk
// imports so forecast inputs stay current.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/consumption-backfill [--days 90] [--business <id>]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/models"
	"bitbucket.org/mmdatafocus/stocks_backend/models/insights"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/shopspring/decimal"
)

func main() {
	days := flag.Int("days", 90, "trailing window in days")
	business := flag.String("business", "", "restrict to one business id (default: all)")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	var businessIds []string
	if *business != "" {
		businessIds = []string{*business}
	} else {
		if err := db.WithContext(ctx).Model(&models.Item{}).
			Distinct("business_id").Pluck("business_id", &businessIds).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to list businesses: %v\n", err)
			os.Exit(1)
		}
	}

	to := utils.TruncateToDate(time.Now().UTC())
	from := to.AddDate(0, 0, -(*days - 1))
	windowDays := decimal.NewFromInt(int64(*days))

	updated := 0
	for _, businessId := range businessIds {
		items, err := models.ListItems(ctx, businessId)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to list items for %s: %v\n", businessId, err)
			os.Exit(1)
		}
		for _, item := range items {
			records, err := models.ListConsumptionRecords(ctx, businessId, models.ConsumptionFilter{
				From:   &from,
				To:     &to,
				ItemId: item.ID,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to list records for item %d: %v\n", item.ID, err)
				os.Exit(1)
			}

			total := decimal.Zero
			for _, r := range records {
				total = total.Add(r.ConsumedQuantity)
			}
			rate := insights.SafeDivide(total, windowDays, 4)
			level := alertLevel(item.CurrentQuantity, rate)

			if err := models.UpdateItemDerivedFields(ctx, businessId, item.ID, rate, level); err != nil {
				fmt.Fprintf(os.Stderr, "failed to update item %d: %v\n", item.ID, err)
				os.Exit(1)
			}
			updated++
		}
	}

	fmt.Printf("recomputed %d items over %d businesses (window %s .. %s)\n",
		updated, len(businessIds), from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// alertLevel mirrors the health tiers: days of stock remaining at the
// observed rate decide the alert.
func alertLevel(currentQty decimal.Decimal, rate decimal.Decimal) models.StockAlertLevel {
	if currentQty.LessThanOrEqual(decimal.Zero) {
		return models.StockAlertLevelStockout
	}
	if rate.IsZero() {
		return models.StockAlertLevelNone
	}
	daysRemaining := insights.SafeDivideUp(currentQty, rate)
	if daysRemaining.LessThan(decimal.NewFromInt(7)) {
		return models.StockAlertLevelCritical
	}
	if daysRemaining.LessThan(decimal.NewFromInt(14)) {
		return models.StockAlertLevelLow
	}
	return models.StockAlertLevelNone
}
