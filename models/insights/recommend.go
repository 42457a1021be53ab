package insights

import (
	"fmt"
	"sort"
)

const (
	RecommendationCategoryCriticalAlert   = "CRITICAL_ALERT"
	RecommendationCategoryCostOpportunity = "COST_OPPORTUNITY"
	RecommendationCategoryAnomaly         = "ANOMALY"
	RecommendationCategoryStockout        = "STOCKOUT_PREDICTION"

	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	EffortLow    = "LOW"
	EffortMedium = "MEDIUM"

	// Per-source caps, applied in precedence order.
	criticalAlertCap   = 3
	costOpportunityCap = 2
	anomalyCap         = 2
	stockoutCap        = 3

	// recommendationBasePriority is assigned to the first appended entry;
	// every subsequent entry gets a strictly lower priority.
	recommendationBasePriority = 100
)

// Recommendation is one uniform, prioritized action item.
type Recommendation struct {
	Priority       int    `json:"priority"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Action         string `json:"action"`
	Impact         string `json:"impact"`
	Effort         string `json:"effort"`
	RelatedItemIds []int  `json:"related_item_ids"`
}

// SynthesizeRecommendations merges the per-analyzer findings into one capped
// list. Sources are drained in fixed precedence order (critical alerts, cost
// opportunities, anomalies, stockout predictions) and priorities decrease
// strictly in append order. Items are NOT deduplicated across sources: the
// same item can both be a cost opportunity and predicted to stock out.
func SynthesizeRecommendations(snap *Snapshot, health HealthScore, anomalies []ItemAnomaly, movers TopMovers) []Recommendation {
	recommendations := []Recommendation{}
	priority := recommendationBasePriority

	appendRec := func(rec Recommendation) {
		rec.Priority = priority
		priority--
		recommendations = append(recommendations, rec)
	}

	// 1. Critical stock alerts (alert levels computed by the stock-level job).
	alerts := []Item{}
	for _, item := range snap.Items {
		if item.StockAlertLevel == "Critical" || item.StockAlertLevel == "Stockout" {
			alerts = append(alerts, item)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].StockAlertLevel != alerts[j].StockAlertLevel {
			return alerts[i].StockAlertLevel == "Stockout"
		}
		return alerts[i].Id < alerts[j].Id
	})
	for i, item := range alerts {
		if i >= criticalAlertCap {
			break
		}
		appendRec(Recommendation{
			Category:       RecommendationCategoryCriticalAlert,
			Title:          fmt.Sprintf("%s is at %s stock level", item.Name, item.StockAlertLevel),
			Description:    fmt.Sprintf("Current quantity %s is at or below the reorder level %s.", item.CurrentQuantity.String(), item.ReorderLevel.String()),
			Action:         "Raise a purchase order immediately",
			Impact:         ImpactHigh,
			Effort:         EffortLow,
			RelatedItemIds: []int{item.Id},
		})
	}

	// 2. Cost opportunities from the highest-spend items.
	for i, mover := range movers.ByCost {
		if i >= costOpportunityCap {
			break
		}
		appendRec(Recommendation{
			Category:       RecommendationCategoryCostOpportunity,
			Title:          fmt.Sprintf("%s drives the highest consumption cost", mover.ItemName),
			Description:    fmt.Sprintf("Consumed cost over the window is %s.", mover.Cost.StringFixed(2)),
			Action:         "Review supplier pricing and usage policy",
			Impact:         ImpactMedium,
			Effort:         EffortMedium,
			RelatedItemIds: []int{mover.ItemId},
		})
	}

	// 3. Statistical consumption anomalies.
	for i, anomaly := range anomalies {
		if i >= anomalyCap {
			break
		}
		appendRec(Recommendation{
			Category:       RecommendationCategoryAnomaly,
			Title:          fmt.Sprintf("Unusual consumption pattern for %s", anomaly.ItemName),
			Description:    fmt.Sprintf("%d of %d records deviate more than 2 standard deviations from the mean (confidence %.2f).", anomaly.OutlierCount, anomaly.RecordCount, anomaly.Confidence),
			Action:         "Audit the flagged consumption entries",
			Impact:         ImpactMedium,
			Effort:         EffortLow,
			RelatedItemIds: []int{anomaly.ItemId},
		})
	}

	// 4. Stockout predictions from days-of-supply.
	predictions := []ItemHealth{}
	for _, item := range health.Items {
		if item.Tier == HealthTierCritical || item.Tier == HealthTierWarning {
			predictions = append(predictions, item)
		}
	}
	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].DaysRemaining != predictions[j].DaysRemaining {
			return predictions[i].DaysRemaining < predictions[j].DaysRemaining
		}
		return predictions[i].ItemId < predictions[j].ItemId
	})
	for i, prediction := range predictions {
		if i >= stockoutCap {
			break
		}
		appendRec(Recommendation{
			Category:       RecommendationCategoryStockout,
			Title:          fmt.Sprintf("%s may run out in %d days", prediction.ItemName, prediction.DaysRemaining),
			Description:    fmt.Sprintf("Observed consumption of %s per day will exhaust the current quantity of %s.", prediction.ObservedDailyRate.String(), prediction.CurrentQuantity.String()),
			Action:         "Schedule replenishment before the projected stockout date",
			Impact:         ImpactHigh,
			Effort:         EffortLow,
			RelatedItemIds: []int{prediction.ItemId},
		})
	}

	return recommendations
}
