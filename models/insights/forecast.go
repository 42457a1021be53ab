package insights

import "github.com/shopspring/decimal"

const (
	RatingExcellent        = "EXCELLENT"
	RatingGood             = "GOOD"
	RatingFair             = "FAIR"
	RatingNeedsImprovement = "NEEDS_IMPROVEMENT"
)

// ItemForecast compares one item's naive forecast against its actual
// in-window consumption.
type ItemForecast struct {
	ItemId   int             `json:"item_id"`
	ItemName string          `json:"item_name"`
	Forecast decimal.Decimal `json:"forecast"`
	Actual   decimal.Decimal `json:"actual"`
}

// ForecastAccuracy scores how well the stored forecast daily rates predicted
// actual consumption over the window.
type ForecastAccuracy struct {
	TotalForecast  decimal.Decimal `json:"total_forecast"`
	TotalActual    decimal.Decimal `json:"total_actual"`
	Accuracy       decimal.Decimal `json:"accuracy"`
	Rating         string          `json:"rating"`
	ItemsEvaluated int             `json:"items_evaluated"`
	Items          []ItemForecast  `json:"items,omitempty"`
}

// ScoreForecastAccuracy forecasts each item as forecastDailyRate x window
// days and compares the summed forecast with summed actuals. Items with a
// zero forecast rate are excluded from both sums rather than penalized.
// includeItems controls whether the per-item breakdown is carried.
func ScoreForecastAccuracy(snap *Snapshot, includeItems bool) ForecastAccuracy {
	days := decimal.NewFromInt(int64(snap.Window.Days()))

	result := ForecastAccuracy{
		TotalForecast: decimal.Zero,
		TotalActual:   decimal.Zero,
	}

	for _, item := range snap.Items {
		forecast := item.ForecastDailyRate.Mul(days)
		if forecast.IsZero() {
			continue
		}
		actual := snap.AggregateItem(item.Id).Quantity

		result.TotalForecast = result.TotalForecast.Add(forecast)
		result.TotalActual = result.TotalActual.Add(actual)
		result.ItemsEvaluated++
		if includeItems {
			result.Items = append(result.Items, ItemForecast{
				ItemId:   item.Id,
				ItemName: item.Name,
				Forecast: forecast,
				Actual:   actual,
			})
		}
	}

	errorPercent := Percent(result.TotalActual.Sub(result.TotalForecast).Abs(), result.TotalForecast)
	accuracy := decimal.NewFromInt(100).Sub(errorPercent)
	if accuracy.IsNegative() {
		accuracy = decimal.Zero
	}
	result.Accuracy = accuracy

	switch {
	case accuracy.GreaterThanOrEqual(decimal.NewFromInt(90)):
		result.Rating = RatingExcellent
	case accuracy.GreaterThanOrEqual(decimal.NewFromInt(80)):
		result.Rating = RatingGood
	case accuracy.GreaterThanOrEqual(decimal.NewFromInt(70)):
		result.Rating = RatingFair
	default:
		result.Rating = RatingNeedsImprovement
	}

	return result
}
