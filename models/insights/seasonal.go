package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// seasonalityMinMonths is the minimum distinct calendar months the
	// window must span before seasonality is assessed.
	seasonalityMinMonths = 6

	// seasonalityVarianceThreshold is the peak-to-trough variance (as a
	// percent of the mean month) above which seasonality is flagged.
	seasonalityVarianceThreshold = 30
)

// MonthAggregate is the total cost booked against one calendar month number,
// collapsed across years.
type MonthAggregate struct {
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// SeasonalityResult reports the peak/trough consumption months.
// Month-of-year keying intentionally collapses different years together.
type SeasonalityResult struct {
	Months          []MonthAggregate `json:"months"`
	PeakMonth       string           `json:"peak_month"`
	TroughMonth     string           `json:"trough_month"`
	Variance        decimal.Decimal  `json:"variance"`
	VariancePercent decimal.Decimal  `json:"variance_percent"`
	Seasonal        bool             `json:"seasonal"`
}

// DetectSeasonality aggregates total cost per month number (1-12) and flags
// strong seasonal variation. ok is false when the window spans fewer than
// six distinct calendar months.
func DetectSeasonality(snap *Snapshot) (SeasonalityResult, bool) {
	distinct := map[string]bool{}
	for _, r := range snap.Records {
		distinct[r.Date.Format("2006-01")] = true
	}
	if len(distinct) < seasonalityMinMonths {
		return SeasonalityResult{}, false
	}

	byMonth := map[time.Month]*MonthAggregate{}
	for _, r := range snap.Records {
		m := r.Date.Month()
		agg, ok := byMonth[m]
		if !ok {
			agg = &MonthAggregate{
				Month:    int(m),
				Label:    m.String()[:3],
				Quantity: decimal.Zero,
				Cost:     decimal.Zero,
			}
			byMonth[m] = agg
		}
		agg.Quantity = agg.Quantity.Add(r.Quantity)
		agg.Cost = agg.Cost.Add(snap.CostOf(r))
	}

	months := make([]MonthAggregate, 0, len(byMonth))
	total := decimal.Zero
	for m := time.January; m <= time.December; m++ {
		if agg, ok := byMonth[m]; ok {
			months = append(months, *agg)
			total = total.Add(agg.Cost)
		}
	}
	if len(months) == 0 {
		return SeasonalityResult{}, false
	}

	peak, trough := months[0], months[0]
	for _, m := range months[1:] {
		if m.Cost.GreaterThan(peak.Cost) {
			peak = m
		}
		if m.Cost.LessThan(trough.Cost) {
			trough = m
		}
	}

	variance := peak.Cost.Sub(trough.Cost)
	mean := SafeDivide(total, decimal.NewFromInt(int64(len(months))), 4)
	variancePercent := Percent(variance, mean)

	return SeasonalityResult{
		Months:          months,
		PeakMonth:       peak.Label,
		TroughMonth:     trough.Label,
		Variance:        variance,
		VariancePercent: variancePercent,
		Seasonal:        variancePercent.GreaterThan(decimal.NewFromInt(seasonalityVarianceThreshold)),
	}, true
}
