package insights

import "github.com/shopspring/decimal"

const (
	HealthTierCritical = "CRITICAL"
	HealthTierWarning  = "WARNING"
	HealthTierMedium   = "MEDIUM"
	HealthTierSafe     = "SAFE"

	HealthRatingExcellent = "EXCELLENT"
	HealthRatingGood      = "GOOD"
	HealthRatingFair      = "FAIR"
	HealthRatingPoor      = "POOR"

	// daysRemainingSentinel stands in for "no measurable consumption":
	// an item nobody is drawing down cannot run out.
	daysRemainingSentinel = 999
)

// ItemHealth is one item's days-of-supply assessment. ObservedDailyRate is
// recomputed from in-window records; it is deliberately distinct from the
// stored forecast rate used by the accuracy scorer.
type ItemHealth struct {
	ItemId            int             `json:"item_id"`
	ItemName          string          `json:"item_name"`
	CurrentQuantity   decimal.Decimal `json:"current_quantity"`
	ObservedDailyRate decimal.Decimal `json:"observed_daily_rate"`
	DaysRemaining     int             `json:"days_remaining"`
	Tier              string          `json:"tier"`
}

// HealthScore rolls per-item supply tiers up to a 0-100 score.
type HealthScore struct {
	CriticalCount int          `json:"critical_count"`
	WarningCount  int          `json:"warning_count"`
	MediumCount   int          `json:"medium_count"`
	SafeCount     int          `json:"safe_count"`
	TotalItems    int          `json:"total_items"`
	OverallScore  int          `json:"overall_score"`
	Rating        string       `json:"rating"`
	Items         []ItemHealth `json:"items,omitempty"`
}

// ScoreHealth tiers every item by days of remaining supply at its observed
// in-window consumption rate and aggregates an overall score. SAFE and
// MEDIUM items count as healthy; WARNING items at half weight.
func ScoreHealth(snap *Snapshot, includeItems bool) HealthScore {
	score := HealthScore{}
	windowDays := decimal.NewFromInt(int64(snap.Window.Days()))

	for _, item := range snap.Items {
		consumed := snap.AggregateItem(item.Id).Quantity
		observedRate := SafeDivide(consumed, windowDays, 4)

		daysRemaining := daysRemainingSentinel
		if observedRate.IsPositive() {
			daysRemaining = int(SafeDivideUp(item.CurrentQuantity, observedRate).IntPart())
		}

		var tier string
		switch {
		case daysRemaining < 7:
			tier = HealthTierCritical
			score.CriticalCount++
		case daysRemaining < 14:
			tier = HealthTierWarning
			score.WarningCount++
		case daysRemaining < 30:
			tier = HealthTierMedium
			score.MediumCount++
		default:
			tier = HealthTierSafe
			score.SafeCount++
		}
		score.TotalItems++

		if includeItems {
			score.Items = append(score.Items, ItemHealth{
				ItemId:            item.Id,
				ItemName:          item.Name,
				CurrentQuantity:   item.CurrentQuantity,
				ObservedDailyRate: observedRate,
				DaysRemaining:     daysRemaining,
				Tier:              tier,
			})
		}
	}

	healthy := score.SafeCount + score.MediumCount
	weighted := decimal.NewFromInt(int64(healthy*100 + score.WarningCount*50))
	score.OverallScore = int(SafeDivide(weighted, decimal.NewFromInt(int64(score.TotalItems)), 0).IntPart())

	switch {
	case score.TotalItems == 0:
		score.Rating = ""
	case score.OverallScore >= 80:
		score.Rating = HealthRatingExcellent
	case score.OverallScore >= 60:
		score.Rating = HealthRatingGood
	case score.OverallScore >= 40:
		score.Rating = HealthRatingFair
	default:
		score.Rating = HealthRatingPoor
	}

	return score
}
