package insights

import (
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/shopspring/decimal"
)

// BinTotals is one half-month bin's aggregate.
type BinTotals struct {
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Count    int             `json:"count"`
}

// VarianceResult compares a month's first half (days 1-15) against its
// second half (day 16 to end). Variance is bin2 minus bin1.
type VarianceResult struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`

	Bin1 BinTotals `json:"bin1"`
	Bin2 BinTotals `json:"bin2"`

	QuantityVariance        decimal.Decimal `json:"quantity_variance"`
	QuantityVariancePercent decimal.Decimal `json:"quantity_variance_percent"`
	CostVariance            decimal.Decimal `json:"cost_variance"`
	CostVariancePercent     decimal.Decimal `json:"cost_variance_percent"`
}

// BinVarianceForMonth computes the half-month variance for one calendar
// month. ok is false when neither bin has a record, so sparse months can be
// skipped instead of zero-reported.
func BinVarianceForMonth(snap *Snapshot, year int, month time.Month) (VarianceResult, bool) {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	bin1End := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	bin2Start := time.Date(year, month, 16, 0, 0, 0, 0, time.UTC)
	monthEnd := utils.EndOfMonth(firstOfMonth)

	bin1 := binTotals(snap, firstOfMonth, bin1End)
	bin2 := binTotals(snap, bin2Start, monthEnd)

	if bin1.Count == 0 && bin2.Count == 0 {
		return VarianceResult{}, false
	}

	qtyVariance := bin2.Quantity.Sub(bin1.Quantity)
	costVariance := bin2.Cost.Sub(bin1.Cost)

	return VarianceResult{
		Year:                    year,
		Month:                   int(month),
		Label:                   firstOfMonth.Format("Jan 2006"),
		Bin1:                    bin1,
		Bin2:                    bin2,
		QuantityVariance:        qtyVariance,
		QuantityVariancePercent: Percent(qtyVariance, bin1.Quantity),
		CostVariance:            costVariance,
		CostVariancePercent:     Percent(costVariance, bin1.Cost),
	}, true
}

// BinVarianceReport runs the half-month comparison for every calendar month
// the window touches, skipping months with no records in either bin.
func BinVarianceReport(snap *Snapshot) []VarianceResult {
	results := []VarianceResult{}
	cursor := time.Date(snap.Window.Start.Year(), snap.Window.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(snap.Window.End.Year(), snap.Window.End.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		if result, ok := BinVarianceForMonth(snap, cursor.Year(), cursor.Month()); ok {
			results = append(results, result)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return results
}

func binTotals(snap *Snapshot, from time.Time, to time.Time) BinTotals {
	agg := snap.Aggregate(func(r Record) bool {
		return !r.Date.Before(from) && !r.Date.After(to)
	})
	return BinTotals{Quantity: agg.Quantity, Cost: agg.Cost, Count: agg.Count}
}
