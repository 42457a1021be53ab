package insights

import (
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/shopspring/decimal"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Bucket is one period of a bucketed series. Start and End are inclusive;
// End never exceeds the overall window end.
type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// BuildBuckets splits [window.Start, window.End] into ordered buckets.
// Daily buckets advance one day at a time, weekly seven days, monthly to the
// first day of the next calendar month. The final bucket is clipped to the
// window end. The result is deterministic for a given window + granularity.
func BuildBuckets(window Window, granularity Granularity) []Bucket {
	var buckets []Bucket
	start := utils.TruncateToDate(window.Start)
	overallEnd := utils.TruncateToDate(window.End)

	for !start.After(overallEnd) {
		var naturalEnd, nextStart time.Time
		var label string

		switch granularity {
		case GranularityDaily:
			naturalEnd = start
			nextStart = start.AddDate(0, 0, 1)
			label = start.Format("2006-01-02")
		case GranularityWeekly:
			naturalEnd = start.AddDate(0, 0, 6)
			nextStart = start.AddDate(0, 0, 7)
			label = "Week of " + start.Format("2006-01-02")
		default: // monthly
			naturalEnd = utils.EndOfMonth(start)
			nextStart = time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location())
			label = start.Format("Jan 2006")
		}

		end := naturalEnd
		if end.After(overallEnd) {
			end = overallEnd
		}
		buckets = append(buckets, Bucket{Start: start, End: end, Label: label})
		start = nextStart
	}

	return buckets
}

// BucketTotal carries one bucket's aggregated consumption.
type BucketTotal struct {
	Bucket
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Count    int             `json:"count"`
}

// BucketTotals aggregates the snapshot's records into a bucketed consumption
// series, one total per bucket in chronological order.
func BucketTotals(snap *Snapshot, granularity Granularity) []BucketTotal {
	buckets := BuildBuckets(snap.Window, granularity)
	totals := make([]BucketTotal, 0, len(buckets))
	for _, b := range buckets {
		bucket := b
		agg := snap.Aggregate(func(r Record) bool {
			return !r.Date.Before(bucket.Start) && !r.Date.After(bucket.End)
		})
		totals = append(totals, BucketTotal{
			Bucket:   bucket,
			Quantity: agg.Quantity,
			Cost:     agg.Cost,
			Count:    agg.Count,
		})
	}
	return totals
}
