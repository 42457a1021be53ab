package insights

import (
	"math"
	"sort"
	"time"
)

const (
	// anomalyMinRecords is the per-item sample floor; items with fewer
	// in-window records are skipped silently.
	anomalyMinRecords = 10

	// anomalySigma is the z-score cutoff: a record further than this many
	// standard deviations from the item's mean is an outlier.
	anomalySigma = 2.0

	// anomalyMaxExamples caps the example outliers carried per item.
	anomalyMaxExamples = 5
)

// AnomalyOutlier is one example outlier record with its deviation from the
// item's mean consumption.
type AnomalyOutlier struct {
	Date      time.Time `json:"date"`
	Quantity  float64   `json:"quantity"`
	Deviation float64   `json:"deviation"`
}

// ItemAnomaly reports one item with statistically unusual consumption.
type ItemAnomaly struct {
	ItemId       int              `json:"item_id"`
	ItemName     string           `json:"item_name"`
	Mean         float64          `json:"mean"`
	StdDev       float64          `json:"std_dev"`
	OutlierCount int              `json:"outlier_count"`
	RecordCount  int              `json:"record_count"`
	Confidence   float64          `json:"confidence"`
	Outliers     []AnomalyOutlier `json:"outliers"`
}

// DetectAnomalies flags items whose in-window consumption has z-score
// outliers. Items below the sample floor, with zero spread, or below the
// confidence threshold are omitted. Results are ordered by descending
// confidence (item id ascending on ties).
func DetectAnomalies(snap *Snapshot, minConfidence float64) []ItemAnomaly {
	results := []ItemAnomaly{}

	for _, item := range snap.Items {
		records := snap.RecordsForItem(item.Id)
		if len(records) < anomalyMinRecords {
			continue
		}

		values := make([]float64, len(records))
		var sum float64
		for i, r := range records {
			values[i] = r.Quantity.InexactFloat64()
			sum += values[i]
		}
		n := float64(len(values))
		mean := sum / n

		var sumSq float64
		for _, v := range values {
			d := v - mean
			sumSq += d * d
		}
		stdDev := math.Sqrt(sumSq / n) // population stddev

		// Identical values have no spread, hence no outliers.
		if stdDev == 0 {
			continue
		}

		var outliers []AnomalyOutlier
		outlierCount := 0
		for i, r := range records {
			deviation := values[i] - mean
			if math.Abs(deviation) > anomalySigma*stdDev {
				outlierCount++
				if len(outliers) < anomalyMaxExamples {
					outliers = append(outliers, AnomalyOutlier{
						Date:      r.Date,
						Quantity:  values[i],
						Deviation: deviation,
					})
				}
			}
		}
		if outlierCount == 0 {
			continue
		}

		confidence := math.Min(0.99, 0.6+float64(outlierCount)/n)
		if confidence < minConfidence {
			continue
		}

		results = append(results, ItemAnomaly{
			ItemId:       item.Id,
			ItemName:     item.Name,
			Mean:         mean,
			StdDev:       stdDev,
			OutlierCount: outlierCount,
			RecordCount:  len(records),
			Confidence:   confidence,
			Outliers:     outliers,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].ItemId < results[j].ItemId
	})
	return results
}
