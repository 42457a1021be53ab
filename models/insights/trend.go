package insights

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	TrendIncreasing = "INCREASING"
	TrendDecreasing = "DECREASING"
	TrendStable     = "STABLE"

	TrendStrengthStrong   = "STRONG"
	TrendStrengthModerate = "MODERATE"

	VolatilityHigh = "HIGH"
	VolatilityLow  = "LOW"
)

// trendMinPoints is the smallest series a linear fit is attempted on.
const trendMinPoints = 3

// TrendResult classifies the direction and stability of a bucketed series.
// Slope is the ordinary-least-squares slope over bucket index vs value;
// NormalizedSlope divides it by the series mean so thresholds are
// scale-independent.
type TrendResult struct {
	Direction         string  `json:"direction"`
	Strength          string  `json:"strength,omitempty"`
	Slope             float64 `json:"slope"`
	NormalizedSlope   float64 `json:"normalized_slope"`
	Volatility        float64 `json:"volatility"`
	VolatilityPercent float64 `json:"volatility_percent"`
	VolatilityLevel   string  `json:"volatility_level"`
	Points            int     `json:"points"`
}

// AnalyzeTrend fits a linear trend to the series values (typically per-bucket
// total cost). ok is false when the series is too short to fit.
func AnalyzeTrend(series []decimal.Decimal) (TrendResult, bool) {
	if len(series) < trendMinPoints {
		return TrendResult{}, false
	}

	values := make([]float64, len(series))
	for i, v := range series {
		values[i] = v.InexactFloat64()
	}

	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := 0.0
	if denom := n*sumXX - sumX*sumX; denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}

	mean := sumY / n
	normalized := 0.0
	if mean != 0 {
		normalized = slope / mean
	}

	// Volatility: mean absolute deviation from the mean.
	var sumAbsDev float64
	for _, y := range values {
		sumAbsDev += math.Abs(y - mean)
	}
	volatility := sumAbsDev / n
	volatilityPercent := 0.0
	if mean != 0 {
		volatilityPercent = volatility / mean * 100
	}

	result := TrendResult{
		Slope:             slope,
		NormalizedSlope:   normalized,
		Volatility:        volatility,
		VolatilityPercent: volatilityPercent,
		VolatilityLevel:   VolatilityLow,
		Points:            len(values),
	}
	if volatilityPercent > 20 {
		result.VolatilityLevel = VolatilityHigh
	}

	switch {
	case math.Abs(normalized) < 0.05:
		result.Direction = TrendStable
	case slope > 0:
		result.Direction = TrendIncreasing
	default:
		result.Direction = TrendDecreasing
	}
	if result.Direction != TrendStable {
		result.Strength = TrendStrengthModerate
		if math.Abs(normalized) > 0.15 {
			result.Strength = TrendStrengthStrong
		}
	}

	return result, true
}
