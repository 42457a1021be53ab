package insights

import (
	"testing"

	"github.com/shopspring/decimal"
)

func series(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = d(v)
	}
	return out
}

func TestAnalyzeTrend_TooShort(t *testing.T) {
	if _, ok := AnalyzeTrend(series("10", "20")); ok {
		t.Fatal("two points must not produce a trend")
	}
	if _, ok := AnalyzeTrend(nil); ok {
		t.Fatal("empty series must not produce a trend")
	}
}

func TestAnalyzeTrend_Increasing(t *testing.T) {
	result, ok := AnalyzeTrend(series("10", "20", "30", "40"))
	if !ok {
		t.Fatal("expected a trend")
	}
	if result.Direction != TrendIncreasing {
		t.Fatalf("expected INCREASING, got %s", result.Direction)
	}
	if result.Strength != TrendStrengthStrong {
		t.Fatalf("normalized slope 0.4 should be STRONG, got %s", result.Strength)
	}
	if result.Slope != 10 {
		t.Fatalf("expected slope 10, got %v", result.Slope)
	}
	if result.VolatilityLevel != VolatilityHigh {
		t.Fatalf("40%% MAD should be HIGH volatility, got %s", result.VolatilityLevel)
	}
}

func TestAnalyzeTrend_Decreasing(t *testing.T) {
	result, ok := AnalyzeTrend(series("40", "30", "20", "10"))
	if !ok {
		t.Fatal("expected a trend")
	}
	if result.Direction != TrendDecreasing {
		t.Fatalf("expected DECREASING, got %s", result.Direction)
	}
}

func TestAnalyzeTrend_FlatIsStable(t *testing.T) {
	result, ok := AnalyzeTrend(series("50", "50", "50", "50"))
	if !ok {
		t.Fatal("expected a trend")
	}
	if result.Direction != TrendStable {
		t.Fatalf("expected STABLE, got %s", result.Direction)
	}
	if result.Strength != "" {
		t.Fatalf("stable trends carry no strength, got %q", result.Strength)
	}
	if result.VolatilityLevel != VolatilityLow {
		t.Fatalf("flat series should be LOW volatility, got %s", result.VolatilityLevel)
	}
}

func TestAnalyzeTrend_AllZerosIsStable(t *testing.T) {
	result, ok := AnalyzeTrend(series("0", "0", "0"))
	if !ok {
		t.Fatal("expected a trend")
	}
	if result.Direction != TrendStable {
		t.Fatalf("zero-mean series should be STABLE, got %s", result.Direction)
	}
}
