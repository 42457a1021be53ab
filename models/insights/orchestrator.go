package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"github.com/shopspring/decimal"
)

// InsightsReport is the full analysis output: every section is independently
// computed over one shared snapshot, and a failing section degrades to its
// empty value without poisoning the rest.
type InsightsReport struct {
	Window      Window      `json:"window"`
	Granularity Granularity `json:"granularity"`
	GeneratedAt time.Time   `json:"generated_at"`

	Series           []BucketTotal      `json:"series"`
	Trend            *TrendResult       `json:"trend,omitempty"`
	BinVariance      []VarianceResult   `json:"bin_variance"`
	Anomalies        []ItemAnomaly      `json:"anomalies"`
	Seasonality      *SeasonalityResult `json:"seasonality,omitempty"`
	ForecastAccuracy *ForecastAccuracy  `json:"forecast_accuracy,omitempty"`
	Health           *HealthScore       `json:"health,omitempty"`
	TopMovers        *TopMovers         `json:"top_movers,omitempty"`
	Recommendations  []Recommendation   `json:"recommendations"`
}

// Orchestrator resolves the window, loads one immutable snapshot from its
// two sources and runs every analyzer over it. Failures are isolated per
// section at this boundary; the analyzers themselves never error.
type Orchestrator struct {
	items   ItemSource
	records ConsumptionRecordSource
}

func NewOrchestrator(items ItemSource, records ConsumptionRecordSource) *Orchestrator {
	return &Orchestrator{items: items, records: records}
}

// Snapshot loads the call-scoped snapshot for one analysis.
func (o *Orchestrator) Snapshot(ctx context.Context, businessId string, params Params) (*Snapshot, error) {
	if businessId == "" {
		return nil, errors.New("business id is required")
	}
	return LoadSnapshot(ctx, o.items, o.records, businessId, params.normalized())
}

// Analyze produces the full insights report. Summary depth omits per-item
// breakdowns in the health and forecast sections.
func (o *Orchestrator) Analyze(ctx context.Context, businessId string, params Params) (*InsightsReport, error) {
	params = params.normalized()
	started := time.Now()

	key := cacheKey(businessId, params)
	if insightsCacheEnabled() {
		var cached InsightsReport
		if hit, err := cacheGet(key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}

	full := params.Depth == DepthFull
	report := &InsightsReport{
		Window:          snap.Window,
		Granularity:     params.Granularity,
		GeneratedAt:     time.Now().UTC(),
		Series:          []BucketTotal{},
		BinVariance:     []VarianceResult{},
		Anomalies:       []ItemAnomaly{},
		Recommendations: []Recommendation{},
	}

	runSection(ctx, "series", func() {
		report.Series = BucketTotals(snap, params.Granularity)
	})
	runSection(ctx, "trend", func() {
		series := make([]decimal.Decimal, 0, len(report.Series))
		for _, bucket := range report.Series {
			series = append(series, bucket.Cost)
		}
		if trend, ok := AnalyzeTrend(series); ok {
			report.Trend = &trend
		}
	})
	runSection(ctx, "binVariance", func() {
		report.BinVariance = BinVarianceReport(snap)
	})
	runSection(ctx, "anomalies", func() {
		report.Anomalies = DetectAnomalies(snap, params.MinConfidence)
	})
	runSection(ctx, "seasonality", func() {
		if seasonality, ok := DetectSeasonality(snap); ok {
			report.Seasonality = &seasonality
		}
	})
	runSection(ctx, "forecastAccuracy", func() {
		accuracy := ScoreForecastAccuracy(snap, full)
		report.ForecastAccuracy = &accuracy
	})

	// Health feeds the recommender, so it is always computed with per-item
	// detail and trimmed afterwards when summary depth was requested.
	var health HealthScore
	runSection(ctx, "health", func() {
		health = ScoreHealth(snap, true)
	})
	var movers TopMovers
	runSection(ctx, "topMovers", func() {
		movers = RankTopMovers(snap, moversDefaultTopN)
		report.TopMovers = &movers
	})
	runSection(ctx, "recommendations", func() {
		report.Recommendations = SynthesizeRecommendations(snap, health, report.Anomalies, movers)
	})

	trimmedHealth := health
	if !full {
		trimmedHealth.Items = nil
	}
	report.Health = &trimmedHealth

	if insightsCacheEnabled() {
		if err := cacheSet(key, report, insightsCacheTTL()); err != nil {
			config.LogError(config.GetLogger(), "insights", "Analyze", "cacheSet", key, err)
		}
	}
	logSlowAnalysis(ctx, "fullInsights", started, map[string]any{
		"items":   len(snap.Items),
		"records": len(snap.Records),
	})

	return report, nil
}

// TrendSection computes only the bucketed series and its trend fit.
func (o *Orchestrator) TrendSection(ctx context.Context, businessId string, params Params) ([]BucketTotal, *TrendResult, error) {
	params = params.normalized()
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, nil, err
	}
	series := BucketTotals(snap, params.Granularity)
	values := make([]decimal.Decimal, 0, len(series))
	for _, bucket := range series {
		values = append(values, bucket.Cost)
	}
	if trend, ok := AnalyzeTrend(values); ok {
		return series, &trend, nil
	}
	return series, nil, nil
}

// BinVarianceSection computes only the half-month variance report.
func (o *Orchestrator) BinVarianceSection(ctx context.Context, businessId string, params Params) ([]VarianceResult, error) {
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	return BinVarianceReport(snap), nil
}

// AnomalySection computes only the per-item anomaly report.
func (o *Orchestrator) AnomalySection(ctx context.Context, businessId string, params Params) ([]ItemAnomaly, error) {
	params = params.normalized()
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	return DetectAnomalies(snap, params.MinConfidence), nil
}

// SeasonalitySection computes only the month-of-year seasonality report.
// The result is nil when the window spans fewer than six distinct months.
func (o *Orchestrator) SeasonalitySection(ctx context.Context, businessId string, params Params) (*SeasonalityResult, error) {
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	if seasonality, ok := DetectSeasonality(snap); ok {
		return &seasonality, nil
	}
	return nil, nil
}

// ForecastAccuracySection scores only forecast accuracy.
func (o *Orchestrator) ForecastAccuracySection(ctx context.Context, businessId string, params Params) (*ForecastAccuracy, error) {
	params = params.normalized()
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	accuracy := ScoreForecastAccuracy(snap, params.Depth == DepthFull)
	return &accuracy, nil
}

// HealthSection scores only inventory health.
func (o *Orchestrator) HealthSection(ctx context.Context, businessId string, params Params) (*HealthScore, error) {
	params = params.normalized()
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	health := ScoreHealth(snap, params.Depth == DepthFull)
	return &health, nil
}

// TopMoversSection ranks only the top movers.
func (o *Orchestrator) TopMoversSection(ctx context.Context, businessId string, params Params) (*TopMovers, error) {
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	movers := RankTopMovers(snap, moversDefaultTopN)
	return &movers, nil
}

// RecommendationSection synthesizes only the prioritized recommendations.
func (o *Orchestrator) RecommendationSection(ctx context.Context, businessId string, params Params) ([]Recommendation, error) {
	params = params.normalized()
	snap, err := o.Snapshot(ctx, businessId, params)
	if err != nil {
		return nil, err
	}
	health := ScoreHealth(snap, true)
	anomalies := DetectAnomalies(snap, params.MinConfidence)
	movers := RankTopMovers(snap, moversDefaultTopN)
	return SynthesizeRecommendations(snap, health, anomalies, movers), nil
}

func runSection(ctx context.Context, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := config.GetLogger()
			config.LogError(logger, "insights", "Analyze", "section "+name, nil, fmt.Errorf("panic: %v", r))
		}
	}()
	fn()
}
