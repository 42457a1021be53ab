package handlers

import (
	"context"
	"net/http"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
	"bitbucket.org/mmdatafocus/stocks_backend/models/insights"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("stocks-insights")

// InsightsHandler exposes the analysis engine over REST. Every endpoint
// reads the business id from the authenticated request context and the
// analysis knobs from the query string.
type InsightsHandler struct {
	engine *insights.Orchestrator
}

func NewInsightsHandler(engine *insights.Orchestrator) *InsightsHandler {
	return &InsightsHandler{engine: engine}
}

type insightsQuery struct {
	StartDate     string  `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string  `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Period        string  `form:"period" binding:"omitempty,oneof=this_month last_month"`
	CategoryId    int     `form:"category_id" binding:"omitempty,gte=1"`
	Granularity   string  `form:"granularity" binding:"omitempty,oneof=daily weekly monthly"`
	MinConfidence float64 `form:"min_confidence" binding:"omitempty,gt=0,lte=1"`
	Depth         string  `form:"depth" binding:"omitempty,oneof=summary full"`
}

func (q insightsQuery) toParams() insights.Params {
	params := insights.Params{
		CategoryId:    q.CategoryId,
		Granularity:   insights.Granularity(q.Granularity),
		MinConfidence: q.MinConfidence,
		Depth:         q.Depth,
	}
	// A named period is a shorthand for the calendar-month bounds; explicit
	// dates win over it.
	switch q.Period {
	case "this_month":
		start, end := utils.GetThisMonthRange()
		params.StartDate, params.EndDate = &start, &end
	case "last_month":
		start, end := utils.GetPreviousMonthRange()
		params.StartDate, params.EndDate = &start, &end
	}
	if q.StartDate != "" {
		if t, err := time.Parse("2006-01-02", q.StartDate); err == nil {
			params.StartDate = &t
		}
	}
	if q.EndDate != "" {
		if t, err := time.Parse("2006-01-02", q.EndDate); err == nil {
			params.EndDate = &t
		}
	}
	return params
}

func bindInsightsQuery(c *gin.Context) (insights.Params, string, bool) {
	var query insightsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return insights.Params{}, "", false
	}
	businessId, ok := utils.GetBusinessIdFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return insights.Params{}, "", false
	}
	return query.toParams(), businessId, true
}

func serveSection[T any](c *gin.Context, funcName string, fetch func(ctx context.Context, params insights.Params, businessId string) (T, error)) {
	params, businessId, ok := bindInsightsQuery(c)
	if !ok {
		return
	}
	ctx, span := tracer.Start(c.Request.Context(), "insights."+funcName)
	defer span.End()
	result, err := fetch(ctx, params, businessId)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", funcName, "analyze", businessId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// FullReport handles GET /api/insights.
func (h *InsightsHandler) FullReport(c *gin.Context) {
	serveSection(c, "FullReport", func(ctx context.Context, params insights.Params, businessId string) (*insights.InsightsReport, error) {
		return h.engine.Analyze(ctx, businessId, params)
	})
}

// Trends handles GET /api/insights/trends.
func (h *InsightsHandler) Trends(c *gin.Context) {
	params, businessId, ok := bindInsightsQuery(c)
	if !ok {
		return
	}
	ctx, span := tracer.Start(c.Request.Context(), "insights.Trends")
	defer span.End()
	series, trend, err := h.engine.TrendSection(ctx, businessId, params)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "Trends", "analyze", businessId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series, "trend": trend})
}

// BinVariance handles GET /api/insights/bin-variance.
func (h *InsightsHandler) BinVariance(c *gin.Context) {
	serveSection(c, "BinVariance", func(ctx context.Context, params insights.Params, businessId string) ([]insights.VarianceResult, error) {
		return h.engine.BinVarianceSection(ctx, businessId, params)
	})
}

// Anomalies handles GET /api/insights/anomalies.
func (h *InsightsHandler) Anomalies(c *gin.Context) {
	serveSection(c, "Anomalies", func(ctx context.Context, params insights.Params, businessId string) ([]insights.ItemAnomaly, error) {
		return h.engine.AnomalySection(ctx, businessId, params)
	})
}

// Seasonality handles GET /api/insights/seasonality.
func (h *InsightsHandler) Seasonality(c *gin.Context) {
	serveSection(c, "Seasonality", func(ctx context.Context, params insights.Params, businessId string) (*insights.SeasonalityResult, error) {
		return h.engine.SeasonalitySection(ctx, businessId, params)
	})
}

// ForecastAccuracy handles GET /api/insights/forecast-accuracy.
func (h *InsightsHandler) ForecastAccuracy(c *gin.Context) {
	serveSection(c, "ForecastAccuracy", func(ctx context.Context, params insights.Params, businessId string) (*insights.ForecastAccuracy, error) {
		return h.engine.ForecastAccuracySection(ctx, businessId, params)
	})
}

// Health handles GET /api/insights/health.
func (h *InsightsHandler) Health(c *gin.Context) {
	serveSection(c, "Health", func(ctx context.Context, params insights.Params, businessId string) (*insights.HealthScore, error) {
		return h.engine.HealthSection(ctx, businessId, params)
	})
}

// TopMovers handles GET /api/insights/top-movers.
func (h *InsightsHandler) TopMovers(c *gin.Context) {
	serveSection(c, "TopMovers", func(ctx context.Context, params insights.Params, businessId string) (*insights.TopMovers, error) {
		return h.engine.TopMoversSection(ctx, businessId, params)
	})
}

// Recommendations handles GET /api/insights/recommendations.
func (h *InsightsHandler) Recommendations(c *gin.Context) {
	serveSection(c, "Recommendations", func(ctx context.Context, params insights.Params, businessId string) ([]insights.Recommendation, error) {
		return h.engine.RecommendationSection(ctx, businessId, params)
	})
}
