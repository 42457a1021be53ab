package handlers

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/utils"
)

func TestInsightsQueryToParams_Period(t *testing.T) {
	params := insightsQuery{Period: "this_month"}.toParams()
	wantStart, wantEnd := utils.GetThisMonthRange()
	if params.StartDate == nil || !params.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %s, got %v", wantStart, params.StartDate)
	}
	if params.EndDate == nil || !params.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end %s, got %v", wantEnd, params.EndDate)
	}

	params = insightsQuery{Period: "last_month"}.toParams()
	wantStart, wantEnd = utils.GetPreviousMonthRange()
	if params.StartDate == nil || !params.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %s, got %v", wantStart, params.StartDate)
	}
	if params.EndDate == nil || !params.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end %s, got %v", wantEnd, params.EndDate)
	}
}

func TestInsightsQueryToParams_ExplicitDatesWinOverPeriod(t *testing.T) {
	params := insightsQuery{Period: "last_month", StartDate: "2024-03-01", EndDate: "2024-03-15"}.toParams()
	wantStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if params.StartDate == nil || !params.StartDate.Equal(wantStart) {
		t.Fatalf("expected start %s, got %v", wantStart, params.StartDate)
	}
	if params.EndDate == nil || !params.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end %s, got %v", wantEnd, params.EndDate)
	}
}

func TestInsightsQueryToParams_NoDates(t *testing.T) {
	params := insightsQuery{Granularity: "weekly"}.toParams()
	if params.StartDate != nil || params.EndDate != nil {
		t.Fatalf("expected open window, got %v to %v", params.StartDate, params.EndDate)
	}
	if string(params.Granularity) != "weekly" {
		t.Fatalf("expected weekly, got %s", params.Granularity)
	}
}
