package insights

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/utils"
)

// defaultWindowDays is the fallback window when a tenant has no
// consumption data at all.
const defaultWindowDays = 90

// Window is the inclusive [Start, End] date range of one analysis.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive calendar-day length of the window.
func (w Window) Days() int {
	return utils.DaysBetween(w.Start, w.End)
}

// Midpoint splits the window for first-half / second-half comparisons.
// The first half is [Start, Midpoint], the second (Midpoint, End].
func (w Window) Midpoint() time.Time {
	half := w.Days() / 2
	return w.Start.AddDate(0, 0, half-1)
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow determines the analysis period. Explicit bounds win; absent
// bounds are derived from the min/max consumption date of the (optionally
// category-filtered) data; a start predating the earliest data is clamped up
// to it. With no data at all the trailing default window is used.
// ResolveWindow never fails: source errors degrade to the default window.
func ResolveWindow(ctx context.Context, src ConsumptionRecordSource, businessId string, params Params) Window {
	minDate, maxDate, err := src.DateBounds(ctx, businessId, params.CategoryId)
	if err != nil || (minDate == nil && params.StartDate == nil && params.EndDate == nil) {
		start, end := utils.GetLastDaysRange(defaultWindowDays)
		return Window{Start: start, End: end}
	}

	var start, end time.Time

	if params.EndDate != nil {
		end = utils.TruncateToDate(*params.EndDate)
	} else if maxDate != nil {
		end = utils.TruncateToDate(*maxDate)
	} else {
		end = utils.TruncateToDate(time.Now().UTC())
	}

	if params.StartDate != nil {
		start = utils.TruncateToDate(*params.StartDate)
	} else if minDate != nil {
		start = utils.TruncateToDate(*minDate)
	} else {
		start = end.AddDate(0, 0, -(defaultWindowDays - 1))
	}

	// Clamp a caller-supplied start up to the earliest available data.
	if minDate != nil {
		earliest := utils.TruncateToDate(*minDate)
		if start.Before(earliest) {
			start = earliest
		}
	}

	if end.Before(start) {
		end = start
	}

	return Window{Start: start, End: end}
}
