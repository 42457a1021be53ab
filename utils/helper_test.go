package utils

import (
	"testing"
	"time"
)

func TestDaysBetween_Inclusive(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := DaysBetween(start, start); got != 1 {
		t.Fatalf("same-day range is 1 day, got %d", got)
	}
	if got := DaysBetween(end, start); got != 0 {
		t.Fatalf("inverted range is 0 days, got %d", got)
	}
}

func TestEndOfMonth(t *testing.T) {
	got := EndOfMonth(time.Date(2024, time.February, 10, 13, 30, 0, 0, time.UTC))
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGetThisMonthRange(t *testing.T) {
	start, end := GetThisMonthRange()
	now := time.Now()
	if start.Year() != now.Year() || start.Month() != now.Month() || start.Day() != 1 {
		t.Fatalf("expected first of current month, got %s", start)
	}
	if !end.Equal(EndOfMonth(start)) {
		t.Fatalf("expected %s, got %s", EndOfMonth(start), end)
	}
}

func TestGetPreviousMonthRange(t *testing.T) {
	start, end := GetPreviousMonthRange()
	thisStart, _ := GetThisMonthRange()
	if !start.AddDate(0, 1, 0).Equal(thisStart) {
		t.Fatalf("expected month before %s, got %s", thisStart, start)
	}
	if start.Day() != 1 || !end.Equal(EndOfMonth(start)) {
		t.Fatalf("expected full calendar month, got %s to %s", start, end)
	}
}

func TestTruncateToDate(t *testing.T) {
	got := TruncateToDate(time.Date(2024, time.March, 5, 23, 59, 59, 500, time.UTC))
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGetLastDaysRange(t *testing.T) {
	start, end := GetLastDaysRange(90)
	if got := DaysBetween(start, end); got != 90 {
		t.Fatalf("expected a 90-day range, got %d", got)
	}
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"20000", "20000", false},
		{"1,234.50", "1234.5", false},
		{"  12  ", "12", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDecimal(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDecimal(%q) error: %v", tc.in, err)
		}
		if got.String() != tc.expected {
			t.Fatalf("ParseDecimal(%q) expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{1, 2, 2, 3, 1})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected result %v", got)
	}
}
