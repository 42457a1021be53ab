package ingest

import (
	"testing"
	"time"
)

func TestMapColumns_CommonSpellings(t *testing.T) {
	cols, err := mapColumns([]string{"SKU", "Item Name", "Consumption Date", "Quantity Used", "Opening Stock"})
	if err != nil {
		t.Fatalf("mapColumns error: %v", err)
	}
	if cols.sku != 0 || cols.name != 1 || cols.date != 2 || cols.consumed != 3 || cols.opening != 4 {
		t.Fatalf("unexpected mapping: %+v", cols)
	}
	if cols.received != -1 || cols.closing != -1 {
		t.Fatalf("absent columns must stay -1: %+v", cols)
	}
}

func TestMapColumns_MissingRequired(t *testing.T) {
	if _, err := mapColumns([]string{"Item", "Quantity"}); err == nil {
		t.Fatal("missing date column must error")
	}
	if _, err := mapColumns([]string{"Date", "Quantity"}); err == nil {
		t.Fatal("missing sku/name column must error")
	}
	if _, err := mapColumns([]string{"Item", "Date"}); err == nil {
		t.Fatal("missing consumed column must error")
	}
}

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2024-03-05", "05/03/2024", "2024-03-05 10:30:00"} {
		got, err := parseDate(raw)
		if err != nil {
			t.Fatalf("parseDate(%q) error: %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parseDate(%q) expected %s, got %s", raw, want, got)
		}
	}
	if _, err := parseDate("not a date"); err == nil {
		t.Fatal("expected error for junk input")
	}
}

func TestCell_OutOfRange(t *testing.T) {
	row := []string{"a", " b "}
	if cell(row, 1) != "b" {
		t.Fatalf("expected trimmed value, got %q", cell(row, 1))
	}
	if cell(row, 5) != "" || cell(row, -1) != "" {
		t.Fatal("out-of-range cells must be empty")
	}
}

func TestParseConsumed(t *testing.T) {
	got, err := parseConsumed("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty cell must be zero usage, got %v err %v", got, err)
	}
	got, err = parseConsumed("7.25")
	if err != nil || got.String() != "7.25" {
		t.Fatalf("unexpected result %v err %v", got, err)
	}
	if _, err = parseConsumed("-5"); err == nil {
		t.Fatal("negative quantity must error")
	}
	if _, err = parseConsumed("x"); err == nil {
		t.Fatal("junk must error")
	}
}

func TestParseOptionalDecimal(t *testing.T) {
	got, err := parseOptionalDecimal("")
	if err != nil || got != nil {
		t.Fatalf("empty cell must be nil, got %v err %v", got, err)
	}
	got, err = parseOptionalDecimal("12.5")
	if err != nil || got == nil || got.String() != "12.5" {
		t.Fatalf("unexpected result %v err %v", got, err)
	}
	if _, err = parseOptionalDecimal("x"); err == nil {
		t.Fatal("junk must error")
	}
}
