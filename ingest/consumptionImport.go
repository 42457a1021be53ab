package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/stocks_backend/models"
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// columnMap resolves spreadsheet headers to record fields. Matching is
// case-insensitive and tolerant of the common header spellings.
type columnMap struct {
	sku      int
	name     int
	date     int
	consumed int
	opening  int
	received int
	closing  int
}

type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "01/02/2006", "2-Jan-06", "2006-01-02 15:04:05"}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func mapColumns(headers []string) (columnMap, error) {
	cols := columnMap{sku: -1, name: -1, date: -1, consumed: -1, opening: -1, received: -1, closing: -1}
	for i, h := range headers {
		switch normalizeHeader(h) {
		case "sku", "item sku":
			cols.sku = i
		case "item", "item name", "name", "product", "product name":
			cols.name = i
		case "date", "consumption date", "consumed date":
			cols.date = i
		case "consumed", "consumed quantity", "consumption", "quantity", "qty", "quantity used":
			cols.consumed = i
		case "opening stock", "opening":
			cols.opening = i
		case "received", "received quantity":
			cols.received = i
		case "closing stock", "closing":
			cols.closing = i
		}
	}
	if cols.date == -1 {
		return cols, errors.New("missing required column: date")
	}
	if cols.consumed == -1 {
		return cols, errors.New("missing required column: consumed quantity")
	}
	if cols.sku == -1 && cols.name == -1 {
		return cols, errors.New("missing required column: sku or item name")
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return utils.TruncateToDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// parseConsumed treats an empty cell as zero usage and refuses negatives,
// mirroring the validation on the single-record create path.
func parseConsumed(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	qty, err := utils.ParseDecimal(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if qty.IsNegative() {
		return decimal.Zero, errors.New("negative value")
	}
	return qty, nil
}

func parseOptionalDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDecimal(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportConsumptionXlsx reads consumption rows from an uploaded workbook and
// bulk-inserts them for the business. Rows that cannot be resolved are
// reported in the summary rather than failing the whole upload; structural
// problems (unreadable sheet, missing columns) fail it.
func ImportConsumptionXlsx(ctx context.Context, businessId string, upload io.Reader) (*ImportSummary, error) {
	lock, err := utils.BusinessLock(ctx, businessId, "consumption-import", "ingest", "ImportConsumptionXlsx")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	f, err := excelize.OpenReader(upload)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("spreadsheet has no data rows")
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	items, err := models.ListItems(ctx, businessId)
	if err != nil {
		return nil, err
	}
	bySku := make(map[string]*models.Item)
	byName := make(map[string]*models.Item)
	for _, item := range items {
		if item.Sku != "" {
			bySku[strings.ToLower(item.Sku)] = item
		}
		byName[strings.ToLower(item.Name)] = item
	}

	summary := &ImportSummary{Skipped: []string{}}
	records := make([]*models.ConsumptionRecord, 0, len(rows)-1)

	for idx, row := range rows[1:] {
		rowNum := idx + 2

		var item *models.Item
		if sku := cell(row, cols.sku); sku != "" {
			item = bySku[strings.ToLower(sku)]
		}
		if item == nil {
			if name := cell(row, cols.name); name != "" {
				item = byName[strings.ToLower(name)]
			}
		}
		if item == nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: unknown item", rowNum))
			continue
		}

		date, err := parseDate(cell(row, cols.date))
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		// An absent quantity means the item was tracked but nothing was used.
		consumed, err := parseConsumed(cell(row, cols.consumed))
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: bad consumed quantity: %v", rowNum, err))
			continue
		}

		opening, err := parseOptionalDecimal(cell(row, cols.opening))
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: bad opening stock: %v", rowNum, err))
			continue
		}
		received, err := parseOptionalDecimal(cell(row, cols.received))
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: bad received quantity: %v", rowNum, err))
			continue
		}
		closing, err := parseOptionalDecimal(cell(row, cols.closing))
		if err != nil {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("row %d: bad closing stock: %v", rowNum, err))
			continue
		}

		records = append(records, &models.ConsumptionRecord{
			BusinessId:       businessId,
			ItemId:           item.ID,
			ConsumptionDate:  date,
			ConsumedQuantity: consumed,
			OpeningStock:     opening,
			ReceivedQuantity: received,
			ClosingStock:     closing,
		})
	}

	if len(records) > 0 {
		if err := models.BulkCreateConsumptionRecords(ctx, records); err != nil {
			return nil, err
		}
	}
	summary.Imported = len(records)
	return summary, nil
}
