package insights

import "github.com/shopspring/decimal"

// Totals is the aggregate of a record subset: null-coalesced quantity sum,
// cost priced per record against that record's item, and record count.
type Totals struct {
	Quantity decimal.Decimal `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Count    int             `json:"count"`
}

// Aggregate sums quantity and cost over the records matching pred.
// A nil pred matches everything. Missing item prices contribute zero cost
// rather than failing the batch.
func (s *Snapshot) Aggregate(pred func(Record) bool) Totals {
	totals := Totals{Quantity: decimal.Zero, Cost: decimal.Zero}
	for _, r := range s.Records {
		if pred != nil && !pred(r) {
			continue
		}
		totals.Quantity = totals.Quantity.Add(r.Quantity)
		totals.Cost = totals.Cost.Add(s.CostOf(r))
		totals.Count++
	}
	return totals
}

// AggregateItem sums one item's in-window records.
func (s *Snapshot) AggregateItem(itemId int) Totals {
	totals := Totals{Quantity: decimal.Zero, Cost: decimal.Zero}
	for _, r := range s.RecordsForItem(itemId) {
		totals.Quantity = totals.Quantity.Add(r.Quantity)
		totals.Cost = totals.Cost.Add(s.CostOf(r))
		totals.Count++
	}
	return totals
}

// SafeDivide is the foundational ratio primitive: a zero denominator yields
// zero instead of failing; otherwise the quotient is rounded half-up to the
// given scale. Every average, percentage and per-unit cost in this package
// routes through it.
func SafeDivide(numerator decimal.Decimal, denominator decimal.Decimal, scale int32) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.DivRound(denominator, scale)
}

// SafeDivideUp divides rounding up to a whole number; used for
// days-of-supply, where a partial day still has to be covered.
func SafeDivideUp(numerator decimal.Decimal, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Ceil()
}

// Percent returns part/whole as a percentage with two decimal places.
func Percent(part decimal.Decimal, whole decimal.Decimal) decimal.Decimal {
	return SafeDivide(part.Mul(decimal.NewFromInt(100)), whole, 2)
}
