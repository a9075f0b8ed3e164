package model

import (
	"github.com/shopspring/decimal"
)

// RateAdjustment is one signed change to the rate together with the rule
// that produced it.
type RateAdjustment struct {
	Rule  string
	Delta decimal.Decimal
}

// RateQuote is the base rate plus the ordered list of adjustments applied to
// it. The final rate is always their arithmetic sum.
type RateQuote struct {
	base        decimal.Decimal
	adjustments []RateAdjustment
}

// NewRateQuote starts a quote at the given annual percentage rate.
func NewRateQuote(base decimal.Decimal) RateQuote {
	return RateQuote{base: base}
}

// Adjust returns a copy of the quote with one more adjustment appended.
// A zero delta is ignored.
func (q RateQuote) Adjust(rule string, delta decimal.Decimal) RateQuote {
	if delta.IsZero() {
		return q
	}
	next := q
	next.adjustments = make([]RateAdjustment, len(q.adjustments), len(q.adjustments)+1)
	copy(next.adjustments, q.adjustments)
	next.adjustments = append(next.adjustments, RateAdjustment{Rule: rule, Delta: delta})
	return next
}

// Base returns the starting rate.
func (q RateQuote) Base() decimal.Decimal { return q.base }

// Adjustments returns a copy of the applied adjustments in order.
func (q RateQuote) Adjustments() []RateAdjustment {
	out := make([]RateAdjustment, len(q.adjustments))
	copy(out, q.adjustments)
	return out
}

// Value is the base rate plus every adjustment.
func (q RateQuote) Value() decimal.Decimal {
	v := q.base
	for _, a := range q.adjustments {
		v = v.Add(a.Delta)
	}
	return v
}
