package service

import (
	"github.com/shopspring/decimal"
)

var percentPerYear = decimal.NewFromInt(1200) // 100% * 12 months

// PriceLoan computes the total repayable amount and the monthly payment.
//
//	principal = amount (+ premium when insurance is enabled)
//	total     = principal + principal * rate/100 * term/12
//	monthly   = ceil(total / term)
//
// total is not rounded; use CorrectTotal on the underwriting path.
func PriceLoan(
	amount decimal.Decimal,
	term int,
	rate decimal.Decimal,
	insuranceEnabled bool,
	premium decimal.Decimal,
) (total, monthly decimal.Decimal) {
	principal := amount
	if insuranceEnabled {
		principal = principal.Add(premium)
	}
	n := decimal.NewFromInt(int64(term))

	total = principal.Add(principal.Mul(rate).Mul(n).Div(percentPerYear))
	monthly = total.Div(n).Ceil()
	return total, monthly
}

// CorrectTotal replaces the total with what the customer actually pays.
func CorrectTotal(monthly decimal.Decimal, term int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(term)))
}

// PSK is the effective annual cost of the credit in percent, relative to the
// requested amount and rounded half-up to two places.
//
//	psk = ((total / amount) - 1) / (term / 12) * 100
func PSK(amount, total decimal.Decimal, term int) decimal.Decimal {
	n := decimal.NewFromInt(int64(term))
	// (total-amount) * 1200 / (amount*term) keeps one division
	return total.Sub(amount).Mul(percentPerYear).Div(amount.Mul(n)).Round(2)
}
