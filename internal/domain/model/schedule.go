package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is an immutable value object representing one month of a
// payment schedule.
type ScheduleEntry struct {
	DueDate         time.Time
	TotalPayment    decimal.Decimal
	InterestPayment decimal.Decimal
	DebtPayment     decimal.Decimal
	RemainingDebt   decimal.Decimal
	Number          int
}

// percentMonthsPerYear converts an annual percentage into a monthly fraction.
var percentMonthsPerYear = decimal.NewFromInt(1200)

// BuildSchedule expands a fixed monthly payment into a declining-balance
// schedule of term entries.
//
// Parameters:
//   - term:      number of monthly periods
//   - total:     debt outstanding before the first payment
//   - rate:      annual interest rate in percent (e.g. 12 = 12%)
//   - monthly:   the fixed payment due every month
//   - startDate: entry i is due startDate + i months
//
// Per period:
//
//	interest  = round(remaining * rate / 100 / 12, 2)
//	debt      = monthly - interest
//	remaining = remaining - (debt + interest)
//
// The last entry is emitted as computed; its remaining debt is not forced
// to zero.
func BuildSchedule(
	term int,
	total decimal.Decimal,
	rate decimal.Decimal,
	monthly decimal.Decimal,
	startDate time.Time,
) []ScheduleEntry {
	if term <= 0 {
		return nil
	}

	schedule := make([]ScheduleEntry, 0, term)
	remaining := total

	for n := 1; n <= term; n++ {
		interest := remaining.Mul(rate).Div(percentMonthsPerYear).Round(2)
		debt := monthly.Sub(interest)
		remaining = remaining.Sub(debt.Add(interest))

		schedule = append(schedule, ScheduleEntry{
			Number:          n,
			DueDate:         AddMonths(startDate, n),
			TotalPayment:    monthly,
			InterestPayment: interest,
			DebtPayment:     debt,
			RemainingDebt:   remaining,
		})
	}

	return schedule
}
