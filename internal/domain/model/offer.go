package model

import (
	"github.com/shopspring/decimal"
)

// LoanOffer is an illustrative quote for one insurance/payroll combination.
type LoanOffer struct {
	RequestedAmount  decimal.Decimal
	TotalAmount      decimal.Decimal
	MonthlyPayment   decimal.Decimal
	Rate             decimal.Decimal
	Term             int
	InsuranceEnabled bool
	SalaryClient     bool
}

// LoanDecision is the outcome of a successful underwriting run.
type LoanDecision struct {
	Amount           decimal.Decimal
	TotalAmount      decimal.Decimal
	MonthlyPayment   decimal.Decimal
	Rate             decimal.Decimal
	PSK              decimal.Decimal
	Quote            RateQuote
	Schedule         []ScheduleEntry
	Term             int
	InsuranceEnabled bool
	SalaryClient     bool
}
