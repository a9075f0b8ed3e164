package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// Employment is the applicant's declared employment record.
type Employment struct {
	Status            valueobject.EmploymentStatus
	Position          valueobject.Position
	EmployerINN       string
	Salary            decimal.Decimal
	ExperienceTotal   int // months
	ExperienceCurrent int // months
}

// ApplicantProfile is the immutable set of attributes the pricing engine
// evaluates. Offers only look at Amount and Term.
type ApplicantProfile struct {
	Amount           decimal.Decimal
	Term             int
	BirthDate        time.Time
	Gender           valueobject.Gender
	MaritalStatus    valueobject.MaritalStatus
	Dependents       int
	Employment       Employment
	InsuranceEnabled bool
	SalaryClient     bool
}

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNonPositiveTerm   = errors.New("term must be positive")
)

// ValidateLoanTerms checks the fields every pricing path relies on.
func (p ApplicantProfile) ValidateLoanTerms() error {
	if !p.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if p.Term <= 0 {
		return ErrNonPositiveTerm
	}
	return nil
}

// WithOptions returns a copy of the profile with the given insurance and
// payroll flags.
func (p ApplicantProfile) WithOptions(insurance, salaryClient bool) ApplicantProfile {
	next := p
	next.InsuranceEnabled = insurance
	next.SalaryClient = salaryClient
	return next
}

// AgeOn returns the number of whole years between the birth date and on.
func (p ApplicantProfile) AgeOn(on time.Time) int {
	return WholeYearsBetween(p.BirthDate, on)
}

// WholeYearsBetween counts completed years from "from" to "to"; a birthday
// not yet reached in the final year does not count.
func WholeYearsBetween(from, to time.Time) int {
	from, to = CalendarDate(from), CalendarDate(to)
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// CalendarDate drops the clock part of t and normalises it to UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to a date, clamping to the last day of
// the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	t = CalendarDate(t)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
