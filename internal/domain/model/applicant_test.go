package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/conveyor/internal/domain/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWholeYearsBetween(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"day before birthday", date(2004, 10, 20), date(2024, 10, 19), 19},
		{"on birthday", date(2004, 10, 20), date(2024, 10, 20), 20},
		{"month before birthday", date(1984, 6, 1), date(2024, 5, 31), 39},
		{"leap day birth, non-leap year", date(2000, 2, 29), date(2021, 2, 28), 20},
		{"clock part ignored", date(2000, 1, 1), time.Date(2020, 1, 1, 23, 59, 0, 0, time.UTC), 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.WholeYearsBetween(tc.from, tc.to))
		})
	}
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, date(2024, 2, 29), model.AddMonths(date(2024, 1, 31), 1))
	assert.Equal(t, date(2023, 2, 28), model.AddMonths(date(2023, 1, 31), 1))
	assert.Equal(t, date(2025, 1, 15), model.AddMonths(date(2024, 12, 15), 1))
	assert.Equal(t, date(2026, 8, 31), model.AddMonths(date(2024, 8, 31), 24))
}

func TestApplicantProfile_ValidateLoanTerms(t *testing.T) {
	valid := model.ApplicantProfile{Amount: decimal.NewFromInt(10_000), Term: 6}
	assert.NoError(t, valid.ValidateLoanTerms())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.ErrorIs(t, zeroAmount.ValidateLoanTerms(), model.ErrNonPositiveAmount)

	zeroTerm := valid
	zeroTerm.Term = 0
	assert.ErrorIs(t, zeroTerm.ValidateLoanTerms(), model.ErrNonPositiveTerm)
}

func TestApplicantProfile_WithOptionsCopies(t *testing.T) {
	p := model.ApplicantProfile{Amount: decimal.NewFromInt(10_000), Term: 6}

	q := p.WithOptions(true, true)

	assert.True(t, q.InsuranceEnabled)
	assert.True(t, q.SalaryClient)
	assert.False(t, p.InsuranceEnabled)
	assert.False(t, p.SalaryClient)
}
