package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/conveyor/internal/domain/model"
)

func TestBuildSchedule_FirstInterestAndDecliningBalance(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	schedule := model.BuildSchedule(12, decimal.NewFromInt(120_000), decimal.NewFromInt(12), decimal.NewFromInt(10_000), start)

	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, first.InterestPayment.Equal(decimal.RequireFromString("1200.00")), "got %s", first.InterestPayment)
	assert.True(t, first.DebtPayment.Equal(decimal.NewFromInt(8800)), "got %s", first.DebtPayment)
	assert.True(t, first.TotalPayment.Equal(decimal.NewFromInt(10_000)))
	assert.True(t, first.RemainingDebt.Equal(decimal.NewFromInt(110_000)), "got %s", first.RemainingDebt)

	second := schedule[1]
	assert.True(t, second.InterestPayment.Equal(decimal.NewFromInt(1100)), "got %s", second.InterestPayment)

	for i, entry := range schedule {
		assert.Equal(t, i+1, entry.Number)
		assert.True(t, entry.DebtPayment.Add(entry.InterestPayment).Equal(entry.TotalPayment))
		if i > 0 {
			assert.True(t, entry.RemainingDebt.LessThanOrEqual(schedule[i-1].RemainingDebt),
				"remaining debt must not increase at entry %d", entry.Number)
		}
	}

	// The schedule runs off the corrected total, so it ends at zero here.
	assert.True(t, schedule[11].RemainingDebt.IsZero(), "got %s", schedule[11].RemainingDebt)
}

func TestBuildSchedule_InterestRoundsHalfUp(t *testing.T) {
	// 1000.50 * 1 / 1200 = 0.83375 -> 0.83
	// 1002.00 * 1 / 1200 = 0.835   -> 0.84
	// 1014.00 * 1 / 1200 = 0.845   -> 0.85
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		total    string
		interest string
	}{
		{"1000.50", "0.83"},
		{"1002.00", "0.84"},
		{"1014.00", "0.85"},
	}
	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			schedule := model.BuildSchedule(1, decimal.RequireFromString(tc.total), decimal.NewFromInt(1), decimal.NewFromInt(100), start)
			require.Len(t, schedule, 1)
			assert.Equal(t, tc.interest, schedule[0].InterestPayment.StringFixed(2))
		})
	}
}

func TestBuildSchedule_FinalBalanceNotForced(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// monthly * term overshoots total by 8
	schedule := model.BuildSchedule(12, decimal.NewFromInt(115_000), decimal.NewFromInt(15), decimal.NewFromInt(9584), start)

	require.Len(t, schedule, 12)
	assert.True(t, schedule[11].RemainingDebt.Equal(decimal.NewFromInt(-8)), "got %s", schedule[11].RemainingDebt)
}

func TestBuildSchedule_DueDatesClampToMonthEnd(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	schedule := model.BuildSchedule(3, decimal.NewFromInt(3000), decimal.Zero, decimal.NewFromInt(1000), start)

	require.Len(t, schedule, 3)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), schedule[2].DueDate)
	assert.True(t, schedule[0].InterestPayment.IsZero())
}

func TestBuildSchedule_NonPositiveTerm(t *testing.T) {
	assert.Nil(t, model.BuildSchedule(0, decimal.NewFromInt(1000), decimal.NewFromInt(10), decimal.NewFromInt(100), time.Now()))
}
