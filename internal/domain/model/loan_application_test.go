package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

func sampleOffers() []model.LoanOffer {
	return []model.LoanOffer{
		{RequestedAmount: decimal.NewFromInt(100_000), Term: 12, Rate: decimal.NewFromInt(17)},
		{RequestedAmount: decimal.NewFromInt(100_000), Term: 12, Rate: decimal.NewFromInt(12), InsuranceEnabled: true, SalaryClient: true},
	}
}

func newApplication(t *testing.T, now time.Time) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		model.ClientInfo{FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com"},
		decimal.NewFromInt(100_000), 12, date(1984, 5, 1), sampleOffers(), now,
	)
	require.NoError(t, err)
	return app
}

func TestNewLoanApplication(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates in PREAPPROVAL with offers event", func(t *testing.T) {
		app := newApplication(t, now)

		assert.NotEqual(t, uuid.Nil, app.ID())
		assert.Equal(t, valueobject.ApplicationStatusPreapproval, app.Status())
		assert.Equal(t, 1, app.Version())
		assert.Len(t, app.Offers(), 2)
		require.Len(t, app.StatusHistory(), 1)
		assert.Equal(t, now, app.StatusHistory()[0].ChangedAt)

		require.Len(t, app.DomainEvents(), 1)
		evt, ok := app.DomainEvents()[0].(event.OffersCalculated)
		require.True(t, ok)
		assert.Equal(t, event.TypeOffersCalculated, evt.EventType())
		assert.Equal(t, app.ID(), evt.AggregateID())
		assert.Len(t, evt.Rates, 2)
	})

	t.Run("rejects missing offers", func(t *testing.T) {
		_, err := model.NewLoanApplication(model.ClientInfo{}, decimal.NewFromInt(1), 12, date(1990, 1, 1), nil, now)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := model.NewLoanApplication(model.ClientInfo{}, decimal.Zero, 12, date(1990, 1, 1), sampleOffers(), now)
		assert.ErrorIs(t, err, model.ErrNonPositiveAmount)
	})
}

func TestLoanApplication_Transitions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	t.Run("approve links credit and records history", func(t *testing.T) {
		app := newApplication(t, now).ClearEvents()
		creditID := uuid.New()

		approved, err := app.Approve(creditID, later)
		require.NoError(t, err)

		assert.Equal(t, valueobject.ApplicationStatusApproved, approved.Status())
		require.NotNil(t, approved.CreditID())
		assert.Equal(t, creditID, *approved.CreditID())
		assert.Len(t, approved.StatusHistory(), 2)
		assert.Equal(t, later, approved.UpdatedAt())

		// original copy untouched
		assert.Equal(t, valueobject.ApplicationStatusPreapproval, app.Status())
		assert.Len(t, app.StatusHistory(), 1)
	})

	t.Run("deny emits refusal event", func(t *testing.T) {
		app := newApplication(t, now).ClearEvents()

		denied, err := app.Deny("employment_status", "Loan Denied", later)
		require.NoError(t, err)

		assert.Equal(t, valueobject.ApplicationStatusDenied, denied.Status())
		assert.Equal(t, "Loan Denied", denied.RefusalReason())
		require.Len(t, denied.DomainEvents(), 1)
		evt, ok := denied.DomainEvents()[0].(event.CreditRefused)
		require.True(t, ok)
		assert.Equal(t, "employment_status", evt.Rule)
		assert.Empty(t, app.DomainEvents())
	})

	t.Run("terminal statuses reject further transitions", func(t *testing.T) {
		app := newApplication(t, now)
		assert.True(t, app.AwaitingDecision())
		approved, err := app.Approve(uuid.New(), later)
		require.NoError(t, err)
		assert.False(t, approved.AwaitingDecision())

		_, err = approved.Deny("x", "Loan Denied", later)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		_, err = approved.Approve(uuid.New(), later)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestNewCredit(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	appID := uuid.New()
	decision := model.LoanDecision{
		Amount:         decimal.NewFromInt(100_000),
		Term:           12,
		Rate:           decimal.NewFromInt(15),
		TotalAmount:    decimal.NewFromInt(115_008),
		MonthlyPayment: decimal.NewFromInt(9584),
		PSK:            decimal.RequireFromString("15.01"),
		Schedule:       model.BuildSchedule(12, decimal.NewFromInt(115_008), decimal.NewFromInt(15), decimal.NewFromInt(9584), now),
	}

	credit := model.NewCredit(decision, &appID, now)

	assert.NotEqual(t, uuid.Nil, credit.ID())
	assert.Equal(t, valueobject.CreditStatusCalculated, credit.Status())
	assert.Len(t, credit.Schedule(), 12)
	assert.True(t, credit.PSK().Equal(decimal.RequireFromString("15.01")))
	require.Len(t, credit.DomainEvents(), 1)
	evt, ok := credit.DomainEvents()[0].(event.CreditCalculated)
	require.True(t, ok)
	assert.Equal(t, credit.ID(), evt.AggregateID())
	require.NotNil(t, evt.ApplicationID)
	assert.Equal(t, appID, *evt.ApplicationID)

	assert.Empty(t, credit.ClearEvents().DomainEvents())
}
