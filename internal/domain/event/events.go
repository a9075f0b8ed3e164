package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeOffersCalculated = "conveyor.application.offers_calculated"
	TypeCreditCalculated = "conveyor.credit.calculated"
	TypeCreditRefused    = "conveyor.credit.refused"

	aggregateApplication = "LoanApplication"
	aggregateCredit      = "Credit"
)

// ---------------------------------------------------------------------------
// Loan Application Events
// ---------------------------------------------------------------------------

// OffersCalculated is raised when a new application receives its four offers.
type OffersCalculated struct {
	events.BaseEvent
	RequestedAmount decimal.Decimal   `json:"requested_amount"`
	Rates           []decimal.Decimal `json:"rates"`
	Term            int               `json:"term"`
}

func NewOffersCalculated(
	applicationID uuid.UUID,
	amount decimal.Decimal, term int,
	rates []decimal.Decimal, now time.Time,
) OffersCalculated {
	return OffersCalculated{
		BaseEvent:       events.NewBaseEvent(TypeOffersCalculated, applicationID, aggregateApplication, now),
		RequestedAmount: amount,
		Term:            term,
		Rates:           rates,
	}
}

// CreditRefused is raised when underwriting declines an applicant. The
// aggregate is the application when the request referenced one.
type CreditRefused struct {
	events.BaseEvent
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}

func NewCreditRefused(applicationID uuid.UUID, rule, reason string, now time.Time) CreditRefused {
	return CreditRefused{
		BaseEvent: events.NewBaseEvent(TypeCreditRefused, applicationID, aggregateApplication, now),
		Rule:      rule,
		Reason:    reason,
	}
}

// ---------------------------------------------------------------------------
// Credit Events
// ---------------------------------------------------------------------------

// CreditCalculated is raised when underwriting produces a credit.
type CreditCalculated struct {
	events.BaseEvent
	ApplicationID  *uuid.UUID      `json:"application_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Rate           decimal.Decimal `json:"rate"`
	PSK            decimal.Decimal `json:"psk"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Term           int             `json:"term"`
}

func NewCreditCalculated(
	creditID uuid.UUID, applicationID *uuid.UUID,
	amount, rate, psk, monthly decimal.Decimal,
	term int, now time.Time,
) CreditCalculated {
	return CreditCalculated{
		BaseEvent:      events.NewBaseEvent(TypeCreditCalculated, creditID, aggregateCredit, now),
		ApplicationID:  applicationID,
		Amount:         amount,
		Rate:           rate,
		PSK:            psk,
		MonthlyPayment: monthly,
		Term:           term,
	}
}
