package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Credit aggregate root
// ---------------------------------------------------------------------------

// Credit is the persisted result of a successful underwriting run.
type Credit struct {
	id               uuid.UUID
	applicationID    *uuid.UUID
	amount           decimal.Decimal
	totalAmount      decimal.Decimal
	monthlyPayment   decimal.Decimal
	rate             decimal.Decimal
	psk              decimal.Decimal
	term             int
	insuranceEnabled bool
	salaryClient     bool
	schedule         []ScheduleEntry
	status           valueobject.CreditStatus
	createdAt        time.Time
	domainEvents     []event.DomainEvent
}

// NewCredit creates a CALCULATED credit from an underwriting decision and
// emits CreditCalculated. applicationID may be nil.
func NewCredit(d LoanDecision, applicationID *uuid.UUID, now time.Time) Credit {
	id := uuid.New()
	c := Credit{
		id:               id,
		applicationID:    applicationID,
		amount:           d.Amount,
		totalAmount:      d.TotalAmount,
		monthlyPayment:   d.MonthlyPayment,
		rate:             d.Rate,
		psk:              d.PSK,
		term:             d.Term,
		insuranceEnabled: d.InsuranceEnabled,
		salaryClient:     d.SalaryClient,
		schedule:         append([]ScheduleEntry(nil), d.Schedule...),
		status:           valueobject.CreditStatusCalculated,
		createdAt:        now,
	}
	c.domainEvents = append(c.domainEvents, event.NewCreditCalculated(
		id, applicationID, d.Amount, d.Rate, d.PSK, d.MonthlyPayment, d.Term, now,
	))
	return c
}

// ReconstructCredit rebuilds a credit from persistence without side-effects.
func ReconstructCredit(
	id uuid.UUID,
	applicationID *uuid.UUID,
	amount, totalAmount, monthlyPayment, rate, psk decimal.Decimal,
	term int,
	insuranceEnabled, salaryClient bool,
	schedule []ScheduleEntry,
	status valueobject.CreditStatus,
	createdAt time.Time,
) Credit {
	return Credit{
		id:               id,
		applicationID:    applicationID,
		amount:           amount,
		totalAmount:      totalAmount,
		monthlyPayment:   monthlyPayment,
		rate:             rate,
		psk:              psk,
		term:             term,
		insuranceEnabled: insuranceEnabled,
		salaryClient:     salaryClient,
		schedule:         schedule,
		status:           status,
		createdAt:        createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Credit) ID() uuid.UUID                     { return c.id }
func (c Credit) ApplicationID() *uuid.UUID         { return c.applicationID }
func (c Credit) Amount() decimal.Decimal           { return c.amount }
func (c Credit) TotalAmount() decimal.Decimal      { return c.totalAmount }
func (c Credit) MonthlyPayment() decimal.Decimal   { return c.monthlyPayment }
func (c Credit) Rate() decimal.Decimal             { return c.rate }
func (c Credit) PSK() decimal.Decimal              { return c.psk }
func (c Credit) Term() int                         { return c.term }
func (c Credit) InsuranceEnabled() bool            { return c.insuranceEnabled }
func (c Credit) SalaryClient() bool                { return c.salaryClient }
func (c Credit) Schedule() []ScheduleEntry         { return append([]ScheduleEntry(nil), c.schedule...) }
func (c Credit) Status() valueobject.CreditStatus  { return c.status }
func (c Credit) CreatedAt() time.Time              { return c.createdAt }
func (c Credit) DomainEvents() []event.DomainEvent { return c.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (c Credit) ClearEvents() Credit {
	next := c
	next.domainEvents = nil
	return next
}
