package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// ClientInfo is the identifying part of an application.
type ClientInfo struct {
	FirstName      string
	LastName       string
	MiddleName     string
	Email          string
	PassportSeries string
	PassportNumber string
}

// StatusChange records one entry in the application's status history.
type StatusChange struct {
	Status    valueobject.ApplicationStatus
	ChangedAt time.Time
}

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
type LoanApplication struct {
	id              uuid.UUID
	client          ClientInfo
	requestedAmount decimal.Decimal
	term            int
	birthDate       time.Time
	offers          []LoanOffer
	status          valueobject.ApplicationStatus
	statusHistory   []StatusChange
	creditID        *uuid.UUID
	refusalReason   string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates an application in PREAPPROVAL status holding the
// offers that were calculated for it.
func NewLoanApplication(
	client ClientInfo,
	requestedAmount decimal.Decimal,
	term int,
	birthDate time.Time,
	offers []LoanOffer,
	now time.Time,
) (LoanApplication, error) {
	if !requestedAmount.IsPositive() {
		return LoanApplication{}, ErrNonPositiveAmount
	}
	if term <= 0 {
		return LoanApplication{}, ErrNonPositiveTerm
	}
	if len(offers) == 0 {
		return LoanApplication{}, errors.New("at least one offer is required")
	}

	id := uuid.New()
	app := LoanApplication{
		id:              id,
		client:          client,
		requestedAmount: requestedAmount,
		term:            term,
		birthDate:       birthDate,
		offers:          append([]LoanOffer(nil), offers...),
		status:          valueobject.ApplicationStatusPreapproval,
		statusHistory:   []StatusChange{{Status: valueobject.ApplicationStatusPreapproval, ChangedAt: now}},
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	rates := make([]decimal.Decimal, len(offers))
	for i, o := range offers {
		rates[i] = o.Rate
	}
	app.domainEvents = append(app.domainEvents, event.NewOffersCalculated(id, requestedAmount, term, rates, now))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanApplication(
	id uuid.UUID,
	client ClientInfo,
	requestedAmount decimal.Decimal,
	term int,
	birthDate time.Time,
	offers []LoanOffer,
	status valueobject.ApplicationStatus,
	statusHistory []StatusChange,
	creditID *uuid.UUID,
	refusalReason string,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:              id,
		client:          client,
		requestedAmount: requestedAmount,
		term:            term,
		birthDate:       birthDate,
		offers:          offers,
		status:          status,
		statusHistory:   statusHistory,
		creditID:        creditID,
		refusalReason:   refusalReason,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// AwaitingDecision reports whether the application can still be approved or
// denied.
func (a LoanApplication) AwaitingDecision() bool {
	return a.status.Equal(valueobject.ApplicationStatusPreapproval)
}

// Approve transitions PREAPPROVAL -> CC_APPROVED and links the calculated credit.
func (a LoanApplication) Approve(creditID uuid.UUID, now time.Time) (LoanApplication, error) {
	if !a.AwaitingDecision() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a.withStatus(valueobject.ApplicationStatusApproved, now)
	next.creditID = &creditID
	return next, nil
}

// Deny transitions PREAPPROVAL -> CC_DENIED and emits CreditRefused.
func (a LoanApplication) Deny(rule, reason string, now time.Time) (LoanApplication, error) {
	if !a.AwaitingDecision() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a.withStatus(valueobject.ApplicationStatusDenied, now)
	next.refusalReason = reason
	next.domainEvents = append(next.domainEvents, event.NewCreditRefused(a.id, rule, reason, now))
	return next, nil
}

func (a LoanApplication) withStatus(status valueobject.ApplicationStatus, now time.Time) LoanApplication {
	next := a
	next.status = status
	next.updatedAt = now
	next.statusHistory = make([]StatusChange, len(a.statusHistory), len(a.statusHistory)+1)
	copy(next.statusHistory, a.statusHistory)
	next.statusHistory = append(next.statusHistory, StatusChange{Status: status, ChangedAt: now})
	next.domainEvents = copyEvents(a.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() uuid.UUID                         { return a.id }
func (a LoanApplication) Client() ClientInfo                    { return a.client }
func (a LoanApplication) RequestedAmount() decimal.Decimal      { return a.requestedAmount }
func (a LoanApplication) Term() int                             { return a.term }
func (a LoanApplication) BirthDate() time.Time                  { return a.birthDate }
func (a LoanApplication) Offers() []LoanOffer                   { return append([]LoanOffer(nil), a.offers...) }
func (a LoanApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a LoanApplication) StatusHistory() []StatusChange {
	return append([]StatusChange(nil), a.statusHistory...)
}
func (a LoanApplication) CreditID() *uuid.UUID              { return a.creditID }
func (a LoanApplication) RefusalReason() string             { return a.refusalReason }
func (a LoanApplication) Version() int                      { return a.version }
func (a LoanApplication) CreatedAt() time.Time              { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time              { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
