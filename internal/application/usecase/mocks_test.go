package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/port"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.LoanApplication, error)
	savedApps    []model.LoanApplication
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for i := len(m.savedApps) - 1; i >= 0; i-- {
		if m.savedApps[i].ID() == id {
			return m.savedApps[i], nil
		}
	}
	return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, port.ErrNotFound)
}

type mockCreditRepository struct {
	saveFunc     func(ctx context.Context, credit model.Credit) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.Credit, error)
	savedCredits []model.Credit
}

func (m *mockCreditRepository) Save(ctx context.Context, credit model.Credit) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, credit)
	}
	m.savedCredits = append(m.savedCredits, credit)
	return nil
}

func (m *mockCreditRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Credit, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for _, c := range m.savedCredits {
		if c.ID() == id {
			return c, nil
		}
	}
	return model.Credit{}, fmt.Errorf("credit %s: %w", id, port.ErrNotFound)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockOfferCache struct {
	getFunc func(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error)
	putFunc func(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error
	puts    int
}

func (m *mockOfferCache) Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, amount, term)
	}
	return nil, false, nil
}

func (m *mockOfferCache) Put(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error {
	m.puts++
	if m.putFunc != nil {
		return m.putFunc(ctx, amount, term, offers)
	}
	return nil
}

type mockDecisionRecorder struct {
	mu       sync.Mutex
	offers   []bool
	credits  []decimal.Decimal
	refusals []string
}

func (m *mockDecisionRecorder) OffersCalculated(_ context.Context, cached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, cached)
}

func (m *mockDecisionRecorder) CreditCalculated(_ context.Context, rate decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credits = append(m.credits, rate)
}

func (m *mockDecisionRecorder) CreditRefused(_ context.Context, rule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refusals = append(m.refusals, rule)
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
