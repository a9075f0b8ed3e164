package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/model"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves loan applications.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (model.LoanApplication, error)
}

// CreditRepository persists and retrieves calculated credits.
type CreditRepository interface {
	Save(ctx context.Context, credit model.Credit) error
	FindByID(ctx context.Context, id uuid.UUID) (model.Credit, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Cache and metrics ports
// ---------------------------------------------------------------------------

// OfferCache memoises offer sets by amount and term. Offers depend on
// nothing else, so the pair is a complete key.
type OfferCache interface {
	Get(ctx context.Context, amount decimal.Decimal, term int) ([]model.LoanOffer, bool, error)
	Put(ctx context.Context, amount decimal.Decimal, term int, offers []model.LoanOffer) error
}

// DecisionRecorder counts pricing outcomes.
type DecisionRecorder interface {
	OffersCalculated(ctx context.Context, cached bool)
	CreditCalculated(ctx context.Context, rate decimal.Decimal)
	CreditRefused(ctx context.Context, rule string)
}
