package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/port"
	"github.com/bibbank/conveyor/internal/domain/service"
)

var tracer = otel.Tracer("github.com/bibbank/conveyor/internal/application/usecase")

// CalculateOffersUseCase prices the four offers for a pre-scoring request
// and opens a loan application holding them.
type CalculateOffersUseCase struct {
	conveyor  *service.Conveyor
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	cache     port.OfferCache
	recorder  port.DecisionRecorder
	settings  Settings
}

// NewCalculateOffersUseCase wires dependencies. cache may be nil.
func NewCalculateOffersUseCase(
	conveyor *service.Conveyor,
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	cache port.OfferCache,
	recorder port.DecisionRecorder,
	settings Settings,
) *CalculateOffersUseCase {
	return &CalculateOffersUseCase{
		conveyor:  conveyor,
		appRepo:   appRepo,
		publisher: publisher,
		cache:     cache,
		recorder:  recorder,
		settings:  settings.withDefaults(),
	}
}

// Execute validates the request, prices the offers and persists the
// application they belong to.
func (uc *CalculateOffersUseCase) Execute(
	ctx context.Context,
	req dto.OffersRequest,
) (dto.OffersResponse, error) {
	ctx, span := tracer.Start(ctx, "CalculateOffers")
	defer span.End()

	log := uc.settings.Logger
	now := uc.settings.Clock()

	// 1. Validate.
	if err := dto.Validate(req); err != nil {
		return dto.OffersResponse{}, err
	}
	if err := dto.ValidateTerm(req.Term, uc.settings.MaxTermMonths); err != nil {
		return dto.OffersResponse{}, err
	}
	birth, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return dto.OffersResponse{}, err
	}
	span.SetAttributes(
		attribute.String("loan.amount", req.Amount.String()),
		attribute.Int("loan.term", req.Term),
	)

	// 2. Try the cache.
	var (
		offers []model.LoanOffer
		cached bool
	)
	if uc.cache != nil {
		offers, cached, err = uc.cache.Get(ctx, req.Amount, req.Term)
		if err != nil {
			log.WarnContext(ctx, "offer cache lookup failed", "error", err)
			cached = false
		}
	}

	// 3. Price the offers.
	if !cached {
		offers, err = uc.conveyor.GenerateOffers(model.ApplicantProfile{Amount: req.Amount, Term: req.Term})
		if err != nil {
			return dto.OffersResponse{}, fmt.Errorf("generate offers: %w", err)
		}
	}

	// 4. Open the application.
	app, err := model.NewLoanApplication(model.ClientInfo{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		Email:          req.Email,
		PassportSeries: req.PassportSeries,
		PassportNumber: req.PassportNumber,
	}, req.Amount, req.Term, birth, offers, now)
	if err != nil {
		return dto.OffersResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 5. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.OffersResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.OffersResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 7. Fill the cache.
	if uc.cache != nil && !cached {
		if err := uc.cache.Put(ctx, req.Amount, req.Term, offers); err != nil {
			log.WarnContext(ctx, "offer cache store failed", "error", err)
		}
	}

	uc.recorder.OffersCalculated(ctx, cached)
	log.InfoContext(ctx, "offers calculated",
		"application_id", app.ID().String(),
		"amount", req.Amount.String(),
		"term", req.Term,
		"cached", cached,
	)

	id := app.ID().String()
	return dto.OffersResponse{
		ApplicationID: id,
		Offers:        toOfferResponses(id, offers),
	}, nil
}
