package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/port"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// CalculateCreditUseCase underwrites a scoring request and, when approved,
// persists the resulting credit with its payment schedule.
type CalculateCreditUseCase struct {
	conveyor   *service.Conveyor
	appRepo    port.ApplicationRepository
	creditRepo port.CreditRepository
	publisher  port.EventPublisher
	recorder   port.DecisionRecorder
	settings   Settings
}

// NewCalculateCreditUseCase wires dependencies.
func NewCalculateCreditUseCase(
	conveyor *service.Conveyor,
	appRepo port.ApplicationRepository,
	creditRepo port.CreditRepository,
	publisher port.EventPublisher,
	recorder port.DecisionRecorder,
	settings Settings,
) *CalculateCreditUseCase {
	return &CalculateCreditUseCase{
		conveyor:   conveyor,
		appRepo:    appRepo,
		creditRepo: creditRepo,
		publisher:  publisher,
		recorder:   recorder,
		settings:   settings.withDefaults(),
	}
}

// Execute runs underwriting. A refusal is returned as an error matching
// service.ErrLoanRefused after the refusal has been recorded.
func (uc *CalculateCreditUseCase) Execute(
	ctx context.Context,
	req dto.CreditRequest,
) (dto.CreditResponse, error) {
	ctx, span := tracer.Start(ctx, "CalculateCredit")
	defer span.End()

	log := uc.settings.Logger
	now := uc.settings.Clock()

	// 1. Validate and build the profile.
	if err := dto.Validate(req); err != nil {
		return dto.CreditResponse{}, err
	}
	if err := dto.ValidateTerm(req.Term, uc.settings.MaxTermMonths); err != nil {
		return dto.CreditResponse{}, err
	}
	profile, err := toProfile(req)
	if err != nil {
		return dto.CreditResponse{}, err
	}

	// 2. Load the referenced application, if any.
	var app *model.LoanApplication
	if req.ApplicationID != "" {
		appID, err := parseID("application_id", req.ApplicationID)
		if err != nil {
			return dto.CreditResponse{}, err
		}
		found, err := uc.appRepo.FindByID(ctx, appID)
		if err != nil {
			return dto.CreditResponse{}, fmt.Errorf("find application: %w", err)
		}
		if !found.AwaitingDecision() {
			return dto.CreditResponse{}, fmt.Errorf("application %s is %s: %w",
				appID, found.Status(), valueobject.ErrInvalidStatusTransition)
		}
		app = &found
		span.SetAttributes(attribute.String("application.id", appID.String()))
	}

	// 3. Underwrite.
	decision, err := uc.conveyor.Underwrite(profile, now)
	if err != nil {
		var refusal *service.RefusalError
		if errors.As(err, &refusal) {
			span.SetAttributes(attribute.String("refusal.rule", refusal.Rule))
			if recErr := uc.recordRefusal(ctx, app, refusal); recErr != nil {
				return dto.CreditResponse{}, recErr
			}
			log.InfoContext(ctx, "credit refused", "rule", refusal.Rule, "reason", refusal.Reason)
			return dto.CreditResponse{}, fmt.Errorf("underwrite: %w", err)
		}
		span.SetStatus(codes.Error, err.Error())
		log.ErrorContext(ctx, "underwriting fault", "error", err)
		return dto.CreditResponse{}, fmt.Errorf("underwrite: %w", err)
	}

	// 4. Create and persist the credit.
	var appID *uuid.UUID
	if app != nil {
		id := app.ID()
		appID = &id
	}
	credit := model.NewCredit(decision, appID, now)
	if err := uc.creditRepo.Save(ctx, credit); err != nil {
		return dto.CreditResponse{}, fmt.Errorf("save credit: %w", err)
	}

	// 5. Approve the application.
	evts := credit.DomainEvents()
	if app != nil {
		approved, err := app.Approve(credit.ID(), now)
		if err != nil {
			return dto.CreditResponse{}, fmt.Errorf("approve application: %w", err)
		}
		if err := uc.appRepo.Save(ctx, approved); err != nil {
			return dto.CreditResponse{}, fmt.Errorf("save application: %w", err)
		}
		evts = append(evts, approved.DomainEvents()...)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return dto.CreditResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.recorder.CreditCalculated(ctx, decision.Rate)
	log.InfoContext(ctx, "credit calculated",
		"credit_id", credit.ID().String(),
		"rate", decision.Rate.String(),
		"psk", decision.PSK.String(),
		"monthly_payment", decision.MonthlyPayment.String(),
	)

	return toCreditResponse(credit, decision.Quote.Adjustments()), nil
}

// recordRefusal denies the application (when there is one) and publishes
// the refusal.
func (uc *CalculateCreditUseCase) recordRefusal(
	ctx context.Context,
	app *model.LoanApplication,
	refusal *service.RefusalError,
) error {
	now := uc.settings.Clock()
	uc.recorder.CreditRefused(ctx, refusal.Rule)

	if app == nil {
		evt := event.NewCreditRefused(uuid.New(), refusal.Rule, refusal.Reason, now)
		if err := uc.publisher.Publish(ctx, evt); err != nil {
			return fmt.Errorf("publish events: %w", err)
		}
		return nil
	}

	denied, err := app.Deny(refusal.Rule, refusal.Reason, now)
	if err != nil {
		return fmt.Errorf("deny application: %w", err)
	}
	if err := uc.appRepo.Save(ctx, denied); err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, denied.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
