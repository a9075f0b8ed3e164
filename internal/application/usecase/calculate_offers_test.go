package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/application/usecase"
	"github.com/bibbank/conveyor/internal/domain/event"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

func newTestConveyor() *service.Conveyor {
	engine := service.NewRateEngine(decimal.NewFromInt(15), decimal.NewFromInt(1), slog.Default())
	return service.NewConveyor(engine, service.Premiums{
		Offer:  decimal.NewFromInt(100),
		Credit: decimal.NewFromInt(100),
	})
}

func testSettings() usecase.Settings {
	return usecase.Settings{MaxTermMonths: 360, Clock: fixedClock, Logger: slog.Default()}
}

func validOffersRequest() dto.OffersRequest {
	return dto.OffersRequest{
		Amount:    decimal.NewFromInt(100_000),
		Term:      12,
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan@example.com",
		BirthDate: "1984-01-15",
	}
}

func TestCalculateOffers_Execute(t *testing.T) {
	t.Run("prices four offers and opens an application", func(t *testing.T) {
		appRepo := &mockApplicationRepository{}
		publisher := &mockEventPublisher{}
		cache := &mockOfferCache{}
		recorder := &mockDecisionRecorder{}

		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), appRepo, publisher, cache, recorder, testSettings())

		resp, err := uc.Execute(context.Background(), validOffersRequest())
		require.NoError(t, err)

		require.Len(t, resp.Offers, 4)
		assert.NotEmpty(t, resp.ApplicationID)
		assert.True(t, resp.Offers[0].Rate.Equal(decimal.NewFromInt(17)))
		assert.True(t, resp.Offers[3].Rate.Equal(decimal.NewFromInt(12)))
		for _, o := range resp.Offers {
			assert.Equal(t, resp.ApplicationID, o.ApplicationID)
		}

		require.Len(t, appRepo.savedApps, 1)
		saved := appRepo.savedApps[0]
		assert.Equal(t, valueobject.ApplicationStatusPreapproval, saved.Status())
		assert.Equal(t, "Petrov", saved.Client().LastName)
		assert.Equal(t, fixedNow, saved.CreatedAt())

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeOffersCalculated, publisher.publishedEvents[0].EventType())

		assert.Equal(t, 1, cache.puts)
		assert.Equal(t, []bool{false}, recorder.offers)
	})

	t.Run("serves offers from cache", func(t *testing.T) {
		cachedOffers := []model.LoanOffer{
			{RequestedAmount: decimal.NewFromInt(100_000), Term: 12, Rate: decimal.NewFromInt(99)},
		}
		cache := &mockOfferCache{
			getFunc: func(_ context.Context, _ decimal.Decimal, _ int) ([]model.LoanOffer, bool, error) {
				return cachedOffers, true, nil
			},
		}
		recorder := &mockDecisionRecorder{}

		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), &mockApplicationRepository{}, &mockEventPublisher{}, cache, recorder, testSettings())

		resp, err := uc.Execute(context.Background(), validOffersRequest())
		require.NoError(t, err)

		require.Len(t, resp.Offers, 1)
		assert.True(t, resp.Offers[0].Rate.Equal(decimal.NewFromInt(99)))
		assert.Equal(t, 0, cache.puts)
		assert.Equal(t, []bool{true}, recorder.offers)
	})

	t.Run("cache failures are ignored", func(t *testing.T) {
		cache := &mockOfferCache{
			getFunc: func(_ context.Context, _ decimal.Decimal, _ int) ([]model.LoanOffer, bool, error) {
				return nil, false, errors.New("redis down")
			},
			putFunc: func(_ context.Context, _ decimal.Decimal, _ int, _ []model.LoanOffer) error {
				return errors.New("redis down")
			},
		}

		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), &mockApplicationRepository{}, &mockEventPublisher{}, cache, &mockDecisionRecorder{}, testSettings())

		resp, err := uc.Execute(context.Background(), validOffersRequest())
		require.NoError(t, err)
		assert.Len(t, resp.Offers, 4)
	})

	t.Run("works without a cache", func(t *testing.T) {
		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), &mockApplicationRepository{}, &mockEventPublisher{}, nil, &mockDecisionRecorder{}, testSettings())

		resp, err := uc.Execute(context.Background(), validOffersRequest())
		require.NoError(t, err)
		assert.Len(t, resp.Offers, 4)
	})

	t.Run("rejects invalid request", func(t *testing.T) {
		appRepo := &mockApplicationRepository{}
		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), appRepo, &mockEventPublisher{}, nil, &mockDecisionRecorder{}, testSettings())

		req := validOffersRequest()
		req.Amount = decimal.Zero

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, dto.ErrValidation)
		assert.Empty(t, appRepo.savedApps)
	})

	t.Run("rejects term above maximum", func(t *testing.T) {
		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), &mockApplicationRepository{}, &mockEventPublisher{}, nil, &mockDecisionRecorder{}, testSettings())

		req := validOffersRequest()
		req.Term = 361

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, dto.ErrValidation)
	})

	t.Run("fails when repository fails", func(t *testing.T) {
		appRepo := &mockApplicationRepository{
			saveFunc: func(_ context.Context, _ model.LoanApplication) error {
				return errors.New("db down")
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), appRepo, publisher, nil, &mockDecisionRecorder{}, testSettings())

		_, err := uc.Execute(context.Background(), validOffersRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save application")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when publisher fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return errors.New("kafka down")
			},
		}
		uc := usecase.NewCalculateOffersUseCase(newTestConveyor(), &mockApplicationRepository{}, publisher, nil, &mockDecisionRecorder{}, testSettings())

		_, err := uc.Execute(context.Background(), validOffersRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
