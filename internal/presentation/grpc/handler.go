package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/port"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// Use-case contracts consumed by the handlers. The usecase package types
// satisfy them.
type (
	OffersCalculator interface {
		Execute(ctx context.Context, req dto.OffersRequest) (dto.OffersResponse, error)
	}
	CreditCalculator interface {
		Execute(ctx context.Context, req dto.CreditRequest) (dto.CreditResponse, error)
	}
	CreditGetter interface {
		Execute(ctx context.Context, req dto.GetCreditRequest) (dto.CreditResponse, error)
	}
	ApplicationGetter interface {
		Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error)
	}
)

// ConveyorHandler implements ConveyorServiceServer on top of the use cases.
type ConveyorHandler struct {
	UnimplementedConveyorServiceServer

	offers      OffersCalculator
	credit      CreditCalculator
	getCredit   CreditGetter
	application ApplicationGetter
	logger      *slog.Logger
}

// NewConveyorHandler creates a new handler with all use-case dependencies.
func NewConveyorHandler(
	offers OffersCalculator,
	credit CreditCalculator,
	getCredit CreditGetter,
	application ApplicationGetter,
	logger *slog.Logger,
) *ConveyorHandler {
	return &ConveyorHandler{
		offers:      offers,
		credit:      credit,
		getCredit:   getCredit,
		application: application,
		logger:      logger,
	}
}

func (h *ConveyorHandler) CalculateOffers(ctx context.Context, req *dto.OffersRequest) (*dto.OffersResponse, error) {
	resp, err := h.offers.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CalculateOffers", err)
	}
	return &resp, nil
}

func (h *ConveyorHandler) CalculateCredit(ctx context.Context, req *dto.CreditRequest) (*dto.CreditResponse, error) {
	resp, err := h.credit.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "CalculateCredit", err)
	}
	return &resp, nil
}

func (h *ConveyorHandler) GetCredit(ctx context.Context, req *dto.GetCreditRequest) (*dto.CreditResponse, error) {
	resp, err := h.getCredit.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetCredit", err)
	}
	return &resp, nil
}

func (h *ConveyorHandler) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	resp, err := h.application.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, "GetApplication", err)
	}
	return &resp, nil
}

// toStatus maps use-case errors onto gRPC status codes. A refusal carries
// only its reason; internal failures are logged and not leaked.
func (h *ConveyorHandler) toStatus(ctx context.Context, method string, err error) error {
	var refusal *service.RefusalError
	switch {
	case errors.As(err, &refusal):
		return status.Error(codes.FailedPrecondition, refusal.Reason)
	case errors.Is(err, dto.ErrValidation),
		errors.Is(err, service.ErrUnclassifiedAttribute),
		errors.Is(err, model.ErrNonPositiveAmount),
		errors.Is(err, model.ErrNonPositiveTerm):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
