package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/port"
)

// GetCreditUseCase retrieves a credit by ID.
type GetCreditUseCase struct {
	creditRepo port.CreditRepository
}

// NewGetCreditUseCase wires dependencies.
func NewGetCreditUseCase(creditRepo port.CreditRepository) *GetCreditUseCase {
	return &GetCreditUseCase{creditRepo: creditRepo}
}

// Execute returns a credit response for the given ID.
func (uc *GetCreditUseCase) Execute(
	ctx context.Context,
	req dto.GetCreditRequest,
) (dto.CreditResponse, error) {
	id, err := parseID("credit_id", req.CreditID)
	if err != nil {
		return dto.CreditResponse{}, err
	}
	credit, err := uc.creditRepo.FindByID(ctx, id)
	if err != nil {
		return dto.CreditResponse{}, fmt.Errorf("find credit: %w", err)
	}
	return toCreditResponse(credit, nil), nil
}

// GetApplicationUseCase retrieves a loan application by ID.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute returns a loan application response for the given ID.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	req dto.GetApplicationRequest,
) (dto.ApplicationResponse, error) {
	id, err := parseID("application_id", req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	app, err := uc.appRepo.FindByID(ctx, id)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}
