package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// Settings carries the tunables shared by the pricing use cases.
type Settings struct {
	MaxTermMonths int
	Clock         func() time.Time
	Logger        *slog.Logger
}

func (s Settings) withDefaults() Settings {
	if s.Clock == nil {
		s.Clock = func() time.Time { return time.Now().UTC() }
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", dto.ErrValidation, field, err)
	}
	return t, nil
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", dto.ErrValidation, field, err)
	}
	return id, nil
}

// toProfile converts scoring data into the engine's input. Enum fields have
// already passed validation, so parse errors here are still reported as
// validation failures.
func toProfile(req dto.CreditRequest) (model.ApplicantProfile, error) {
	birth, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return model.ApplicantProfile{}, err
	}
	gender, err := valueobject.NewGender(req.Gender)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}
	marital, err := valueobject.NewMaritalStatus(req.MaritalStatus)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}
	status, err := valueobject.NewEmploymentStatus(req.Employment.EmploymentStatus)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}
	position, err := valueobject.NewPosition(req.Employment.Position)
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}

	return model.ApplicantProfile{
		Amount:        req.Amount,
		Term:          req.Term,
		BirthDate:     birth,
		Gender:        gender,
		MaritalStatus: marital,
		Dependents:    req.DependentAmount,
		Employment: model.Employment{
			Status:            status,
			Position:          position,
			EmployerINN:       req.Employment.EmployerINN,
			Salary:            req.Employment.Salary,
			ExperienceTotal:   req.Employment.WorkExperienceTotal,
			ExperienceCurrent: req.Employment.WorkExperienceCurrent,
		},
		InsuranceEnabled: req.InsuranceEnabled,
		SalaryClient:     req.SalaryClient,
	}, nil
}

func toOfferResponses(applicationID string, offers []model.LoanOffer) []dto.LoanOfferResponse {
	out := make([]dto.LoanOfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, dto.LoanOfferResponse{
			ApplicationID:    applicationID,
			RequestedAmount:  o.RequestedAmount,
			TotalAmount:      o.TotalAmount,
			Term:             o.Term,
			MonthlyPayment:   o.MonthlyPayment,
			Rate:             o.Rate,
			InsuranceEnabled: o.InsuranceEnabled,
			SalaryClient:     o.SalaryClient,
		})
	}
	return out
}

func toScheduleResponse(schedule []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(schedule))
	for _, e := range schedule {
		out = append(out, dto.ScheduleEntryResponse{
			Number:          e.Number,
			Date:            e.DueDate.Format(dto.DateLayout),
			TotalPayment:    e.TotalPayment,
			InterestPayment: e.InterestPayment,
			DebtPayment:     e.DebtPayment,
			RemainingDebt:   e.RemainingDebt,
		})
	}
	return out
}

func toCreditResponse(c model.Credit, adjustments []model.RateAdjustment) dto.CreditResponse {
	resp := dto.CreditResponse{
		ID:               c.ID().String(),
		Amount:           c.Amount(),
		Term:             c.Term(),
		MonthlyPayment:   c.MonthlyPayment(),
		Rate:             c.Rate(),
		PSK:              c.PSK(),
		TotalAmount:      c.TotalAmount(),
		InsuranceEnabled: c.InsuranceEnabled(),
		SalaryClient:     c.SalaryClient(),
		Status:           c.Status().String(),
		PaymentSchedule:  toScheduleResponse(c.Schedule()),
		CreatedAt:        c.CreatedAt(),
	}
	if id := c.ApplicationID(); id != nil {
		resp.ApplicationID = id.String()
	}
	for _, a := range adjustments {
		resp.RateAdjustments = append(resp.RateAdjustments, dto.RateAdjustmentResponse{Rule: a.Rule, Delta: a.Delta})
	}
	return resp
}

func toApplicationResponse(app model.LoanApplication) dto.ApplicationResponse {
	client := app.Client()
	resp := dto.ApplicationResponse{
		ID:              app.ID().String(),
		FirstName:       client.FirstName,
		LastName:        client.LastName,
		MiddleName:      client.MiddleName,
		Email:           client.Email,
		RequestedAmount: app.RequestedAmount(),
		Term:            app.Term(),
		BirthDate:       app.BirthDate().Format(dto.DateLayout),
		Status:          app.Status().String(),
		Offers:          toOfferResponses(app.ID().String(), app.Offers()),
		RefusalReason:   app.RefusalReason(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
	if id := app.CreditID(); id != nil {
		resp.CreditID = id.String()
	}
	for _, h := range app.StatusHistory() {
		resp.StatusHistory = append(resp.StatusHistory, dto.StatusChangeResponse{
			Status:    h.Status.String(),
			ChangedAt: h.ChangedAt,
		})
	}
	return resp
}
