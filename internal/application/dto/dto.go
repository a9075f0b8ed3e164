package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// OffersRequest carries the pre-scoring data needed to calculate offers.
type OffersRequest struct {
	Amount         decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Term           int             `json:"term" validate:"required,gt=0"`
	FirstName      string          `json:"first_name" validate:"omitempty,min=2,max=30"`
	LastName       string          `json:"last_name" validate:"omitempty,min=2,max=30"`
	MiddleName     string          `json:"middle_name,omitempty" validate:"omitempty,min=2,max=30"`
	Email          string          `json:"email,omitempty" validate:"omitempty,email"`
	BirthDate      string          `json:"birth_date" validate:"required,datetime=2006-01-02"`
	PassportSeries string          `json:"passport_series,omitempty" validate:"omitempty,numeric,len=4"`
	PassportNumber string          `json:"passport_number,omitempty" validate:"omitempty,numeric,len=6"`
}

// EmploymentRequest is the applicant's employment record.
type EmploymentRequest struct {
	EmploymentStatus      string          `json:"employment_status" validate:"required,oneof=EMPLOYED SELF_EMPLOYED BUSINESS_OWNER UNEMPLOYED"`
	EmployerINN           string          `json:"employer_inn,omitempty"`
	Salary                decimal.Decimal `json:"salary" validate:"gte=0"`
	Position              string          `json:"position" validate:"required,oneof=WORKER MID_MANAGER TOP_MANAGER OWNER"`
	WorkExperienceTotal   int             `json:"work_experience_total" validate:"gte=0"`
	WorkExperienceCurrent int             `json:"work_experience_current" validate:"gte=0"`
}

// CreditRequest carries the full scoring data for underwriting. ApplicationID
// is optional; when set the referenced application is approved or denied.
type CreditRequest struct {
	ApplicationID    string            `json:"application_id,omitempty" validate:"omitempty,uuid"`
	Amount           decimal.Decimal   `json:"amount" validate:"required,gt=0"`
	Term             int               `json:"term" validate:"required,gt=0"`
	FirstName        string            `json:"first_name" validate:"omitempty,min=2,max=30"`
	LastName         string            `json:"last_name" validate:"omitempty,min=2,max=30"`
	MiddleName       string            `json:"middle_name,omitempty" validate:"omitempty,min=2,max=30"`
	Gender           string            `json:"gender" validate:"required,oneof=FEMALE MALE NON_BINARY"`
	BirthDate        string            `json:"birth_date" validate:"required,datetime=2006-01-02"`
	PassportSeries   string            `json:"passport_series,omitempty" validate:"omitempty,numeric,len=4"`
	PassportNumber   string            `json:"passport_number,omitempty" validate:"omitempty,numeric,len=6"`
	MaritalStatus    string            `json:"marital_status" validate:"required,oneof=SINGLE MARRIED DIVORCED WIDOW_WIDOWER"`
	DependentAmount  int               `json:"dependent_amount" validate:"gte=0"`
	Employment       EmploymentRequest `json:"employment"`
	InsuranceEnabled bool              `json:"is_insurance_enabled"`
	SalaryClient     bool              `json:"is_salary_client"`
}

// GetCreditRequest identifies a credit to retrieve.
type GetCreditRequest struct {
	CreditID string `json:"credit_id" validate:"required,uuid"`
}

// GetApplicationRequest identifies a loan application to retrieve.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanOfferResponse is the external representation of one offer.
type LoanOfferResponse struct {
	ApplicationID    string          `json:"application_id,omitempty"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Term             int             `json:"term"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	Rate             decimal.Decimal `json:"rate"`
	InsuranceEnabled bool            `json:"is_insurance_enabled"`
	SalaryClient     bool            `json:"is_salary_client"`
}

// OffersResponse lists the four offers, highest rate first.
type OffersResponse struct {
	ApplicationID string              `json:"application_id"`
	Offers        []LoanOfferResponse `json:"offers"`
}

// ScheduleEntryResponse represents a single payment schedule entry.
type ScheduleEntryResponse struct {
	Number          int             `json:"number"`
	Date            string          `json:"date"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	InterestPayment decimal.Decimal `json:"interest_payment"`
	DebtPayment     decimal.Decimal `json:"debt_payment"`
	RemainingDebt   decimal.Decimal `json:"remaining_debt"`
}

// RateAdjustmentResponse is one applied pricing rule.
type RateAdjustmentResponse struct {
	Rule  string          `json:"rule"`
	Delta decimal.Decimal `json:"delta"`
}

// CreditResponse is the external representation of a calculated credit.
type CreditResponse struct {
	ID               string                   `json:"id"`
	ApplicationID    string                   `json:"application_id,omitempty"`
	Amount           decimal.Decimal          `json:"amount"`
	Term             int                      `json:"term"`
	MonthlyPayment   decimal.Decimal          `json:"monthly_payment"`
	Rate             decimal.Decimal          `json:"rate"`
	PSK              decimal.Decimal          `json:"psk"`
	TotalAmount      decimal.Decimal          `json:"total_amount"`
	InsuranceEnabled bool                     `json:"is_insurance_enabled"`
	SalaryClient     bool                     `json:"is_salary_client"`
	Status           string                   `json:"status"`
	RateAdjustments  []RateAdjustmentResponse `json:"rate_adjustments,omitempty"`
	PaymentSchedule  []ScheduleEntryResponse  `json:"payment_schedule"`
	CreatedAt        time.Time                `json:"created_at"`
}

// StatusChangeResponse is one entry of an application's status history.
type StatusChangeResponse struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID              string                 `json:"id"`
	FirstName       string                 `json:"first_name,omitempty"`
	LastName        string                 `json:"last_name,omitempty"`
	MiddleName      string                 `json:"middle_name,omitempty"`
	Email           string                 `json:"email,omitempty"`
	RequestedAmount decimal.Decimal        `json:"requested_amount"`
	Term            int                    `json:"term"`
	BirthDate       string                 `json:"birth_date"`
	Status          string                 `json:"status"`
	StatusHistory   []StatusChangeResponse `json:"status_history"`
	Offers          []LoanOfferResponse    `json:"offers"`
	CreditID        string                 `json:"credit_id,omitempty"`
	RefusalReason   string                 `json:"refusal_reason,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
