package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Conveyor – offers and underwriting entry points
// ---------------------------------------------------------------------------

// Premiums holds the flat insurance premium added to the principal on each
// pricing path.
type Premiums struct {
	Offer  decimal.Decimal
	Credit decimal.Decimal
}

// offerOptions is the fixed generation order; ties in the final sort keep it.
var offerOptions = [4]struct{ insurance, salaryClient bool }{
	{true, true},
	{true, false},
	{false, true},
	{false, false},
}

// Conveyor combines the rate engine, the calculator and the scheduler.
type Conveyor struct {
	engine   *RateEngine
	premiums Premiums
}

// NewConveyor returns a Conveyor using the given engine and premiums.
func NewConveyor(engine *RateEngine, premiums Premiums) *Conveyor {
	return &Conveyor{engine: engine, premiums: premiums}
}

// GenerateOffers prices the four insurance/payroll combinations for the
// requested amount and term, sorted by rate from highest to lowest.
func (c *Conveyor) GenerateOffers(profile model.ApplicantProfile) ([]model.LoanOffer, error) {
	if err := profile.ValidateLoanTerms(); err != nil {
		return nil, err
	}

	offers := make([]model.LoanOffer, 0, len(offerOptions))
	for _, opt := range offerOptions {
		variant := profile.WithOptions(opt.insurance, opt.salaryClient)
		rate := c.engine.OfferRate(variant)
		total, monthly := PriceLoan(variant.Amount, variant.Term, rate, variant.InsuranceEnabled, c.premiums.Offer)
		offers = append(offers, model.LoanOffer{
			RequestedAmount:  variant.Amount,
			Term:             variant.Term,
			InsuranceEnabled: variant.InsuranceEnabled,
			SalaryClient:     variant.SalaryClient,
			Rate:             rate,
			TotalAmount:      total,
			MonthlyPayment:   monthly,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Rate.GreaterThan(offers[j].Rate)
	})
	return offers, nil
}

// Underwrite runs the full rule chain for the chosen configuration and, if
// the applicant is not refused, prices the credit and builds its schedule.
// Refusals are returned as *RefusalError.
func (c *Conveyor) Underwrite(profile model.ApplicantProfile, on time.Time) (model.LoanDecision, error) {
	if err := profile.ValidateLoanTerms(); err != nil {
		return model.LoanDecision{}, err
	}

	quote, err := c.engine.AdjustRate(profile, on)
	if err != nil {
		return model.LoanDecision{}, fmt.Errorf("adjust rate: %w", err)
	}
	rate := quote.Value()

	_, monthly := PriceLoan(profile.Amount, profile.Term, rate, profile.InsuranceEnabled, c.premiums.Credit)
	total := CorrectTotal(monthly, profile.Term)

	return model.LoanDecision{
		Amount:           profile.Amount,
		Term:             profile.Term,
		Rate:             rate,
		Quote:            quote,
		TotalAmount:      total,
		MonthlyPayment:   monthly,
		PSK:              PSK(profile.Amount, total, profile.Term),
		InsuranceEnabled: profile.InsuranceEnabled,
		SalaryClient:     profile.SalaryClient,
		Schedule:         model.BuildSchedule(profile.Term, total, rate, monthly, model.CalendarDate(on)),
	}, nil
}
