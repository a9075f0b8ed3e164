package service

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RateEngine – ordered rule chain over the base rate
// ---------------------------------------------------------------------------

// Rule names, reported in adjustments, refusals and logs.
const (
	RuleEmploymentStatus = "employment_status"
	RulePosition         = "position"
	RuleMaritalStatus    = "marital_status"
	RuleDependents       = "dependents"
	RuleGenderAge        = "gender_age"
	RuleInsuranceSalary  = "insurance_salary"
	RuleExperience       = "experience"
	RuleAffordability    = "affordability"
	RuleRateFloor        = "rate_floor"
)

// rateRule evaluates one attribute of the profile. It returns the signed
// change to apply, or an error that aborts the chain.
type rateRule struct {
	name  string
	apply func(p model.ApplicantProfile, on time.Time) (decimal.Decimal, error)
}

const (
	minAge = 20
	maxAge = 60

	minCurrentExperience = 3  // months
	minTotalExperience   = 12 // months
)

var maxLoanToSalary = decimal.NewFromInt(20)

// underwritingRules is the full chain in evaluation order. The first error
// wins.
var underwritingRules = []rateRule{
	{name: RuleEmploymentStatus, apply: employmentStatusRule},
	{name: RulePosition, apply: positionRule},
	{name: RuleMaritalStatus, apply: maritalStatusRule},
	{name: RuleDependents, apply: dependentsRule},
	{name: RuleGenderAge, apply: genderAgeRule},
	{name: RuleInsuranceSalary, apply: insuranceSalaryRule},
	{name: RuleExperience, apply: experienceRule},
	{name: RuleAffordability, apply: affordabilityRule},
}

// offerRules price an illustrative offer: no gates, only the product options.
var offerRules = []rateRule{
	{name: RuleInsuranceSalary, apply: insuranceSalaryRule},
}

// RateEngine folds an ordered list of rules over a base rate. It holds no
// mutable state and is safe for concurrent use.
type RateEngine struct {
	baseRate decimal.Decimal
	minRate  decimal.Decimal
	logger   *slog.Logger
}

// NewRateEngine returns an engine starting from baseRate. Final rates below
// minRate are raised to it.
func NewRateEngine(baseRate, minRate decimal.Decimal, logger *slog.Logger) *RateEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateEngine{baseRate: baseRate, minRate: minRate, logger: logger}
}

// BaseRate returns the configured starting rate.
func (e *RateEngine) BaseRate() decimal.Decimal { return e.baseRate }

// AdjustRate runs the full underwriting chain. On refusal or fault no
// partial quote is returned.
func (e *RateEngine) AdjustRate(profile model.ApplicantProfile, on time.Time) (model.RateQuote, error) {
	return e.fold(underwritingRules, profile, on)
}

// OfferRate prices the profile's insurance/payroll combination for an offer.
// Only the product options affect the result.
func (e *RateEngine) OfferRate(profile model.ApplicantProfile) decimal.Decimal {
	// offer rules never fail
	quote, _ := e.fold(offerRules, profile, time.Time{})
	return quote.Value()
}

func (e *RateEngine) fold(rules []rateRule, profile model.ApplicantProfile, on time.Time) (model.RateQuote, error) {
	quote := model.NewRateQuote(e.baseRate)
	for _, r := range rules {
		delta, err := r.apply(profile, on)
		if err != nil {
			e.logger.Debug("rate rule aborted chain",
				"rule", r.name,
				"rate_so_far", quote.Value().String(),
				"error", err,
			)
			return model.RateQuote{}, err
		}
		quote = quote.Adjust(r.name, delta)
		e.logger.Debug("rate rule applied",
			"rule", r.name,
			"delta", delta.String(),
			"rate", quote.Value().String(),
		)
	}

	if v := quote.Value(); v.LessThan(e.minRate) {
		e.logger.Warn("rate below floor, raising to minimum",
			"rate", v.String(),
			"min_rate", e.minRate.String(),
		)
		quote = quote.Adjust(RuleRateFloor, e.minRate.Sub(v))
	}
	return quote, nil
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

func employmentStatusRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	switch p.Employment.Status {
	case valueobject.EmploymentStatusSelfEmployed:
		return decimal.NewFromInt(1), nil
	case valueobject.EmploymentStatusBusinessOwner:
		return decimal.NewFromInt(3), nil
	case valueobject.EmploymentStatusEmployed:
		return decimal.Zero, nil
	case valueobject.EmploymentStatusUnemployed:
		return decimal.Zero, refuse(RuleEmploymentStatus)
	default:
		return decimal.Zero, unclassified("employment status", p.Employment.Status)
	}
}

func positionRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	switch p.Employment.Position {
	case valueobject.PositionMidManager:
		return decimal.NewFromInt(-2), nil
	case valueobject.PositionTopManager:
		return decimal.NewFromInt(-4), nil
	case valueobject.PositionWorker, valueobject.PositionOwner:
		return decimal.Zero, nil
	default:
		return decimal.Zero, unclassified("position", p.Employment.Position)
	}
}

func maritalStatusRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	switch p.MaritalStatus {
	case valueobject.MaritalStatusMarried:
		return decimal.NewFromInt(-3), nil
	case valueobject.MaritalStatusDivorced:
		return decimal.NewFromInt(1), nil
	case valueobject.MaritalStatusSingle, valueobject.MaritalStatusWidowWidower:
		return decimal.Zero, nil
	default:
		return decimal.Zero, unclassified("marital status", p.MaritalStatus)
	}
}

func dependentsRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	if p.Dependents > 1 {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, nil
}

func genderAgeRule(p model.ApplicantProfile, on time.Time) (decimal.Decimal, error) {
	age := p.AgeOn(on)
	if age < minAge || age > maxAge {
		return decimal.Zero, refuse(RuleGenderAge)
	}

	switch p.Gender {
	case valueobject.GenderFemale:
		if age >= 35 && age <= 60 {
			return decimal.NewFromInt(-3), nil
		}
		return decimal.Zero, nil
	case valueobject.GenderMale:
		if age >= 30 && age <= 55 {
			return decimal.NewFromInt(-3), nil
		}
		return decimal.Zero, nil
	case valueobject.GenderNonBinary:
		return decimal.NewFromInt(3), nil
	default:
		return decimal.Zero, unclassified("gender", p.Gender)
	}
}

func insuranceSalaryRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	switch {
	case p.InsuranceEnabled && p.SalaryClient:
		return decimal.NewFromInt(-3), nil
	case p.SalaryClient:
		return decimal.NewFromInt(-1), nil
	case p.InsuranceEnabled:
		return decimal.NewFromInt(-2), nil
	default:
		return decimal.NewFromInt(2), nil
	}
}

func experienceRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	if p.Employment.ExperienceCurrent < minCurrentExperience || p.Employment.ExperienceTotal < minTotalExperience {
		return decimal.Zero, refuse(RuleExperience)
	}
	return decimal.Zero, nil
}

func affordabilityRule(p model.ApplicantProfile, _ time.Time) (decimal.Decimal, error) {
	if p.Amount.GreaterThan(p.Employment.Salary.Mul(maxLoanToSalary)) {
		return decimal.Zero, refuse(RuleAffordability)
	}
	return decimal.Zero, nil
}
