package service_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

var evaluationDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newEngine(base int64) *service.RateEngine {
	return service.NewRateEngine(decimal.NewFromInt(base), decimal.NewFromInt(1), slog.Default())
}

// baselineProfile is a married 40-year-old male worker with insurance and
// payroll, priced at base 15 to a final rate of 6.
func baselineProfile() model.ApplicantProfile {
	return model.ApplicantProfile{
		Amount:        decimal.NewFromInt(100_000),
		Term:          12,
		BirthDate:     time.Date(1984, 1, 15, 0, 0, 0, 0, time.UTC),
		Gender:        valueobject.GenderMale,
		MaritalStatus: valueobject.MaritalStatusMarried,
		Dependents:    1,
		Employment: model.Employment{
			Status:            valueobject.EmploymentStatusEmployed,
			Position:          valueobject.PositionWorker,
			Salary:            decimal.NewFromInt(50_000),
			ExperienceTotal:   60,
			ExperienceCurrent: 12,
		},
		InsuranceEnabled: true,
		SalaryClient:     true,
	}
}

func TestRateEngine_BaselineExample(t *testing.T) {
	quote, err := newEngine(15).AdjustRate(baselineProfile(), evaluationDate)
	require.NoError(t, err)

	assert.True(t, quote.Value().Equal(decimal.NewFromInt(6)), "got %s", quote.Value())
	assert.True(t, quote.Base().Equal(decimal.NewFromInt(15)))

	rules := make([]string, 0)
	for _, a := range quote.Adjustments() {
		rules = append(rules, a.Rule)
	}
	assert.Equal(t, []string{service.RuleMaritalStatus, service.RuleGenderAge, service.RuleInsuranceSalary}, rules)
}

func TestRateEngine_Adjustments(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *model.ApplicantProfile)
		want   int64
	}{
		{"self employed +1", func(p *model.ApplicantProfile) { p.Employment.Status = valueobject.EmploymentStatusSelfEmployed }, 7},
		{"business owner +3", func(p *model.ApplicantProfile) { p.Employment.Status = valueobject.EmploymentStatusBusinessOwner }, 9},
		{"mid manager -2", func(p *model.ApplicantProfile) { p.Employment.Position = valueobject.PositionMidManager }, 4},
		{"top manager -4", func(p *model.ApplicantProfile) { p.Employment.Position = valueobject.PositionTopManager }, 2},
		{"owner 0", func(p *model.ApplicantProfile) { p.Employment.Position = valueobject.PositionOwner }, 6},
		{"divorced +1", func(p *model.ApplicantProfile) { p.MaritalStatus = valueobject.MaritalStatusDivorced }, 10},
		{"single 0", func(p *model.ApplicantProfile) { p.MaritalStatus = valueobject.MaritalStatusSingle }, 9},
		{"widow 0", func(p *model.ApplicantProfile) { p.MaritalStatus = valueobject.MaritalStatusWidowWidower }, 9},
		{"two dependents +1", func(p *model.ApplicantProfile) { p.Dependents = 2 }, 7},
		{"non binary +3", func(p *model.ApplicantProfile) { p.Gender = valueobject.GenderNonBinary }, 12},
		{"female 40 -3", func(p *model.ApplicantProfile) { p.Gender = valueobject.GenderFemale }, 6},
		{"female 34 0", func(p *model.ApplicantProfile) {
			p.Gender = valueobject.GenderFemale
			p.BirthDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		}, 9},
		{"male 56 0", func(p *model.ApplicantProfile) { p.BirthDate = time.Date(1968, 1, 1, 0, 0, 0, 0, time.UTC) }, 9},
		{"male 29 0", func(p *model.ApplicantProfile) { p.BirthDate = time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC) }, 9},
		{"payroll only -1", func(p *model.ApplicantProfile) { p.InsuranceEnabled = false }, 8},
		{"insurance only -2", func(p *model.ApplicantProfile) { p.SalaryClient = false }, 7},
		{"neither +2", func(p *model.ApplicantProfile) {
			p.InsuranceEnabled = false
			p.SalaryClient = false
		}, 11},
	}

	engine := newEngine(15)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baselineProfile()
			tc.mutate(&p)

			quote, err := engine.AdjustRate(p, evaluationDate)
			require.NoError(t, err)
			assert.True(t, quote.Value().Equal(decimal.NewFromInt(tc.want)), "want %d, got %s", tc.want, quote.Value())
		})
	}
}

func TestRateEngine_Refusals(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *model.ApplicantProfile)
		rule   string
	}{
		{"unemployed", func(p *model.ApplicantProfile) { p.Employment.Status = valueobject.EmploymentStatusUnemployed }, service.RuleEmploymentStatus},
		{"age 19", func(p *model.ApplicantProfile) { p.BirthDate = time.Date(2004, 6, 2, 0, 0, 0, 0, time.UTC) }, service.RuleGenderAge},
		{"age 61", func(p *model.ApplicantProfile) { p.BirthDate = time.Date(1963, 6, 1, 0, 0, 0, 0, time.UTC) }, service.RuleGenderAge},
		{"current experience 2", func(p *model.ApplicantProfile) { p.Employment.ExperienceCurrent = 2 }, service.RuleExperience},
		{"total experience 11", func(p *model.ApplicantProfile) { p.Employment.ExperienceTotal = 11 }, service.RuleExperience},
		{"amount over 20 salaries", func(p *model.ApplicantProfile) { p.Amount = decimal.RequireFromString("1000000.01") }, service.RuleAffordability},
		{"unemployed and under 20", func(p *model.ApplicantProfile) {
			p.Employment.Status = valueobject.EmploymentStatusUnemployed
			p.BirthDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
		}, service.RuleEmploymentStatus},
		{"low experience and unaffordable", func(p *model.ApplicantProfile) {
			p.Employment.ExperienceCurrent = 0
			p.Amount = decimal.NewFromInt(10_000_000)
		}, service.RuleExperience},
	}

	engine := newEngine(15)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baselineProfile()
			tc.mutate(&p)

			quote, err := engine.AdjustRate(p, evaluationDate)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrLoanRefused)
			assert.NotErrorIs(t, err, service.ErrUnclassifiedAttribute)

			var refusal *service.RefusalError
			require.True(t, errors.As(err, &refusal))
			assert.Equal(t, tc.rule, refusal.Rule)
			assert.Equal(t, service.RefusalReasonDenied, refusal.Reason)
			assert.True(t, quote.Value().IsZero(), "no partial rate on refusal")
		})
	}
}

func TestRateEngine_AgeBoundaries(t *testing.T) {
	engine := newEngine(15)

	t.Run("exactly 20 passes", func(t *testing.T) {
		p := baselineProfile()
		p.BirthDate = time.Date(2004, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := engine.AdjustRate(p, evaluationDate)
		assert.NoError(t, err)
	})

	t.Run("exactly 60 passes", func(t *testing.T) {
		p := baselineProfile()
		p.BirthDate = time.Date(1964, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := engine.AdjustRate(p, evaluationDate)
		assert.NoError(t, err)
	})

	t.Run("amount exactly 20 salaries passes", func(t *testing.T) {
		p := baselineProfile()
		p.Amount = decimal.NewFromInt(1_000_000)
		_, err := engine.AdjustRate(p, evaluationDate)
		assert.NoError(t, err)
	})
}

func TestRateEngine_UnclassifiedAttributes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *model.ApplicantProfile)
	}{
		{"employment status", func(p *model.ApplicantProfile) { p.Employment.Status = valueobject.EmploymentStatus{} }},
		{"position", func(p *model.ApplicantProfile) { p.Employment.Position = valueobject.Position{} }},
		{"marital status", func(p *model.ApplicantProfile) { p.MaritalStatus = valueobject.MaritalStatus{} }},
		{"gender", func(p *model.ApplicantProfile) { p.Gender = valueobject.Gender{} }},
	}

	engine := newEngine(15)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baselineProfile()
			tc.mutate(&p)

			_, err := engine.AdjustRate(p, evaluationDate)
			assert.ErrorIs(t, err, service.ErrUnclassifiedAttribute)
			assert.NotErrorIs(t, err, service.ErrLoanRefused)
		})
	}
}

func TestRateEngine_FloorsAtMinimumRate(t *testing.T) {
	p := baselineProfile()
	p.Employment.Position = valueobject.PositionTopManager

	// 5 - 3 - 3 - 4 - 3 = -8
	quote, err := newEngine(5).AdjustRate(p, evaluationDate)
	require.NoError(t, err)

	assert.True(t, quote.Value().Equal(decimal.NewFromInt(1)), "got %s", quote.Value())
	adjustments := quote.Adjustments()
	last := adjustments[len(adjustments)-1]
	assert.Equal(t, service.RuleRateFloor, last.Rule)
	assert.True(t, last.Delta.Equal(decimal.NewFromInt(9)))
}

func TestRateEngine_OfferRate(t *testing.T) {
	engine := newEngine(15)
	profile := baselineProfile()

	assert.True(t, engine.OfferRate(profile.WithOptions(true, true)).Equal(decimal.NewFromInt(12)))
	assert.True(t, engine.OfferRate(profile.WithOptions(true, false)).Equal(decimal.NewFromInt(13)))
	assert.True(t, engine.OfferRate(profile.WithOptions(false, true)).Equal(decimal.NewFromInt(14)))
	assert.True(t, engine.OfferRate(profile.WithOptions(false, false)).Equal(decimal.NewFromInt(17)))

	// scoring attributes play no part in offer pricing
	unemployed := profile.WithOptions(false, false)
	unemployed.Employment.Status = valueobject.EmploymentStatusUnemployed
	assert.True(t, engine.OfferRate(unemployed).Equal(decimal.NewFromInt(17)))
}
