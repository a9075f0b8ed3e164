package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bibbank/conveyor/internal/domain/service"
)

func TestPriceLoan(t *testing.T) {
	premium := decimal.NewFromInt(100)

	cases := []struct {
		name      string
		amount    string
		term      int
		rate      int64
		insurance bool
		total     string
		monthly   string
	}{
		{"no insurance", "100000", 12, 15, false, "115000", "9584"},
		{"insurance adds premium", "100000", 12, 15, true, "115115", "9593"},
		{"exact division", "120000", 12, 0, false, "120000", "10000"},
		{"two year term", "300000", 24, 10, false, "360000", "15000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, monthly := service.PriceLoan(decimal.RequireFromString(tc.amount), tc.term, decimal.NewFromInt(tc.rate), tc.insurance, premium)

			assert.True(t, total.Equal(decimal.RequireFromString(tc.total)), "total: got %s", total)
			assert.True(t, monthly.Equal(decimal.RequireFromString(tc.monthly)), "monthly: got %s", monthly)
		})
	}
}

func TestPriceLoan_MonthlyIsIntegralAndCoversTotal(t *testing.T) {
	amounts := []string{"10000", "123456.78", "99999.99", "500000"}
	terms := []int{6, 12, 18, 36, 60}
	rates := []int64{3, 7, 12, 17, 20}

	for _, a := range amounts {
		for _, term := range terms {
			for _, r := range rates {
				total, monthly := service.PriceLoan(decimal.RequireFromString(a), term, decimal.NewFromInt(r), true, decimal.NewFromInt(100))

				assert.True(t, monthly.Equal(monthly.Truncate(0)), "monthly %s must be integral", monthly)
				assert.True(t, service.CorrectTotal(monthly, term).GreaterThanOrEqual(total),
					"monthly*term must cover total for %s/%d/%d", a, term, r)
			}
		}
	}
}

func TestCorrectTotal(t *testing.T) {
	assert.True(t, service.CorrectTotal(decimal.NewFromInt(9584), 12).Equal(decimal.NewFromInt(115_008)))
}

func TestPSK(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		total  string
		term   int
		want   string
	}{
		{"corrected one year", "100000", "115008", 12, "15.01"},
		{"no interest", "100000", "100000", 12, "0"},
		{"two years", "100000", "120000", 24, "10"},
		{"half year rounds half up", "100000", "106667", 6, "13.33"},
		{"third place five rounds up", "100000", "100045", 12, "0.05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.PSK(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.total), tc.term)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}
