package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimal checks that got equals the decimal literal want, ignoring
// scale (so "6" matches 6.00).
func AssertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	if decimal.RequireFromString(want).Equal(got) {
		return true
	}
	return assert.Fail(t, "decimals differ: want "+want+", got "+got.String(), msgAndArgs...)
}
