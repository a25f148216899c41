package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimalNear(t *testing.T, want, got decimal.Decimal, tolerance string) {
	t.Helper()
	assert.Truef(t, got.Sub(want).Abs().LessThanOrEqual(d(tolerance)),
		"expected %s within %s, got %s", want, tolerance, got)
}
