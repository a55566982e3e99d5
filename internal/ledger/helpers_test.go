package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// fixedSource returns the same draw every time
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func row(id int, desc string, gross, refunds, discounts string) DepartmentRow {
	return NewDepartmentRow(id, desc, 0, 0, d(gross), d(refunds), d(discounts))
}
