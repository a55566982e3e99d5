package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeCustomers(t *testing.T) {
	assert.Equal(t, 0, SynthesizeCustomers(0, fixedSource{f: 0.5}))
	assert.Equal(t, 0, SynthesizeCustomers(-3, fixedSource{f: 0.5}))
	// 100 * 0.85
	assert.Equal(t, 85, SynthesizeCustomers(100, fixedSource{f: 0.5}))
	assert.Equal(t, 80, SynthesizeCustomers(100, fixedSource{f: 0}))
}

func TestSynthesizeCustomers_StaysInRange(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 500; i++ {
		c := SynthesizeCustomers(200, src)
		require.GreaterOrEqual(t, c, 160)
		require.LessOrEqual(t, c, 180)
	}
}

func TestApplyOverrides(t *testing.T) {
	rows := Categorize([]DepartmentRow{
		NewDepartmentRow(1, "CIGARETTES", 5, 5, d("12.00"), d("2.00"), d("0")),
		NewDepartmentRow(30, "E-Cigarette", 1, 1, d("3.00"), d("0"), d("0")),
		NewDepartmentRow(3, "BEER", 9, 9, d("50.00"), d("0"), d("0")),
	})

	out := ApplyOverrides(rows, Overrides{
		Cigarettes:  TobaccoEntry{Items: 200, Gross: d("2400.00")},
		ECigarettes: TobaccoEntry{Items: 0, Gross: d("150.00")},
	}, fixedSource{f: 0.5})

	cig := out[0]
	assert.Equal(t, 170, cig.Customers)
	assert.Equal(t, 200, cig.Items)
	assertDecimal(t, "2400.00", cig.Gross)
	assertDecimal(t, "2398.00", cig.NetSales, "refunds stay in place")

	ecig := out[1]
	assert.Equal(t, 0, ecig.Customers)
	assert.Equal(t, 0, ecig.Items)
	assertDecimal(t, "150.00", ecig.NetSales)

	assert.Equal(t, rows[2], out[2], "scalable rows are untouched")
	assertDecimal(t, "12.00", rows[0].Gross, "input is not modified")
}
