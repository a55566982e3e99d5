package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rescaleFixture() []DepartmentRow {
	return Categorize([]DepartmentRow{
		row(1, "CIGARETTES", "50.00", "0", "0"),
		row(2, "SNACKS", "100.00", "10.00", "0"),
		row(3, "SODA", "210.00", "0", "0"),
		row(9998, "MANUAL FUEL DE", "999.00", "0", "0"),
	})
}

func scalableNet(rows []DepartmentRow) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		if r.Category == CategoryScalable {
			sum = sum.Add(r.NetSales)
		}
	}
	return sum
}

func TestRescale_HitsTarget(t *testing.T) {
	out, res := Rescale(rescaleFixture(), d("650"))

	require.True(t, res.Applied)
	assertDecimal(t, "600", res.Target)
	assertDecimal(t, "300", res.CurrentSum)
	assertDecimal(t, "2", res.Factor)

	// (100 - 10) * 2 + 10
	assertDecimal(t, "190.00", out[1].Gross)
	assertDecimal(t, "10.00", out[1].Refunds)
	assertDecimal(t, "180.00", out[1].NetSales)
	assertDecimal(t, "420.00", out[2].Gross)
	assertDecimal(t, "600", scalableNet(out))

	assertDecimal(t, "50.00", out[0].Gross, "tobacco is not scaled")
	assertDecimal(t, "999.00", out[3].Gross, "fuel is not scaled")
}

func TestRescale_Skipped(t *testing.T) {
	tests := []struct {
		name    string
		rows    []DepartmentRow
		desired string
	}{
		{"zero desired", rescaleFixture(), "0"},
		{"negative desired", rescaleFixture(), "-10"},
		{"tobacco covers desired", rescaleFixture(), "40"},
		{"tobacco equals desired", rescaleFixture(), "50"},
		{
			"no scalable sales",
			Categorize([]DepartmentRow{row(1, "CIGARETTES", "50", "0", "0"), row(2, "SNACKS", "0", "0", "0")}),
			"500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := Rescale(tt.rows, d(tt.desired))
			assert.False(t, res.Applied)
			assert.NotEmpty(t, res.Reason)
			for i := range out {
				assertDecimal(t, tt.rows[i].Gross.String(), out[i].Gross)
			}
		})
	}
}

func TestRescale_ErrorBoundedByRowCount(t *testing.T) {
	src := NewSource(42)

	for run := 0; run < 50; run++ {
		n := IntBetween(src, 1, 40)
		rows := make([]DepartmentRow, 0, n)
		for i := 0; i < n; i++ {
			gross := UniformAmount(src, 10, 900)
			refunds := UniformAmount(src, 0, 5)
			discounts := UniformAmount(src, 0, 5)
			rows = append(rows, NewDepartmentRow(i, "DEPT", 0, 0, gross, refunds, discounts))
		}
		rows = Categorize(rows)
		desired := UniformAmount(src, 100, 90000)

		out, res := Rescale(rows, desired)
		require.True(t, res.Applied)

		bound := decimal.NewFromFloat(0.005).Mul(decimal.NewFromInt(int64(n)))
		diff := scalableNet(out).Sub(res.Target).Abs()
		assert.Truef(t, diff.LessThanOrEqual(bound), "run %d: off by %s with %d rows", run, diff, n)
	}
}

func TestPadCounts(t *testing.T) {
	rows := Categorize([]DepartmentRow{
		NewDepartmentRow(1, "SNACKS", 10, 20, d("1"), d("0"), d("0")),
		NewDepartmentRow(2, "CIGARETTES", 10, 20, d("1"), d("0"), d("0")),
		NewDepartmentRow(3, "FUEL DEPOSIT", 10, 20, d("1"), d("0"), d("0")),
	})

	out := PadCounts(rows, fixedSource{n: 4})

	assert.Equal(t, 25, out[0].Customers)
	assert.Equal(t, 35, out[0].Items)
	assert.Equal(t, 10, out[1].Customers)
	assert.Equal(t, 20, out[2].Items)
}

func TestPadCounts_Range(t *testing.T) {
	rows := Categorize([]DepartmentRow{row(1, "SNACKS", "1", "0", "0")})
	src := NewSource(3)
	for i := 0; i < 300; i++ {
		out := PadCounts(rows, src)
		require.GreaterOrEqual(t, out[0].Customers, 11)
		require.LessOrEqual(t, out[0].Customers, 30)
		require.GreaterOrEqual(t, out[0].Items, 11)
		require.LessOrEqual(t, out[0].Items, 30)
	}
}
