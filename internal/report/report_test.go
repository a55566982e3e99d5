package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seemabie/SH-Reports-App/internal/config"
	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

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

func testRun(t *testing.T) Run {
	t.Helper()

	in := ledger.Inputs{
		TaxMultiplier: d("1.08875"),
		Overrides: ledger.Overrides{
			Cigarettes:  ledger.TobaccoEntry{Items: 1200, Gross: d("14400")},
			ECigarettes: ledger.TobaccoEntry{Items: 80, Gross: d("1920")},
		},
		DesiredMerchSale: d("60000"),
		Fuel: []ledger.FuelProduct{
			{Product: "REG", Volume: 6000, Amount: d("21000")},
			{Product: "DIESEL", Volume: 1100, Amount: d("4400")},
		},
		Payments: ledger.MethodOfPayment{Credit: d("40000"), Debit: d("12000"), Mobile: d("1500")},
	}
	res := ledger.Run(ledger.DefaultDepartments(), in, ledger.Options{Source: ledger.NewSource(7)})
	require.NotNil(t, res)

	return Run{
		ID:          "0b0f6a52-6f0e-4c1e-9d3e-3c9c6f0b2a11",
		GeneratedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		Station: config.StationProfile{
			Name:          "Shell - Syed Empires",
			ID:            "807606",
			TaxMultiplier: d("1.08875"),
			Known:         true,
		},
		OpenDate:  time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		CloseDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Inputs:    in,
		Result:    res,
		Inventory: Inventory{Regular: 4200, Super: 1800, Diesel: 2600},
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-42.1", "(42.10)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(d(tt.in)))
		})
	}

	assert.Equal(t, "$32,300.00", formatDollars(d("32300")))
	assert.Equal(t, "($1.50)", formatDollars(d("-1.5")))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "8,800", formatCount(8800))
	assert.Equal(t, "1,000,000", formatCount(1000000))
	assert.Equal(t, "-1,200", formatCount(-1200))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestGenerateExtrasFixedSource(t *testing.T) {
	ex := GenerateExtras(fixedSource{f: 0.5, n: 0})

	assert.Equal(t, "22:01", ex.OpenTime)
	assert.Equal(t, "22:01", ex.CloseTime)
	assert.True(t, ex.SafeDrops.Equal(d("39500")))
	assert.True(t, ex.MOPCancelRefund.Equal(d("144")))
	assert.True(t, ex.OtherRefund.Equal(d("55.5")))
	assert.InDelta(t, 0.5, ex.CreditShare, 1e-9)
	assert.Equal(t, 50, ex.VoidLines.Count)
	assert.True(t, ex.VoidLines.Amount.Equal(d("3500")))
	assert.Equal(t, 1, ex.SuspendVoid.Count)
}

func TestGenerateExtrasRanges(t *testing.T) {
	src := ledger.NewSource(99)
	for i := 0; i < 200; i++ {
		ex := GenerateExtras(src)

		for _, tm := range []string{ex.OpenTime, ex.CloseTime} {
			assert.GreaterOrEqual(t, tm, "22:01")
			assert.LessOrEqual(t, tm, "23:49")
		}
		assert.True(t, ex.SafeDrops.GreaterThanOrEqual(d("30000")) && ex.SafeDrops.LessThanOrEqual(d("49000")))
		assert.True(t, ex.MOPCancelRefund.GreaterThanOrEqual(d("89")) && ex.MOPCancelRefund.LessThanOrEqual(d("199")))
		assert.True(t, ex.OtherRefund.GreaterThanOrEqual(d("12")) && ex.OtherRefund.LessThanOrEqual(d("99")))
		assert.GreaterOrEqual(t, ex.CreditShare, 0.2)
		assert.Less(t, ex.CreditShare, 0.8)
		assert.GreaterOrEqual(t, ex.VoidLines.Count, 50)
		assert.LessOrEqual(t, ex.VoidLines.Count, 250)
		assert.GreaterOrEqual(t, ex.Suspended.Count, 3)
		assert.LessOrEqual(t, ex.Suspended.Count, 99)
	}
}

func TestBuildMainReport(t *testing.T) {
	run := testRun(t)
	ex := GenerateExtras(fixedSource{f: 0.5, n: 0})

	rep := BuildMainReport(run, ex)

	assert.Equal(t, "Shell - Syed Empires", rep.Header.Station)
	assert.Equal(t, "807606", rep.Header.StationID)
	assert.Equal(t, "2025-03-03 22:01", rep.Header.Period)
	assert.Equal(t, "2025-03-09 22:01", rep.Header.Close)

	assert.Len(t, rep.Rows, len(run.Result.Rows))
	assert.True(t, rep.TotalMerchSale.Equal(run.Result.Totals.MerchNet.Round(2)))

	// cancel/refund split
	assert.True(t, rep.TotalToAccountFor.Equal(d("199.5")))
	assert.True(t, rep.CreditCardBased.Equal(d("99.75")))
	assert.True(t, rep.CreditCardBased.Add(rep.CashBased).Equal(rep.TotalToAccountFor))

	// payment out
	assert.True(t, rep.TotalPaymentOut.Equal(run.Result.Payments.PayOut.Add(d("39500"))))

	assert.Equal(t, "MOP Sales Total", rep.MOPSales[0].Label)
	assert.Equal(t, formatMoney(run.Result.Payments.TotalPaymentSales), rep.MOPSales[0].Value)
	assert.Equal(t, formatMoney(run.Result.Payments.Cash), rep.MOPSales[4].Value)

	assert.Equal(t, "Items", rep.MemoLeft[0].Label)
	assert.Equal(t, formatCount(run.Result.Totals.Items), rep.MemoLeft[0].Count)

	last := rep.TotalsBlock[len(rep.TotalsBlock)-1]
	assert.Equal(t, "Incl Taxes", last.Label)
	assert.Equal(t, formatMoney(run.Result.Tax.InclusiveTotal), last.Value)
}

func TestBuildMainReportUnknownStation(t *testing.T) {
	run := testRun(t)
	run.Station = config.StationProfile{Name: "Sunoco - Nowhere", TaxMultiplier: d("1.08265")}

	rep := BuildMainReport(run, GenerateExtras(fixedSource{}))
	assert.Equal(t, "N/A", rep.Header.StationID)
}

func TestBuildAccountantReport(t *testing.T) {
	run := testRun(t)

	rep := BuildAccountantReport(run)

	merch := run.Result.Totals.MerchNet
	assert.True(t, rep.TotalStoreSales.Equal(merch))
	assert.True(t, rep.OtherSales.Equal(merch.Sub(d("14400")).Sub(d("1920"))))
	assert.Equal(t, 1200, rep.Cigarettes.Items)
	assert.Equal(t, 7100, rep.FuelVolume)
	assert.True(t, rep.FuelTotal.Equal(d("25400")))
	assert.Equal(t, 2600, rep.Inventory.Diesel)
}

func TestFuelName(t *testing.T) {
	assert.Equal(t, "Regular", FuelName("REG"))
	assert.Equal(t, "Diesel", FuelName("DIESEL"))
	assert.Equal(t, "E85", FuelName("E85"))
}

func TestFilenames(t *testing.T) {
	open := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Main_Shell___Syed_Empires_2025_03_03.pdf", MainFilename("Shell - Syed Empires", open))
	assert.Equal(t, "Accountant_Gulf____33_Chestnut_Gasoline_2025_03_03.pdf",
		AccountantFilename("Gulf  - 33 Chestnut Gasoline", open))
}

func TestRenderPDF(t *testing.T) {
	run := testRun(t)
	r := NewPDFRenderer()

	var main bytes.Buffer
	require.NoError(t, r.RenderMain(&main, BuildMainReport(run, GenerateExtras(ledger.NewSource(3)))))
	assert.True(t, bytes.HasPrefix(main.Bytes(), []byte("%PDF")))

	var acct bytes.Buffer
	require.NoError(t, r.RenderAccountant(&acct, BuildAccountantReport(run)))
	assert.True(t, bytes.HasPrefix(acct.Bytes(), []byte("%PDF")))
}
