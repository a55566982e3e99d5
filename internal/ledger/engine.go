package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default pay-out range
const (
	DefaultPayOutMin = 3000.0
	DefaultPayOutMax = 9000.0
)

// Inputs are the operator-entered figures of one report run
type Inputs struct {
	TaxMultiplier    decimal.Decimal
	Overrides        Overrides
	DesiredMerchSale decimal.Decimal
	Fuel             []FuelProduct
	Payments         MethodOfPayment
}

// Options control the synthesized parts of a run. The pay-out is drawn
// from [PayOutMin, PayOutMax]; a zero range means no pay-out.
type Options struct {
	Source    Source
	PayOutMin float64
	PayOutMax float64
}

// Totals aggregates the finalized rows. Money totals cover merchandise
// (non-fuel) rows only; counts cover every row.
type Totals struct {
	MerchGross     decimal.Decimal
	MerchRefunds   decimal.Decimal
	MerchDiscounts decimal.Decimal
	MerchNet       decimal.Decimal
	Items          int
	Customers      int
}

// Result is the finalized ledger of a run
type Result struct {
	Rows       []DepartmentRow
	Totals     Totals
	Tax        TaxSummary
	Payments   PaymentBreakdown
	Rescale    RescaleResult
	FuelVolume int
	FuelTotal  decimal.Decimal
	Warnings   []string
}

// SumTotals computes Totals over rows.
func SumTotals(rows []DepartmentRow) Totals {
	t := Totals{
		MerchGross:     decimal.Zero,
		MerchRefunds:   decimal.Zero,
		MerchDiscounts: decimal.Zero,
		MerchNet:       decimal.Zero,
	}
	for _, r := range rows {
		t.Items += r.Items
		t.Customers += r.Customers
		if !r.Category.IsMerchandise() {
			continue
		}
		t.MerchGross = t.MerchGross.Add(r.Gross)
		t.MerchRefunds = t.MerchRefunds.Add(r.Refunds)
		t.MerchDiscounts = t.MerchDiscounts.Add(r.Discounts)
		t.MerchNet = t.MerchNet.Add(r.NetSales)
	}
	return t
}

// Run takes raw department rows through the whole pipeline:
// categorize, override, rescale, pad counts, inject fuel, percent of
// sales, tax and payment reconciliation. The input slice is not modified.
func Run(rows []DepartmentRow, in Inputs, opts Options) *Result {
	if opts.Source == nil {
		opts.Source = NewSource(0)
	}

	res := &Result{}
	res.FuelVolume, res.FuelTotal = FuelTotals(in.Fuel)

	out := Categorize(rows)
	groups := Partition(out)
	out = ApplyOverrides(out, in.Overrides, opts.Source)
	out, res.Rescale = Rescale(out, in.DesiredMerchSale)
	out = PadCounts(out, opts.Source)
	out = InjectFuel(out, res.FuelTotal)
	out = PercentOfSales(out)

	res.Rows = out
	res.Totals = SumTotals(out)
	res.Tax = ComputeTax(res.Totals.MerchNet, in.TaxMultiplier)
	res.Payments = ReconcilePayments(PaymentInput{
		MerchNet:  res.Totals.MerchNet,
		FuelTotal: res.FuelTotal,
		SalesTax:  res.Tax.SalesTax,
		Manual:    in.Payments,
		PayOut:    UniformAmount(opts.Source, opts.PayOutMin, opts.PayOutMax),
	})

	if entered(in.Overrides.Cigarettes) && len(groups[CategoryCigarette]) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no %q department found; cigarette totals were not applied", CigaretteKeyword))
	}
	if entered(in.Overrides.ECigarettes) && len(groups[CategoryECigarette]) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no %q department found; e-cigarette totals were not applied", ECigaretteKeyword))
	}
	if in.DesiredMerchSale.IsPositive() && !res.Rescale.Applied {
		res.Warnings = append(res.Warnings, fmt.Sprintf("merchandise was not rescaled: %s", res.Rescale.Reason))
	}
	if res.FuelTotal.IsPositive() && !hasManualFuelDeposit(out) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no %q department found; fuel total not recorded in the department table", ManualFuelDepositKeyword))
	}
	if w := res.Payments.Warning(); w != "" {
		res.Warnings = append(res.Warnings, w)
	}

	return res
}

// RowsOf returns the finalized rows of the given category
func (r *Result) RowsOf(c Category) []DepartmentRow {
	var rows []DepartmentRow
	for _, row := range r.Rows {
		if row.Category == c {
			rows = append(rows, row)
		}
	}
	return rows
}

func entered(e TobaccoEntry) bool {
	return e.Items > 0 || !e.Gross.IsZero()
}

func hasManualFuelDeposit(rows []DepartmentRow) bool {
	for _, r := range rows {
		if r.ManualFuelDeposit {
			return true
		}
	}
	return false
}
