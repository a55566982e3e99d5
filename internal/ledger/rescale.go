package ledger

import (
	"github.com/shopspring/decimal"
)

const (
	padMin = 11
	padMax = 30
)

// RescaleResult describes what the rescaler did
type RescaleResult struct {
	Applied    bool
	Reason     string
	Desired    decimal.Decimal
	Target     decimal.Decimal
	CurrentSum decimal.Decimal
	Factor     decimal.Decimal
}

// Rescale scales the gross of every scalable row so that the scalable net
// sales add up to desired minus the tobacco net already counted. Refunds
// and discounts are held fixed. When a precondition fails the rows are
// returned unchanged.
func Rescale(rows []DepartmentRow, desired decimal.Decimal) ([]DepartmentRow, RescaleResult) {
	out := cloneRows(rows)

	current := decimal.Zero
	for _, r := range out {
		if r.Category == CategoryScalable {
			current = current.Add(r.NetSales)
		}
	}
	target := desired.Sub(tobaccoNet(out))

	res := RescaleResult{
		Desired:    desired,
		Target:     target,
		CurrentSum: current,
		Factor:     decimal.NewFromInt(1),
	}

	switch {
	case !desired.IsPositive():
		res.Reason = "no desired merchandise total"
		return out, res
	case !current.IsPositive():
		res.Reason = "scalable rows have no net sales"
		return out, res
	case !target.IsPositive():
		res.Reason = "tobacco sales already meet the desired total"
		return out, res
	}

	factor := target.DivRound(current, 16)
	for i := range out {
		if out[i].Category != CategoryScalable {
			continue
		}
		r := out[i]
		fixed := r.Refunds.Add(r.Discounts)
		r.Gross = r.Net().Mul(factor).Add(fixed).Round(2)
		out[i] = r.withNet()
	}

	res.Applied = true
	res.Factor = factor
	return out, res
}

// PadCounts adds an independent draw from [11, 30] to the customer and
// item counts of every scalable row.
func PadCounts(rows []DepartmentRow, src Source) []DepartmentRow {
	out := cloneRows(rows)
	for i := range out {
		if out[i].Category != CategoryScalable {
			continue
		}
		out[i].Customers += IntBetween(src, padMin, padMax)
		out[i].Items += IntBetween(src, padMin, padMax)
	}
	return out
}
