package ledger

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentOfSales sets each merchandise row's share of merchandise gross,
// rounded to 2 places. Fuel rows get 0, and so does everything when the
// merchandise gross is zero.
func PercentOfSales(rows []DepartmentRow) []DepartmentRow {
	out := cloneRows(rows)

	total := decimal.Zero
	for _, r := range out {
		if r.Category.IsMerchandise() {
			total = total.Add(r.Gross)
		}
	}

	for i := range out {
		if !out[i].Category.IsMerchandise() || total.IsZero() {
			out[i].PercentOfSales = decimal.Zero
			continue
		}
		out[i].PercentOfSales = out[i].Gross.Div(total).Mul(hundred).Round(2)
	}
	return out
}
