package ledger

import "github.com/shopspring/decimal"

// InjectFuel writes the fuel total into the manual fuel deposit row(s).
func InjectFuel(rows []DepartmentRow, fuelTotal decimal.Decimal) []DepartmentRow {
	out := cloneRows(rows)
	for i := range out {
		if !out[i].ManualFuelDeposit {
			continue
		}
		out[i].Gross = fuelTotal
		out[i].Refunds = decimal.Zero
		out[i].Discounts = decimal.Zero
		out[i].NetSales = fuelTotal
	}
	return out
}
