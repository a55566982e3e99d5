package ledger

import (
	"github.com/shopspring/decimal"
)

// DepartmentRow is one line of the department report
type DepartmentRow struct {
	ID             int
	Description    string
	Customers      int
	Items          int
	Gross          decimal.Decimal
	Refunds        decimal.Decimal
	Discounts      decimal.Decimal
	NetSales       decimal.Decimal
	PercentOfSales decimal.Decimal

	Category          Category
	ManualFuelDeposit bool
}

// Net returns gross minus refunds minus discounts
func (r DepartmentRow) Net() decimal.Decimal {
	return r.Gross.Sub(r.Refunds).Sub(r.Discounts)
}

// withNet returns the row with NetSales brought in line with its amounts
func (r DepartmentRow) withNet() DepartmentRow {
	r.NetSales = r.Net()
	return r
}

// NewDepartmentRow builds a row with NetSales derived from the amounts.
func NewDepartmentRow(id int, description string, customers, items int, gross, refunds, discounts decimal.Decimal) DepartmentRow {
	return DepartmentRow{
		ID:          id,
		Description: description,
		Customers:   customers,
		Items:       items,
		Gross:       gross,
		Refunds:     refunds,
		Discounts:   discounts,
	}.withNet()
}

// TobaccoEntry is an operator-entered total for cigarettes or e-cigarettes
type TobaccoEntry struct {
	Items int
	Gross decimal.Decimal
}

// FuelProduct is one line of the fuel tier / product report
type FuelProduct struct {
	Product string
	Volume  int
	Amount  decimal.Decimal
}

// MethodOfPayment holds the manually entered card and mobile tender totals
type MethodOfPayment struct {
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Mobile decimal.Decimal
}

// Total returns credit + debit + mobile
func (m MethodOfPayment) Total() decimal.Decimal {
	return m.Credit.Add(m.Debit).Add(m.Mobile)
}

// FuelTotals sums volume and amount across fuel products.
func FuelTotals(products []FuelProduct) (volume int, amount decimal.Decimal) {
	amount = decimal.Zero
	for _, p := range products {
		volume += p.Volume
		amount = amount.Add(p.Amount)
	}
	return volume, amount
}

func cloneRows(rows []DepartmentRow) []DepartmentRow {
	out := make([]DepartmentRow, len(rows))
	copy(out, rows)
	return out
}
