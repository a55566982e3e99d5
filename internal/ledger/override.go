package ledger

import "github.com/shopspring/decimal"

const (
	customerFactorMin = 0.80
	customerFactorMax = 0.90
)

// Overrides are the operator-entered tobacco totals
type Overrides struct {
	Cigarettes  TobaccoEntry
	ECigarettes TobaccoEntry
}

// SynthesizeCustomers estimates a customer count from packets sold. The
// register does not report it for tobacco, so it is drawn as a share of
// items in [0.80, 0.90).
func SynthesizeCustomers(items int, src Source) int {
	if items <= 0 {
		return 0
	}
	return int(float64(items) * Uniform(src, customerFactorMin, customerFactorMax))
}

// ApplyOverrides replaces counts and gross of tobacco rows with the
// operator totals. The customer count is drawn once per category so that
// duplicate rows of a category agree.
func ApplyOverrides(rows []DepartmentRow, o Overrides, src Source) []DepartmentRow {
	out := cloneRows(rows)

	cigCustomers := SynthesizeCustomers(o.Cigarettes.Items, src)
	ecigCustomers := SynthesizeCustomers(o.ECigarettes.Items, src)

	for i := range out {
		switch out[i].Category {
		case CategoryCigarette:
			out[i] = override(out[i], o.Cigarettes, cigCustomers)
		case CategoryECigarette:
			out[i] = override(out[i], o.ECigarettes, ecigCustomers)
		}
	}
	return out
}

func override(r DepartmentRow, e TobaccoEntry, customers int) DepartmentRow {
	r.Customers = customers
	r.Items = e.Items
	r.Gross = e.Gross
	return r.withNet()
}

// tobaccoNet sums net sales over cigarette and e-cigarette rows
func tobaccoNet(rows []DepartmentRow) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		if r.Category.IsTobacco() {
			sum = sum.Add(r.NetSales)
		}
	}
	return sum
}
