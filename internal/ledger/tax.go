package ledger

import "github.com/shopspring/decimal"

// TaxSummary holds the sales tax figures of a run
type TaxSummary struct {
	Multiplier     decimal.Decimal
	Rate           decimal.Decimal // percent, e.g. 8.875
	SalesTax       decimal.Decimal
	TotalTaxes     decimal.Decimal
	InclusiveTotal decimal.Decimal
}

// TaxRate converts a station multiplier such as 1.08875 into a percent
// rate rounded to 3 places.
func TaxRate(multiplier decimal.Decimal) decimal.Decimal {
	return multiplier.Sub(decimal.NewFromInt(1)).Mul(hundred).Round(3)
}

// ComputeTax applies the station rate to merchandise net sales.
func ComputeTax(merchNet, multiplier decimal.Decimal) TaxSummary {
	rate := TaxRate(multiplier)
	salesTax := merchNet.Mul(rate).Div(hundred).Round(2)

	return TaxSummary{
		Multiplier:     multiplier,
		Rate:           rate,
		SalesTax:       salesTax,
		TotalTaxes:     salesTax,
		InclusiveTotal: merchNet.Add(salesTax).Round(2),
	}
}
