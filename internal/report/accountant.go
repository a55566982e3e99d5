package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// AccountantReport is the summary handed to the station's accountant
type AccountantReport struct {
	RunID       string
	GeneratedAt time.Time
	Station     string
	StationID   string
	OpenDate    time.Time
	CloseDate   time.Time

	Fuel       []ledger.FuelProduct
	FuelVolume int
	FuelTotal  decimal.Decimal

	Cigarettes      ledger.TobaccoEntry
	ECigarettes     ledger.TobaccoEntry
	OtherSales      decimal.Decimal
	TotalStoreSales decimal.Decimal

	Inventory Inventory
}

// BuildAccountantReport assembles the accountant report of a run.
// Other sales is the merchandise net left after the entered cigarette
// and e-cigarette gross.
func BuildAccountantReport(run Run) *AccountantReport {
	res := run.Result
	tobacco := run.Inputs.Overrides

	return &AccountantReport{
		RunID:       run.ID,
		GeneratedAt: run.GeneratedAt,
		Station:     run.Station.Name,
		StationID:   stationID(run.Station),
		OpenDate:    run.OpenDate,
		CloseDate:   run.CloseDate,

		Fuel:       run.Inputs.Fuel,
		FuelVolume: res.FuelVolume,
		FuelTotal:  res.FuelTotal,

		Cigarettes:      tobacco.Cigarettes,
		ECigarettes:     tobacco.ECigarettes,
		OtherSales:      res.Totals.MerchNet.Sub(tobacco.Cigarettes.Gross).Sub(tobacco.ECigarettes.Gross),
		TotalStoreSales: res.Totals.MerchNet,

		Inventory: run.Inventory,
	}
}

// FuelName expands a fuel product code for the accountant report
func FuelName(product string) string {
	switch product {
	case "REG":
		return "Regular"
	case "PLUS":
		return "Plus"
	case "SUPER":
		return "Super"
	case "DIESEL":
		return "Diesel"
	default:
		return product
	}
}
