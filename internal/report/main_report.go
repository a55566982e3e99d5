package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Seemabie/SH-Reports-App/internal/config"
	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// DateLayout is the period date format printed on reports
const DateLayout = "2006-01-02"

// Inventory is the ending fuel inventory in gallons
type Inventory struct {
	Regular int
	Super   int
	Diesel  int
}

// Run is one finished pipeline run together with its context
type Run struct {
	ID          string
	GeneratedAt time.Time
	Station     config.StationProfile
	OpenDate    time.Time
	CloseDate   time.Time
	Inputs      ledger.Inputs
	Result      *ledger.Result
	Inventory   Inventory
}

// Header is the block at the top of each report
type Header struct {
	Station   string
	StationID string
	Period    string
	Close     string
}

// Line is a label and a preformatted value
type Line struct {
	Label string
	Value string
}

// MemoLine is one row of a memo items table
type MemoLine struct {
	Label  string
	Count  string
	Amount string
}

// MainReport contains all data for the department full report
type MainReport struct {
	RunID       string
	GeneratedAt time.Time
	Header      Header

	// Department table
	Rows           []ledger.DepartmentRow
	TotalMerchSale decimal.Decimal
	Totals         ledger.Totals

	// Fuel tier / product report
	Fuel       []ledger.FuelProduct
	FuelVolume int
	FuelTotal  decimal.Decimal

	MOPSales     []Line
	CancelRefund []Line
	PaymentOut   []Line
	PaymentIn    []Line
	MemoLeft     []MemoLine
	MemoRight    []MemoLine
	TotalsBlock  []Line

	// Figures behind the sections above
	TotalToAccountFor decimal.Decimal
	CreditCardBased   decimal.Decimal
	CashBased         decimal.Decimal
	TotalPaymentOut   decimal.Decimal
}

// BuildMainReport assembles the department full report of a run
func BuildMainReport(run Run, extras Extras) *MainReport {
	res := run.Result
	pay := res.Payments

	report := &MainReport{
		RunID:       run.ID,
		GeneratedAt: run.GeneratedAt,
		Header: Header{
			Station:   run.Station.Name,
			StationID: stationID(run.Station),
			Period:    run.OpenDate.Format(DateLayout) + " " + extras.OpenTime,
			Close:     run.CloseDate.Format(DateLayout) + " " + extras.CloseTime,
		},
		Rows:           res.Rows,
		TotalMerchSale: res.Totals.MerchNet.Round(2),
		Totals:         res.Totals,
		Fuel:           run.Inputs.Fuel,
		FuelVolume:     res.FuelVolume,
		FuelTotal:      res.FuelTotal,
	}

	report.MOPSales = []Line{
		{"MOP Sales Total", formatMoney(pay.TotalPaymentSales)},
		{"Credit - Card Based", formatMoney(pay.Credit)},
		{"Debit - Card Based", formatMoney(pay.Debit)},
		{"Mobile - Card Based", formatMoney(pay.Mobile)},
		{"Cash", formatMoney(pay.Cash)},
	}

	// The cancel/refund total is split between credit and cash by the
	// synthesized credit share; cash takes the rounding remainder.
	report.TotalToAccountFor = extras.MOPCancelRefund.Add(extras.OtherRefund)
	report.CreditCardBased = report.TotalToAccountFor.Mul(decimal.NewFromFloat(extras.CreditShare)).Round(2)
	report.CashBased = report.TotalToAccountFor.Sub(report.CreditCardBased)

	report.CancelRefund = []Line{
		{"MOP Cancel Refund", formatMoney(extras.MOPCancelRefund)},
		{"Other Refund", formatMoney(extras.OtherRefund)},
		{"Payment Out", formatMoney(decimal.Zero)},
		{"Payment In", formatMoney(decimal.Zero)},
		{"Total to Account For", formatMoney(report.TotalToAccountFor)},
		{"CREDIT - Card Based", formatMoney(report.CreditCardBased)},
		{"CASH", formatMoney(report.CashBased)},
		{"Tot MOP Cancel/Refunds", formatMoney(report.TotalToAccountFor)},
	}

	report.TotalPaymentOut = pay.PayOut.Add(extras.SafeDrops)
	report.PaymentOut = []Line{
		{"Cash Back", "0"},
		{"Pay Out", formatMoney(pay.PayOut)},
		{"Adjust for Vendor Payments", formatMoney(decimal.Zero)},
		{"Change/Check", formatMoney(decimal.Zero)},
		{"In House", formatMoney(decimal.Zero)},
		{"Safe Drops", formatMoney(extras.SafeDrops)},
		{"CASH", formatMoney(extras.SafeDrops)},
		{"Tot Payment Out", formatMoney(report.TotalPaymentOut)},
	}

	report.PaymentIn = []Line{
		{"Cash Back Cancel", "0"},
		{"Pay In", "0"},
		{"In House", "0"},
		{"Safe Loans", "0"},
		{"Tot Payment In", "0"},
	}

	report.MemoLeft = []MemoLine{
		{"Items", formatCount(res.Totals.Items), ""},
		{"Customer", formatCount(res.Totals.Customers), ""},
		memoLine("Void Lines", extras.VoidLines),
		memoLine("Void Tickets", extras.VoidTickets),
		memoLine("Positive", extras.Positive),
		memoLine("Negative", extras.Negative),
		{"Prepaid Recharge", "0", "0"},
	}

	report.MemoRight = []MemoLine{
		memoLine("Suspended", extras.Suspended),
		memoLine("Suspend/Void", extras.SuspendVoid),
		{"Coin Dispenser", "0", formatMoney(decimal.Zero)},
		{"Vendor Payments", "0", formatMoney(decimal.Zero)},
		{"Safe Drop Cancels", "0", formatMoney(decimal.Zero)},
		{"Prepaid Activation", "0", formatMoney(decimal.Zero)},
	}

	report.TotalsBlock = []Line{
		{"Cash Back Fee", "0"},
		{"Cancel/Refund Cash Back Fee", "0"},
		{"Debit Fee", "0"},
		{"Fuel Sales", formatMoney(res.FuelTotal)},
		{"Merch Sales", formatMoney(res.Totals.MerchNet)},
		{"FUEL DISCOUNT", "0"},
		{"Refund Taxes", "0"},
		{"Sales Taxes", formatMoney(res.Tax.SalesTax)},
		{"Tot Taxes", formatMoney(res.Tax.TotalTaxes)},
		{"Incl Taxes", formatMoney(res.Tax.InclusiveTotal)},
	}

	return report
}

func memoLine(label string, m Memo) MemoLine {
	return MemoLine{Label: label, Count: formatCount(m.Count), Amount: formatMoney(m.Amount)}
}

func stationID(p config.StationProfile) string {
	if p.ID == "" {
		return "N/A"
	}
	return p.ID
}

// Filename builds the download name for a report, e.g.
// Main_Shell___Syed_Empires_2025_03_03.pdf
func Filename(kind, station string, open time.Time) string {
	name := strings.NewReplacer(" ", "_", "-", "_").Replace(station)
	return kind + "_" + name + "_" + open.Format("2006_01_02") + ".pdf"
}

// MainFilename returns the file name of the main report
func MainFilename(station string, open time.Time) string {
	return Filename("Main", station, open)
}

// AccountantFilename returns the file name of the accountant report
func AccountantFilename(station string, open time.Time) string {
	return Filename("Accountant", station, open)
}
