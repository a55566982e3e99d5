package main

import (
	"flag"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rowJSON struct {
	ID             int             `json:"id"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Customers      int             `json:"customers"`
	Items          int             `json:"items"`
	Gross          decimal.Decimal `json:"gross"`
	Refunds        decimal.Decimal `json:"refunds"`
	Discounts      decimal.Decimal `json:"discounts"`
	NetSales       decimal.Decimal `json:"net_sales"`
	PercentOfSales decimal.Decimal `json:"percent_of_sales"`
}

type computeJSON struct {
	Station       string          `json:"station"`
	StationID     string          `json:"station_id,omitempty"`
	TaxMultiplier decimal.Decimal `json:"tax_multiplier"`
	Seed          uint64          `json:"seed"`
	Rows          []rowJSON       `json:"rows"`
	Totals        struct {
		MerchGross     decimal.Decimal `json:"merch_gross"`
		MerchRefunds   decimal.Decimal `json:"merch_refunds"`
		MerchDiscounts decimal.Decimal `json:"merch_discounts"`
		MerchNet       decimal.Decimal `json:"merch_net"`
		Items          int             `json:"items"`
		Customers      int             `json:"customers"`
	} `json:"totals"`
	Rescale struct {
		Applied bool            `json:"applied"`
		Reason  string          `json:"reason,omitempty"`
		Target  decimal.Decimal `json:"target"`
		Factor  decimal.Decimal `json:"factor"`
	} `json:"rescale"`
	Fuel struct {
		Volume int             `json:"volume"`
		Total  decimal.Decimal `json:"total"`
	} `json:"fuel"`
	Tax struct {
		Rate           decimal.Decimal `json:"rate"`
		SalesTax       decimal.Decimal `json:"sales_tax"`
		InclusiveTotal decimal.Decimal `json:"inclusive_total"`
	} `json:"tax"`
	Payments struct {
		Credit            decimal.Decimal `json:"credit"`
		Debit             decimal.Decimal `json:"debit"`
		Mobile            decimal.Decimal `json:"mobile"`
		Cash              decimal.Decimal `json:"cash"`
		PayOut            decimal.Decimal `json:"pay_out"`
		TotalPaymentSales decimal.Decimal `json:"total_payment_sales"`
		Balanced          bool            `json:"balanced"`
	} `json:"payments"`
	Warnings []string `json:"warnings"`
}

func (a *app) handleCompute(args []string) {
	fs := flag.NewFlagSet("compute", flag.ExitOnError)
	sheetPath := fs.String("sheet", "", "run sheet (yaml, json or toml)")
	departments := fs.String("departments", "", "department table (csv, xlsx or xls)")
	seed := fs.Uint64("seed", 0, "seed for synthesized figures (default: RANDOM_SEED or clock)")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	fs.Parse(args)

	p, err := a.prepare(runOptions{sheetPath: *sheetPath, departments: *departments, seed: *seed, seedSet: isFlagSet(fs, "seed")})
	if err != nil {
		fmt.Printf("❌ Error preparing run: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(toComputeJSON(p), "", "  ")
		if err != nil {
			fmt.Printf("❌ Error encoding result: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printDepartments(p)
	printPayments(p.result)
	printWarnings(p.warnings)
}

func printDepartments(p *prepared) {
	res := p.result

	fmt.Printf("Department Report - %s\n", p.station.Name)
	fmt.Println("════════════════════════════════════════════════════════════════════════════════════════════════════════")
	fmt.Printf("%5s  %-28s  %-8s  %6s  %6s  %7s  %12s  %10s  %10s  %12s\n",
		"Dept#", "Description", "Category", "Cust#", "Items", "% Sales", "Gross", "Refunds", "Discounts", "Net Sales")
	fmt.Println("────────────────────────────────────────────────────────────────────────────────────────────────────────")

	for _, r := range res.Rows {
		desc := truncate(r.Description, 28)
		fmt.Printf("%5d  %-28s  %-8s  %6d  %6d  %7s  %12s  %10s  %10s  %12s\n",
			r.ID, desc, r.Category.String(), r.Customers, r.Items,
			r.PercentOfSales.StringFixed(2),
			r.Gross.StringFixed(2), r.Refunds.StringFixed(2), r.Discounts.StringFixed(2), r.NetSales.StringFixed(2))
	}

	fmt.Println("────────────────────────────────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("%5s  %-28s  %-8s  %6d  %6d  %7s  %12s  %10s  %10s  %12s\n",
		"", "Total Merch Sale", "", res.Totals.Customers, res.Totals.Items, "",
		res.Totals.MerchGross.StringFixed(2), res.Totals.MerchRefunds.StringFixed(2),
		res.Totals.MerchDiscounts.StringFixed(2), res.Totals.MerchNet.StringFixed(2))
	fmt.Println("════════════════════════════════════════════════════════════════════════════════════════════════════════")

	if res.Rescale.Applied {
		fmt.Printf("Rescaled scalable rows by %s to reach %s\n", res.Rescale.Factor.StringFixed(6), formatCurrency(res.Rescale.Target))
	}
	fmt.Println()
}

func printPayments(res *ledger.Result) {
	pay := res.Payments

	fmt.Println("MOP Calculations Summary")
	fmt.Println("══════════════════════════════════════════")
	fmt.Printf("%-26s  %14s\n", "Credit Card", formatCurrency(pay.Credit))
	fmt.Printf("%-26s  %14s\n", "Debit Card", formatCurrency(pay.Debit))
	fmt.Printf("%-26s  %14s\n", "Mobile Payment", formatCurrency(pay.Mobile))
	fmt.Printf("%-26s  %14s\n", "Cash", formatCurrency(pay.Cash))
	fmt.Printf("%-26s  %14s\n", "Pay Out", formatCurrency(pay.PayOut))
	fmt.Println("──────────────────────────────────────────")
	fmt.Printf("%-26s  %14s\n", "Total MOP Sales", formatCurrency(pay.TotalPaymentSales))
	fmt.Printf("%-26s  %14s\n", "Expected (after Pay Out)", formatCurrency(pay.Expected))
	fmt.Printf("%-26s  %14s\n", "Sales Tax ("+res.Tax.Rate.String()+"%)", formatCurrency(res.Tax.SalesTax))
	fmt.Printf("%-26s  %14s\n", "Incl Taxes", formatCurrency(res.Tax.InclusiveTotal))
	fmt.Println("══════════════════════════════════════════")

	if pay.Balanced {
		fmt.Println("✅ MOP amounts balance correctly after pay out deduction!")
	} else {
		fmt.Printf("❌ Difference: %s\n", formatCurrency(pay.Drift.Abs()))
	}
}

func toComputeJSON(p *prepared) computeJSON {
	res := p.result

	out := computeJSON{
		Station:       p.station.Name,
		StationID:     p.station.ID,
		TaxMultiplier: p.station.TaxMultiplier,
		Seed:          p.seed,
		Rows:          make([]rowJSON, 0, len(res.Rows)),
		Warnings:      p.warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	for _, r := range res.Rows {
		out.Rows = append(out.Rows, rowJSON{
			ID:             r.ID,
			Description:    r.Description,
			Category:       r.Category.String(),
			Customers:      r.Customers,
			Items:          r.Items,
			Gross:          r.Gross,
			Refunds:        r.Refunds,
			Discounts:      r.Discounts,
			NetSales:       r.NetSales,
			PercentOfSales: r.PercentOfSales,
		})
	}

	out.Totals.MerchGross = res.Totals.MerchGross
	out.Totals.MerchRefunds = res.Totals.MerchRefunds
	out.Totals.MerchDiscounts = res.Totals.MerchDiscounts
	out.Totals.MerchNet = res.Totals.MerchNet
	out.Totals.Items = res.Totals.Items
	out.Totals.Customers = res.Totals.Customers

	out.Rescale.Applied = res.Rescale.Applied
	out.Rescale.Reason = res.Rescale.Reason
	out.Rescale.Target = res.Rescale.Target
	out.Rescale.Factor = res.Rescale.Factor

	out.Fuel.Volume = res.FuelVolume
	out.Fuel.Total = res.FuelTotal

	out.Tax.Rate = res.Tax.Rate
	out.Tax.SalesTax = res.Tax.SalesTax
	out.Tax.InclusiveTotal = res.Tax.InclusiveTotal

	out.Payments.Credit = res.Payments.Credit
	out.Payments.Debit = res.Payments.Debit
	out.Payments.Mobile = res.Payments.Mobile
	out.Payments.Cash = res.Payments.Cash
	out.Payments.PayOut = res.Payments.PayOut
	out.Payments.TotalPaymentSales = res.Payments.TotalPaymentSales
	out.Payments.Balanced = res.Payments.Balanced

	return out
}
