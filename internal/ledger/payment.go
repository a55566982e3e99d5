package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest drift accepted between the tender
// breakdown and the expected total.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// PaymentInput carries everything the reconciler needs
type PaymentInput struct {
	MerchNet  decimal.Decimal
	FuelTotal decimal.Decimal
	SalesTax  decimal.Decimal
	Manual    MethodOfPayment
	PayOut    decimal.Decimal
}

// PaymentBreakdown is the method-of-payment split of total sales
type PaymentBreakdown struct {
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Mobile decimal.Decimal
	Cash   decimal.Decimal
	PayOut decimal.Decimal

	TotalPaymentSales decimal.Decimal
	Expected          decimal.Decimal // total payment sales minus pay-out
	Drift             decimal.Decimal
	Balanced          bool
}

// TenderTotal returns credit + debit + mobile + cash.
func (p PaymentBreakdown) TenderTotal() decimal.Decimal {
	return p.Credit.Add(p.Debit).Add(p.Mobile).Add(p.Cash)
}

// Warning returns the operator message for an unbalanced breakdown
func (p PaymentBreakdown) Warning() string {
	if p.Balanced {
		return ""
	}
	return fmt.Sprintf("MOP total (%s) doesn't match expected after pay out (%s); cash was clamped at zero",
		p.TenderTotal().StringFixed(2), p.Expected.StringFixed(2))
}

// ReconcilePayments back-solves cash from the total payment sales. Cash
// absorbs any residual and never goes negative, so a mismatch can only
// mean the manual entries and pay-out exceed the sales.
func ReconcilePayments(in PaymentInput) PaymentBreakdown {
	total := in.MerchNet.Add(in.FuelTotal).Add(in.SalesTax)

	cash := total.Sub(in.Manual.Total()).Sub(in.PayOut)
	if cash.IsNegative() {
		cash = decimal.Zero
	}

	p := PaymentBreakdown{
		Credit:            in.Manual.Credit,
		Debit:             in.Manual.Debit,
		Mobile:            in.Manual.Mobile,
		Cash:              cash,
		PayOut:            in.PayOut,
		TotalPaymentSales: total,
		Expected:          total.Sub(in.PayOut),
	}
	p.Drift = p.TenderTotal().Sub(p.Expected).Abs()
	p.Balanced = p.Drift.LessThanOrEqual(BalanceTolerance)
	return p
}
