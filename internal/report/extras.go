package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// Memo is a count and amount pair in the memo items sections
type Memo struct {
	Count  int
	Amount decimal.Decimal
}

// Extras are the register figures the main report carries that are not
// derived from the department table. They are synthesized per run.
type Extras struct {
	OpenTime  string
	CloseTime string

	SafeDrops       decimal.Decimal
	MOPCancelRefund decimal.Decimal
	OtherRefund     decimal.Decimal
	CreditShare     float64

	VoidLines   Memo
	VoidTickets Memo
	Positive    Memo
	Negative    Memo
	Suspended   Memo
	SuspendVoid Memo
}

// GenerateExtras draws a fresh set of extras from src.
func GenerateExtras(src ledger.Source) Extras {
	return Extras{
		OpenTime:  registerTime(src),
		CloseTime: registerTime(src),

		SafeDrops:       ledger.UniformAmount(src, 30000, 49000),
		MOPCancelRefund: ledger.UniformAmount(src, 89, 199),
		OtherRefund:     ledger.UniformAmount(src, 12, 99),
		CreditShare:     ledger.Uniform(src, 0.2, 0.8),

		VoidLines:   memo(src, 50, 250, 2000, 5000),
		VoidTickets: memo(src, 15, 95, 500, 2000),
		Positive:    memo(src, 10, 60, 300, 900),
		Negative:    memo(src, 10, 60, 300, 900),
		Suspended:   memo(src, 3, 99, 119, 799),
		SuspendVoid: memo(src, 1, 29, 11, 199),
	}
}

// registerTime returns a closing time between 22:01 and 23:49
func registerTime(src ledger.Source) string {
	hour := ledger.IntBetween(src, 22, 23)
	var minute int
	if hour == 22 {
		minute = ledger.IntBetween(src, 1, 59)
	} else {
		minute = ledger.IntBetween(src, 0, 49)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func memo(src ledger.Source, minCount, maxCount int, minAmount, maxAmount float64) Memo {
	return Memo{
		Count:  ledger.IntBetween(src, minCount, maxCount),
		Amount: ledger.UniformAmount(src, minAmount, maxAmount),
	}
}
