package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney formats an amount as 1,234.56; negatives are wrapped in
// parentheses.
func formatMoney(amount decimal.Decimal) string {
	return money(amount, "")
}

// formatDollars formats an amount as $1,234.56
func formatDollars(amount decimal.Decimal) string {
	return money(amount, "$")
}

func money(amount decimal.Decimal, prefix string) string {
	fixed := amount.Round(2).Abs().StringFixed(2)
	intPart, decPart, _ := strings.Cut(fixed, ".")

	formatted := fmt.Sprintf("%s%s.%s", prefix, groupThousands(intPart), decPart)
	if amount.Round(2).IsNegative() {
		return "(" + formatted + ")"
	}
	return formatted
}

// formatCount formats an integer with thousands separators
func formatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(fmt.Sprintf("%d", -n))
	}
	return groupThousands(fmt.Sprintf("%d", n))
}

// formatPercent formats a percent-of-sales value with two decimals
func formatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}

// truncate shortens a string with ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
