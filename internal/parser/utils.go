package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// columnAliases maps each department field to the header spellings seen
// in register exports
var columnAliases = map[string][]string{
	"id":          {"dept#", "dept #", "dept", "department", "dept no", "id"},
	"description": {"description", "desc", "department name", "name"},
	"customers":   {"cust#", "cust #", "customers", "customer count", "cust"},
	"items":       {"items", "item count", "qty", "quantity"},
	"gross":       {"gross", "gross sales", "gross amount"},
	"refunds":     {"refunds", "refund"},
	"discounts":   {"discounts", "discount"},
}

// buildColumnMap creates a case-insensitive map of column name → index
func buildColumnMap(headers []string) map[string]int {
	m := make(map[string]int)
	for i, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
		if _, exists := m[normalized]; !exists {
			m[normalized] = i
		}
	}
	return m
}

// resolveColumns finds the index of every known field, -1 when absent
func resolveColumns(colMap map[string]int) map[string]int {
	resolved := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		resolved[field] = -1
		for _, alias := range aliases {
			if idx, ok := colMap[alias]; ok {
				resolved[field] = idx
				break
			}
		}
	}
	return resolved
}

// getField safely retrieves a field from a row by resolved index
func getField(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseNumber coerces a cell to a decimal. Empty cells are zero; the
// second return is false when the cell held something unparsable.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = cleanCurrency(s)
	if s == "" || strings.EqualFold(s, "nan") || s == "-" {
		return decimal.Zero, true
	}

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return val, true
}

// parseCount coerces a cell to an integer count, accepting "12.0"
func parseCount(s string) (int, bool) {
	val, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return int(val.IntPart()), true
}

// cleanCurrency removes $ and commas from currency strings
// Also handles accounting notation: (123.45) → -123.45
func cleanCurrency(s string) string {
	s = strings.TrimSpace(s)

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimPrefix(s, "(")
		s = strings.TrimSuffix(s, ")")
		s = strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative && s != "" && s != "0" && s != "0.00" {
		s = "-" + s
	}

	return s
}
