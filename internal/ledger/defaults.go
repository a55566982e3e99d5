package ledger

import "github.com/shopspring/decimal"

// defaultDepartments is the register's department list with the counts
// and gross of a typical week. Refunds and discounts are zero.
var defaultDepartments = []struct {
	id          int
	description string
	customers   int
	items       int
	gross       string
}{
	{1, "CIGARETTES", 0, 0, "0.00"},
	{2, "Grocery TAX", 89, 111, "524.06"},
	{3, "BEER", 1395, 243, "26646.77"},
	{4, "DAIRY", 95, 102, "584.29"},
	{5, "SNACKS", 248, 266, "2907.31"},
	{6, "AUTO", 166, 207, "1806.08"},
	{7, "CONDOM", 53, 68, "364.58"},
	{8, "WATER", 613, 736, "2505.56"},
	{9, "TOBACCO", 154, 251, "657.28"},
	{10, "COFFEE", 322, 552, "1131.98"},
	{11, "PILLS", 47, 57, "323.28"},
	{12, "MEDICINE", 50, 64, "252.40"},
	{13, "ENERGY DRINKS", 1026, 1328, "2865.07"},
	{14, "GROCERY", 48, 88, "330.65"},
	{15, "Bakery", 127, 177, "1780.11"},
	{16, "CHEW TOBACCO", 720, 927, "1842.39"},
	{17, "SODA", 628, 746, "2788.85"},
	{18, "CANDY", 842, 1124, "772.43"},
	{19, "CHIPS", 341, 410, "2001.39"},
	{20, "PHONE ACC", 67, 73, "824.25"},
	{21, "NEWS PAPER", 150, 162, "513.52"},
	{22, "ICE CREAM", 96, 145, "1365.78"},
	{23, "PHONE CARDS", 26, 37, "93.48"},
	{24, "CIGAR", 134, 165, "313.32"},
	{25, "ICE", 120, 202, "311.20"},
	{26, "DELI", 90, 123, "421.64"},
	{27, "MILK SHAKE", 90, 113, "767.49"},
	{28, "GLOVES", 42, 54, "328.70"},
	{29, "SANTIZER", 25, 43, "81.26"},
	{30, "E-Cigarette", 0, 0, "0.00"},
	{31, "JUICE", 213, 678, "1380.08"},
	{32, "HOT FOOD", 44, 56, "84.34"},
	{33, "Honey", 62, 74, "886.44"},
	{34, "ICED COFFEE", 127, 152, "767.49"},
	{100, "MISC", 218, 277, "1776.51"},
	{9998, "MANUAL FUEL DE", 5924, 6940, "0.00"},
	{9999, "FUEL DEPOSIT", 0, 0, "0.00"},
}

// DefaultDepartments returns a fresh copy of the built-in department table.
func DefaultDepartments() []DepartmentRow {
	rows := make([]DepartmentRow, 0, len(defaultDepartments))
	for _, d := range defaultDepartments {
		rows = append(rows, NewDepartmentRow(
			d.id,
			d.description,
			d.customers,
			d.items,
			decimal.RequireFromString(d.gross),
			decimal.Zero,
			decimal.Zero,
		))
	}
	return rows
}
