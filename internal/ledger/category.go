package ledger

import "strings"

// Category partitions department rows. Every row has exactly one.
type Category int

const (
	CategoryScalable Category = iota
	CategoryFuel
	CategoryCigarette
	CategoryECigarette
)

func (c Category) String() string {
	switch c {
	case CategoryFuel:
		return "fuel"
	case CategoryCigarette:
		return "cigarette"
	case CategoryECigarette:
		return "e-cigarette"
	default:
		return "scalable"
	}
}

// IsMerchandise reports whether rows of this category count toward merch totals
func (c Category) IsMerchandise() bool {
	return c != CategoryFuel
}

// IsTobacco reports whether the category receives manual overrides
func (c Category) IsTobacco() bool {
	return c == CategoryCigarette || c == CategoryECigarette
}

var (
	// FuelKeywords exclude a row from merchandise
	FuelKeywords = []string{"FUEL", "FUEL DEPOSIT", "MANUAL FUEL"}

	// ManualFuelDepositKeyword marks the single fuel row that receives the
	// externally supplied fuel total.
	ManualFuelDepositKeyword = "MANUAL FUEL DE"

	CigaretteKeyword  = "CIGARETTES"
	ECigaretteKeyword = "E-CIGARETTE"
)

// Classify returns the category of a description and whether the row is
// the manual fuel deposit. Fuel keywords win over tobacco keywords, and
// the e-cigarette check runs before the cigarette check since
// "E-CIGARETTES" contains "CIGARETTES".
func Classify(description string) (Category, bool) {
	upper := strings.ToUpper(description)

	for _, k := range FuelKeywords {
		if strings.Contains(upper, k) {
			return CategoryFuel, strings.Contains(upper, ManualFuelDepositKeyword)
		}
	}

	switch {
	case strings.Contains(upper, ECigaretteKeyword):
		return CategoryECigarette, false
	case strings.Contains(upper, CigaretteKeyword):
		return CategoryCigarette, false
	default:
		return CategoryScalable, false
	}
}

// Categorize returns a copy of rows with Category and ManualFuelDeposit set.
func Categorize(rows []DepartmentRow) []DepartmentRow {
	out := cloneRows(rows)
	for i := range out {
		out[i].Category, out[i].ManualFuelDeposit = Classify(out[i].Description)
	}
	return out
}

// Partition groups row indexes by category.
func Partition(rows []DepartmentRow) map[Category][]int {
	groups := make(map[Category][]int, 4)
	for i, r := range rows {
		groups[r.Category] = append(groups[r.Category], i)
	}
	return groups
}
