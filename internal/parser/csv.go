package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

// TableParser reads department tables from CSV, XLSX or XLS exports
type TableParser struct {
	SkipEmptyRows bool
}

func NewTableParser() *TableParser {
	return &TableParser{
		SkipEmptyRows: true,
	}
}

// ParseDepartments reads a department table. The format is picked from
// the filename extension; anything that is not .xlsx or .xls is read as CSV.
func (p *TableParser) ParseDepartments(r io.Reader, filename string) (*ParseResult, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		records, err = readSpreadsheet(r, filename)
	default:
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filepath.Base(filename))
	}

	return p.parseRecords(records)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return records, nil
}

func (p *TableParser) parseRecords(records [][]string) (*ParseResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("department table is empty")
	}

	cols := resolveColumns(buildColumnMap(records[0]))
	if cols["description"] < 0 {
		return nil, &ValidationError{Column: "Description", Err: fmt.Errorf("required column is missing")}
	}

	result := &ParseResult{
		Rows: make([]ledger.DepartmentRow, 0, len(records)-1),
	}

	for i, record := range records[1:] {
		rowNum := i + 2

		if p.SkipEmptyRows && isBlank(record) {
			continue
		}

		row, warnings := parseDepartmentRow(record, cols, rowNum)
		result.Warnings = append(result.Warnings, warnings...)
		if row == nil {
			continue
		}
		result.Rows = append(result.Rows, *row)
	}

	return result, nil
}

// parseDepartmentRow converts a record into a row. Numeric cells that do
// not parse become zero and produce a warning; rows without a description
// are skipped.
func parseDepartmentRow(record []string, cols map[string]int, rowNum int) (*ledger.DepartmentRow, []string) {
	var warnings []string

	description := getField(record, cols["description"])
	if description == "" {
		return nil, []string{fmt.Sprintf("row %d: no description, skipped", rowNum)}
	}

	count := func(field, column string) int {
		raw := getField(record, cols[field])
		v, ok := parseCount(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d, column %s: '%s' is not a number, using 0", rowNum, column, raw))
		}
		return v
	}
	amount := func(field, column string) decimal.Decimal {
		raw := getField(record, cols[field])
		v, ok := parseNumber(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d, column %s: '%s' is not a number, using 0", rowNum, column, raw))
		}
		return v.Round(2)
	}

	row := ledger.NewDepartmentRow(
		count("id", "Dept#"),
		description,
		count("customers", "Cust#"),
		count("items", "Items"),
		amount("gross", "Gross"),
		amount("refunds", "Refunds"),
		amount("discounts", "Discounts"),
	)
	return &row, warnings
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// departmentHeader is the column layout written by WriteDepartments
var departmentHeader = []string{"Dept#", "Description", "Cust#", "Items", "Gross", "Refunds", "Discounts", "Net Sales"}

// WriteDepartments writes rows as a CSV that ParseDepartments reads back.
func WriteDepartments(w io.Writer, rows []ledger.DepartmentRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(departmentHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.ID),
			r.Description,
			strconv.Itoa(r.Customers),
			strconv.Itoa(r.Items),
			r.Gross.StringFixed(2),
			r.Refunds.StringFixed(2),
			r.Discounts.StringFixed(2),
			r.NetSales.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing department %d: %w", r.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
