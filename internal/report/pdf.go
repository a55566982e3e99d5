package report

import (
	"fmt"
	"io"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

const (
	fontMono     = "gomono"
	fontMonoBold = "gomono-bold"
	fontSans     = "goregular"
	fontSansBold = "gobold"

	margin = 36.0
)

// PDFRenderer writes reports as Letter-sized PDF documents
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// column describes one table column. For right-aligned columns X is the
// right edge.
type column struct {
	Header string
	X      float64
	Right  bool
}

// document wraps a gopdf document with a cursor and keeps the first
// error it hits so layout code can stay linear.
type document struct {
	pdf     *gopdf.GoPdf
	width   float64
	height  float64
	y       float64
	regular string
	bold    string
	size    float64
	err     error
}

func newDocument(regular, bold string, size float64) (*document, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeLetter})

	fonts := []struct {
		name string
		data []byte
	}{
		{fontMono, gomono.TTF},
		{fontMonoBold, gomonobold.TTF},
		{fontSans, goregular.TTF},
		{fontSansBold, gobold.TTF},
	}
	for _, f := range fonts {
		if err := pdf.AddTTFFontData(f.name, f.data); err != nil {
			return nil, fmt.Errorf("loading font %s: %w", f.name, err)
		}
	}

	pdf.AddPage()

	return &document{
		pdf:     pdf,
		width:   gopdf.PageSizeLetter.W,
		height:  gopdf.PageSizeLetter.H,
		y:       margin,
		regular: regular,
		bold:    bold,
		size:    size,
	}, nil
}

func (d *document) font(bold bool, size float64) {
	if d.err != nil {
		return
	}
	family := d.regular
	if bold {
		family = d.bold
	}
	if err := d.pdf.SetFont(family, "", size); err != nil {
		d.err = fmt.Errorf("setting font: %w", err)
	}
}

func (d *document) cell(x float64, text string) {
	if d.err != nil {
		return
	}
	d.pdf.SetX(x)
	d.pdf.SetY(d.y)
	if err := d.pdf.Cell(nil, text); err != nil {
		d.err = fmt.Errorf("writing %q: %w", text, err)
	}
}

func (d *document) measure(text string) float64 {
	if d.err != nil {
		return 0
	}
	w, err := d.pdf.MeasureTextWidth(text)
	if err != nil {
		d.err = fmt.Errorf("measuring %q: %w", text, err)
		return 0
	}
	return w
}

func (d *document) rightCell(right float64, text string) {
	d.cell(right-d.measure(text), text)
}

func (d *document) centered(text string, bold bool, size float64) {
	d.font(bold, size)
	d.cell((d.width-d.measure(text))/2, text)
	d.advance(size + 4)
}

// need starts a new page when fewer than h points are left on this one
func (d *document) need(h float64) {
	if d.y+h <= d.height-margin {
		return
	}
	d.pdf.AddPage()
	d.y = margin
}

func (d *document) advance(h float64) {
	d.y += h
}

func (d *document) rule(dotted bool) {
	if d.err != nil {
		return
	}
	d.pdf.SetLineWidth(0.6)
	if dotted {
		d.pdf.SetLineType("dotted")
	} else {
		d.pdf.SetLineType("solid")
	}
	d.pdf.Line(margin, d.y, d.width-margin, d.y)
	d.pdf.SetLineType("solid")
}

func (d *document) sectionTitle(title string) {
	d.need(3 * d.size)
	d.advance(6)
	d.font(true, d.size+2)
	d.cell(margin, title)
	d.advance(d.size + 6)
}

func (d *document) row(cols []column, values []string, bold bool) {
	d.need(d.size + 4)
	d.font(bold, d.size)
	for i, c := range cols {
		if i >= len(values) || values[i] == "" {
			continue
		}
		if c.Right {
			d.rightCell(c.X, values[i])
		} else {
			d.cell(c.X, values[i])
		}
	}
	d.advance(d.size + 4)
}

func (d *document) header(cols []column) {
	values := make([]string, len(cols))
	for i, c := range cols {
		values[i] = c.Header
	}
	d.row(cols, values, true)
}

var lineColumns = []column{
	{X: margin},
	{X: 330, Right: true},
}

func (d *document) lines(lines []Line) {
	for _, l := range lines {
		d.row(lineColumns, []string{l.Label, l.Value}, false)
	}
}

func (d *document) writeTo(w io.Writer) error {
	if d.err != nil {
		return d.err
	}
	if _, err := d.pdf.WriteTo(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

var departmentColumns = []column{
	{Header: "Dept#", X: margin},
	{Header: "Description", X: 66},
	{Header: "Cust#", X: 262, Right: true},
	{Header: "Items", X: 302, Right: true},
	{Header: "% Sales", X: 345, Right: true},
	{Header: "Gross", X: 405, Right: true},
	{Header: "Refunds", X: 455, Right: true},
	{Header: "Discounts", X: 510, Right: true},
	{Header: "Net Sales", X: 576, Right: true},
}

var fuelColumns = []column{
	{Header: "Product", X: margin},
	{Header: "Volume", X: 230, Right: true},
	{Header: "Amount", X: 330, Right: true},
}

var memoColumns = []column{
	{Header: "Category", X: margin},
	{Header: "Count", X: 230, Right: true},
	{Header: "Amount", X: 330, Right: true},
}

// RenderMain writes the department full report
func (r *PDFRenderer) RenderMain(w io.Writer, report *MainReport) error {
	d, err := newDocument(fontMono, fontMonoBold, 7.5)
	if err != nil {
		return err
	}

	d.centered(report.Header.Station, true, 11)
	d.centered("Store ID: "+report.Header.StationID, false, 9)
	d.centered(fmt.Sprintf("Period: %s to %s", report.Header.Period, report.Header.Close), false, 9)
	d.centered("Department Full Report", false, 9)
	d.rule(false)

	d.sectionTitle("DEPARTMENT REPORT")
	d.header(departmentColumns)
	for _, row := range report.Rows {
		d.row(departmentColumns, departmentValues(row), false)
		d.rule(true)
	}
	d.row(departmentColumns, []string{"", "Total Merch Sale", "", "", "", "", "", "", formatMoney(report.TotalMerchSale)}, true)
	d.rule(false)
	d.advance(4)
	d.lines([]Line{
		{"Total Discounts:", formatMoney(report.Totals.MerchDiscounts)},
		{"Total Refunds:", formatMoney(report.Totals.MerchRefunds)},
		{"Total Gross:", formatMoney(report.Totals.MerchGross)},
		{"Total Net Sales:", formatMoney(report.Totals.MerchNet)},
	})
	d.rule(false)

	d.sectionTitle("MOP SALES")
	d.lines(report.MOPSales)
	d.rule(false)

	d.sectionTitle("FUEL TIER / PRODUCT REPORT")
	d.header(fuelColumns)
	for _, p := range report.Fuel {
		d.row(fuelColumns, []string{p.Product, formatCount(p.Volume), formatMoney(p.Amount)}, false)
	}
	d.row(fuelColumns, []string{"Total", formatCount(report.FuelVolume), formatMoney(report.FuelTotal)}, true)
	d.rule(false)

	d.sectionTitle("MOP CANCEL/REFUND")
	d.lines(report.CancelRefund)
	d.rule(false)

	d.sectionTitle("PAYMENT OUT")
	d.lines(report.PaymentOut)
	d.rule(false)

	d.sectionTitle("PAYMENT IN")
	d.lines(report.PaymentIn)
	d.rule(false)

	d.sectionTitle("MEMO ITEMS (LEFT)")
	d.memo(report.MemoLeft)
	d.rule(false)

	d.sectionTitle("MEMO ITEMS (RIGHT)")
	d.memo(report.MemoRight)
	d.rule(false)

	d.sectionTitle("TOTALS")
	d.lines(report.TotalsBlock)
	d.rule(false)

	d.advance(10)
	d.centered("*** END OF REPORT ***", false, 9)
	if report.RunID != "" {
		d.centered("Run "+report.RunID, false, 6)
	}

	return d.writeTo(w)
}

func (d *document) memo(lines []MemoLine) {
	d.header(memoColumns)
	for _, m := range lines {
		d.row(memoColumns, []string{m.Label, m.Count, m.Amount}, false)
	}
}

func departmentValues(row ledger.DepartmentRow) []string {
	return []string{
		fmt.Sprintf("%d", row.ID),
		truncate(row.Description, 36),
		formatCount(row.Customers),
		formatCount(row.Items),
		formatPercent(row.PercentOfSales),
		formatMoney(row.Gross),
		formatMoney(row.Refunds),
		formatMoney(row.Discounts),
		formatMoney(row.NetSales),
	}
}

var accountantColumns = []column{
	{X: margin},
	{X: 330, Right: true},
	{X: 480, Right: true},
}

// RenderAccountant writes the accountant report
func (r *PDFRenderer) RenderAccountant(w io.Writer, report *AccountantReport) error {
	d, err := newDocument(fontSans, fontSansBold, 10)
	if err != nil {
		return err
	}

	d.centered("Accountant's Report", true, 18)
	d.centered(report.Station, true, 14)
	d.centered("Store ID: "+report.StationID, false, 10)
	d.centered(fmt.Sprintf("Report Period: %s to %s",
		report.OpenDate.Format(DateLayout), report.CloseDate.Format(DateLayout)), false, 10)
	d.advance(10)

	d.sectionTitle("Fuel Sales Summary")
	d.row(accountantColumns, []string{"Product", "Gallons", "Amount"}, true)
	d.rule(false)
	for _, p := range report.Fuel {
		d.row(accountantColumns, []string{FuelName(p.Product), formatCount(p.Volume), formatDollars(p.Amount)}, false)
	}
	d.row(accountantColumns, []string{"TOTAL", formatCount(report.FuelVolume), formatDollars(report.FuelTotal)}, true)
	d.advance(6)

	d.sectionTitle("Store Sales Summary")
	d.row(accountantColumns, []string{"Category", "Details", "Amount"}, true)
	d.rule(false)
	d.row(accountantColumns, []string{"Cigarettes", fmt.Sprintf("%s packets", formatCount(report.Cigarettes.Items)), formatDollars(report.Cigarettes.Gross)}, false)
	d.row(accountantColumns, []string{"E-Cigarettes", fmt.Sprintf("%s packets", formatCount(report.ECigarettes.Items)), formatDollars(report.ECigarettes.Gross)}, false)
	d.row(accountantColumns, []string{"Other Sales", "-", formatDollars(report.OtherSales)}, false)
	d.row(accountantColumns, []string{"TOTAL STORE SALES", "-", formatDollars(report.TotalStoreSales)}, true)
	d.advance(6)

	d.sectionTitle("Ending Inventory - " + report.CloseDate.Format("01/02/2006"))
	d.row(accountantColumns, []string{"Fuel Type", "Gallons"}, true)
	d.rule(false)
	d.row(accountantColumns, []string{"Regular", formatCount(report.Inventory.Regular)}, false)
	d.row(accountantColumns, []string{"Super", formatCount(report.Inventory.Super)}, false)
	d.row(accountantColumns, []string{"Diesel", formatCount(report.Inventory.Diesel)}, false)
	d.advance(6)

	d.sectionTitle("Summary")
	d.rule(false)
	d.row(accountantColumns, []string{"Total Fuel Sales", "", formatDollars(report.FuelTotal)}, false)
	d.row(accountantColumns, []string{"Total Merchandise Sales", "", formatDollars(report.TotalStoreSales)}, false)
	d.row(accountantColumns, []string{"Total Gallons Sold", "", formatCount(report.FuelVolume)}, false)

	return d.writeTo(w)
}
