// Package report renders the financial summary document. The Renderer seam
// keeps the aggregation callers independent of any PDF capability: a
// deployment without one wires a nil Renderer and the endpoint reports
// rendering as unavailable.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"fintrack/internal/core"
)

// Data is everything the report lays out: headline totals plus the full
// transaction lists.
type Data struct {
	GeneratedAt time.Time
	Totals      core.Totals
	Expenses    []core.Expense
	Incomes     []core.Income
}

// Renderer produces a document from report data.
type Renderer interface {
	Render(data Data) ([]byte, error)
}

// PDFRenderer lays the report out as a flowing Letter-sized PDF: title,
// generation timestamp, totals, then an income table and an expense table.
type PDFRenderer struct{}

var _ Renderer = PDFRenderer{}

const (
	marginLeft = 15.0
	dateCol    = 35.0
	amountCol  = 30.0
	rowHeight  = 8.0
)

func (PDFRenderer) Render(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Expense Tracker Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Generated on: "+data.GeneratedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Financial Summary")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Total Income: $%.2f", data.Totals.TotalIncome),
		fmt.Sprintf("Total Expenses: $%.2f", data.Totals.TotalExpenses),
		fmt.Sprintf("Balance: $%.2f", data.Totals.Balance),
	} {
		pdf.SetX(marginLeft + 5)
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(8)

	if len(data.Incomes) > 0 {
		sectionTitle(pdf, "Income Records")
		tableHeader(pdf, []col{{dateCol, "Date"}, {0, "Description"}, {amountCol, "Amount"}})
		for _, in := range data.Incomes {
			tableRow(pdf, []col{
				{dateCol, in.Date.Format("2006-01-02")},
				{0, in.Description},
				{amountCol, fmt.Sprintf("$%.2f", in.Amount)},
			})
		}
		pdf.Ln(10)
	}

	if len(data.Expenses) > 0 {
		sectionTitle(pdf, "Expense Records")
		tableHeader(pdf, []col{{dateCol, "Date"}, {0, "Description"}, {45, "Category"}, {amountCol, "Amount"}})
		for _, e := range data.Expenses {
			tableRow(pdf, []col{
				{dateCol, e.Date.Format("2006-01-02")},
				{0, e.Description},
				{45, e.Category},
				{amountCol, fmt.Sprintf("$%.2f", e.Amount)},
			})
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// col is one table cell: a width in mm (0 means "fill the remainder") and
// its text.
type col struct {
	width float64
	text  string
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
}

func tableHeader(pdf *fpdf.Fpdf, cols []col) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	drawCells(pdf, cols, true)
	pdf.SetTextColor(0, 0, 0)
}

func tableRow(pdf *fpdf.Fpdf, cols []col) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetFillColor(245, 245, 220)
	drawCells(pdf, cols, true)
}

func drawCells(pdf *fpdf.Fpdf, cols []col, fill bool) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	var fixed float64
	for _, c := range cols {
		fixed += c.width
	}
	for _, c := range cols {
		width := c.width
		if width == 0 {
			width = usable - fixed
		}
		pdf.CellFormat(width, rowHeight, c.text, "1", 0, "C", fill, 0, "")
	}
	pdf.Ln(rowHeight)
}
