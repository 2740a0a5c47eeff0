package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	MonthlySheet = "Monthly Summary"

	DefaultCurrency = "€"
	DefaultXLSXPath = "report.xlsx"

	monthRowHeight = 24
	amountColWidth = 16
)

// CurrencyFormat is the number format used for amount columns: two places,
// grouped, symbol after the value, negatives in red.
func CurrencyFormat(symbol string) string {
	return fmt.Sprintf("#,##0.00 [$%s];[RED]-#,##0.00 [$%s]", symbol, symbol)
}

type Workbook struct {
	currency string
}

type WorkbookOption func(*Workbook)

func WithCurrency(symbol string) WorkbookOption {
	return func(wb *Workbook) {
		if symbol != "" {
			wb.currency = symbol
		}
	}
}

func NewWorkbook(opts ...WorkbookOption) *Workbook {
	wb := &Workbook{currency: DefaultCurrency}
	for _, opt := range opts {
		opt(wb)
	}
	return wb
}

func (wb *Workbook) Save(rep *Report, path string) error {
	f, err := wb.Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func (wb *Workbook) Write(rep *Report, w io.Writer) error {
	f, err := wb.Build(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Build lays the report out on the Summary and Monthly Summary sheets.
// The caller owns the returned file.
func (wb *Workbook) Build(rep *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := wb.build(f, rep); err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	return f, nil
}

func (wb *Workbook) build(f *excelize.File, rep *Report) error {
	numFmt := CurrencyFormat(wb.currency)
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	monthHeader, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 20, Color: "0000FF"},
	})
	if err != nil {
		return err
	}

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return err
	}
	if err := f.SetColStyle(SummarySheet, "A:B", currency); err != nil {
		return err
	}

	sheet := newSheetWriter(f, SummarySheet)
	sheet.set("A", 1, rep.Title)
	for i, line := range rep.Summary {
		row := i + 2
		sheet.set("A", row, line.Total.InexactFloat64())
		sheet.set("B", row, line.PerMonth.InexactFloat64())
		sheet.set("C", row, line.Group)
	}
	sheet.width("A", amountColWidth)
	sheet.width("B", amountColWidth)
	sheet.fit("C")
	if sheet.err != nil {
		return sheet.err
	}

	if _, err := f.NewSheet(MonthlySheet); err != nil {
		return err
	}
	if err := f.SetColStyle(MonthlySheet, "A", currency); err != nil {
		return err
	}

	sheet = newSheetWriter(f, MonthlySheet)
	row := 1
	for _, block := range rep.Months {
		sheet.set("A", row, block.Month.String())
		sheet.style("A", row, monthHeader)
		sheet.height(row, monthRowHeight)
		row++
		for _, e := range block.Entries {
			sheet.set("A", row, e.Total.InexactFloat64())
			sheet.set("B", row, e.Group)
			row++
		}
		row++
	}
	sheet.width("A", amountColWidth)
	sheet.fit("B")
	return sheet.err
}

// sheetWriter keeps the first error so a layout reads as a plain sequence
// of cell writes.
type sheetWriter struct {
	f      *excelize.File
	name   string
	widths map[string]int
	err    error
}

func newSheetWriter(f *excelize.File, name string) *sheetWriter {
	return &sheetWriter{f: f, name: name, widths: make(map[string]int)}
}

func (s *sheetWriter) set(col string, row int, value any) {
	if s.err != nil {
		return
	}
	if text, ok := value.(string); ok {
		s.widths[col] = max(s.widths[col], utf8.RuneCountInString(text))
	}
	s.err = s.f.SetCellValue(s.name, fmt.Sprintf("%s%d", col, row), value)
}

func (s *sheetWriter) style(col string, row, styleID int) {
	if s.err != nil {
		return
	}
	cell := fmt.Sprintf("%s%d", col, row)
	s.err = s.f.SetCellStyle(s.name, cell, cell, styleID)
}

func (s *sheetWriter) height(row int, height float64) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetRowHeight(s.name, row, height)
}

func (s *sheetWriter) width(col string, width float64) {
	if s.err != nil {
		return
	}
	s.err = s.f.SetColWidth(s.name, col, col, width)
}

// fit sizes a text column to its longest value.
func (s *sheetWriter) fit(col string) {
	width := s.widths[col] + 2
	if width < 10 {
		width = 10
	}
	s.width(col, float64(width))
}
