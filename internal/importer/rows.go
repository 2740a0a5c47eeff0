package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/juev/spendreport/internal/ledger"
)

// Row is one raw input row. Rows may differ in length.
type Row struct {
	Pos   ledger.Position
	Cells []string
}

// RowSource yields rows in input order and io.EOF when exhausted.
type RowSource interface {
	Next() (Row, error)
}

type CSVRows struct {
	reader *csv.Reader
	index  int
}

func NewCSVRows(r io.Reader, delimiter rune) *CSVRows {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true
	return &CSVRows{reader: reader}
}

func (c *CSVRows) Next() (Row, error) {
	cells, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return Row{}, io.EOF
	}
	if err != nil {
		return Row{}, fmt.Errorf("read row %d: %w", c.index, err)
	}
	line, _ := c.reader.FieldPos(0)
	row := Row{
		Pos:   ledger.Position{Line: line, Row: c.index},
		Cells: cells,
	}
	c.index++
	return row, nil
}

// SliceRows serves rows held in memory; line numbers are 1-based indexes.
type SliceRows struct {
	rows  [][]string
	index int
}

func NewSliceRows(rows [][]string) *SliceRows {
	return &SliceRows{rows: rows}
}

func (s *SliceRows) Next() (Row, error) {
	if s.index >= len(s.rows) {
		return Row{}, io.EOF
	}
	row := Row{
		Pos:   ledger.Position{Line: s.index + 1, Row: s.index},
		Cells: s.rows[s.index],
	}
	s.index++
	return row, nil
}
