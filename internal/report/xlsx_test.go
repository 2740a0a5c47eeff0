package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var raw = excelize.Options{RawCellValue: true}

func TestCurrencyFormat(t *testing.T) {
	assert.Equal(t, "#,##0.00 [$€];[RED]-#,##0.00 [$€]", CurrencyFormat("€"))
	assert.Equal(t, "#,##0.00 [$CHF];[RED]-#,##0.00 [$CHF]", CurrencyFormat("CHF"))
}

func TestWorkbook_Layout(t *testing.T) {
	f, err := NewWorkbook().Build(Build(sampleAggregate()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, MonthlySheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet, raw)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Summary of spending and revenue from 2024-01-01 to 2024-02-29 (59 days)", rows[0][0])
	assert.Equal(t, []string{"-1800", "rent"}, []string{rows[1][0], rows[1][2]})
	assert.Equal(t, "salary", rows[3][2])

	perMonth, err := f.GetCellValue(SummarySheet, "B4", raw)
	require.NoError(t, err)
	assert.Equal(t, "3000", perMonth)

	rows, err = f.GetRows(MonthlySheet, raw)
	require.NoError(t, err)
	var labels []string
	for _, row := range rows {
		if len(row) > 1 {
			labels = append(labels, row[1])
		} else if len(row) == 1 {
			labels = append(labels, row[0])
		}
	}
	assert.Equal(t, []string{
		"2024 1", "rent", "groceries", "salary",
		"2024 2", "rent", "groceries", "salary", "refund",
	}, labels)
}

func TestWorkbook_Styles(t *testing.T) {
	f, err := NewWorkbook(WithCurrency("CHF")).Build(Build(sampleAggregate()))
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle(SummarySheet, "A2")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, CurrencyFormat("CHF"), *style.CustomNumFmt)

	styleID, err = f.GetCellStyle(MonthlySheet, "A1")
	require.NoError(t, err)
	style, err = f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, float64(20), style.Font.Size)

	height, err := f.GetRowHeight(MonthlySheet, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(monthRowHeight), height)
}

func TestWorkbook_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultXLSXPath)
	require.NoError(t, NewWorkbook().Save(Build(sampleAggregate()), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(MonthlySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "rent", value)
}

func TestWorkbook_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWorkbook().Write(Build(sampleAggregate()), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SummarySheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "rent", value)
}
