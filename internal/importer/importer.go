// Package importer turns rows of a statement export into ledger records.
//
// The import is strict: a date or amount that cannot be parsed, or a row
// lacking a required field, aborts the whole import with the row position
// in the error.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/juev/spendreport/internal/config"
	"github.com/juev/spendreport/internal/formatter"
	"github.com/juev/spendreport/internal/ledger"
	"github.com/juev/spendreport/internal/parser"
	"github.com/juev/spendreport/internal/source"
)

var ErrMissingHeader = errors.New("missing header row")

type IncompleteRecordError struct {
	Field string
	Pos   ledger.Position
	Cells []string
}

func (e *IncompleteRecordError) Error() string {
	return fmt.Sprintf("%s missing at %s in %q", e.Field, e.Pos, e.Cells)
}

type Importer struct {
	skip      int
	delimiter rune
	dates     parser.DateFormat
	locale    parser.NumberLocale
	mapper    *FieldMapper
	logger    *zap.Logger
	loader    *source.Loader

	diagnostics []ledger.Diagnostic
}

type Option func(*Importer)

func WithLogger(logger *zap.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

func WithLoader(loader *source.Loader) Option {
	return func(im *Importer) {
		im.loader = loader
	}
}

// New validates the configuration up front: locale, date pattern, field
// names and patterns. Any failure is reported as a *config.ConfigError.
func New(cfg *config.Import, opts ...Option) (*Importer, error) {
	locale, err := parser.LookupLocale(cfg.NumberLocale)
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}
	if cfg.NumberFormat != "" {
		nf := formatter.ParseNumberFormat(cfg.NumberFormat)
		locale = parser.NumberLocale{
			Name:    cfg.NumberFormat,
			Decimal: string(nf.DecimalMark),
			Group:   nf.ThousandsSep,
		}
	}

	dates, err := parser.CompileDateFormat(cfg.DateFormat)
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}

	mapper, err := NewFieldMapper(cfg.Mappings())
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}

	im := &Importer{
		skip:      cfg.SkipRows(),
		delimiter: cfg.DelimiterRune(),
		dates:     dates,
		locale:    locale,
		mapper:    mapper,
		logger:    zap.NewNop(),
		loader:    source.NewLoader(),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im, nil
}

// Locale is the number format amounts are parsed with.
func (im *Importer) Locale() parser.NumberLocale {
	return im.locale
}

// Diagnostics returns the warnings collected by previous imports.
func (im *Importer) Diagnostics() []ledger.Diagnostic {
	return im.diagnostics
}

func (im *Importer) ImportFile(path string, fn func(ledger.Record) error) error {
	rc, err := im.loader.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return im.ImportReader(rc, fn)
}

func (im *Importer) ImportReader(r io.Reader, fn func(ledger.Record) error) error {
	return im.Import(NewCSVRows(r, im.delimiter), fn)
}

// Import reads the header row after the configured number of skipped rows
// and hands one record per following row to fn. An error returned by fn
// stops the import.
func (im *Importer) Import(rows RowSource, fn func(ledger.Record) error) error {
	decoder := unicode.UTF8.NewDecoder()

	for range im.skip {
		if _, err := rows.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return ErrMissingHeader
			}
			return err
		}
	}

	header, err := rows.Next()
	if errors.Is(err, io.EOF) {
		return ErrMissingHeader
	}
	if err != nil {
		return err
	}

	headerCells := make([]string, len(header.Cells))
	for i, cell := range header.Cells {
		headerCells[i] = decode(decoder, cell)
	}
	columns, mismatch := im.mapper.Map(headerCells)
	if mismatch != nil {
		mismatch.Pos = header.Pos
		im.diagnostics = append(im.diagnostics, *mismatch)
		im.logger.Warn("header mapping mismatch",
			zap.Strings("configured", im.mapper.Patterns()),
			zap.Strings("found", columnNames(columns)),
			zap.Int("line", header.Pos.Line))
	}
	im.logger.Debug("header mapped",
		zap.Strings("columns", columnNames(columns)),
		zap.String("date_layout", im.dates.Layout()),
		zap.String("locale", im.locale.Name))

	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		record, err := im.buildRecord(decoder, columns, row)
		if err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
	}
}

type pendingRecord struct {
	date        *time.Time
	party1      *string
	party2      *string
	amount      *decimal.Decimal
	description string
}

func (im *Importer) buildRecord(decoder *encoding.Decoder, columns []Column, row Row) (ledger.Record, error) {
	var p pendingRecord

	for _, col := range columns {
		if col.Index >= len(row.Cells) {
			continue
		}
		value := decode(decoder, row.Cells[col.Index])

		switch col.Field {
		case FieldDate:
			date, err := im.dates.Parse(value)
			if err != nil {
				var dfe *parser.DateFormatError
				if errors.As(err, &dfe) {
					dfe.Pos = row.Pos
				}
				return ledger.Record{}, err
			}
			p.date = &date
		case FieldParty:
			p.party1 = &value
			p.party2 = &value
		case FieldParty1:
			p.party1 = &value
		case FieldParty2:
			p.party2 = &value
		case FieldAmount:
			amount, err := parser.ParseAmount(value, im.locale)
			if err != nil {
				var nfe *parser.NumberFormatError
				if errors.As(err, &nfe) {
					nfe.Pos = row.Pos
				}
				return ledger.Record{}, err
			}
			p.amount = &amount
		case FieldDescription:
			p.description = value
		}
	}

	missing := ""
	switch {
	case p.date == nil:
		missing = "date"
	case p.party1 == nil:
		missing = "party1"
	case p.party2 == nil:
		missing = "party2"
	case p.amount == nil:
		missing = "amount"
	}
	if missing != "" {
		return ledger.Record{}, &IncompleteRecordError{
			Field: missing,
			Pos:   row.Pos,
			Cells: append([]string(nil), row.Cells...),
		}
	}

	return ledger.Record{
		Date:        *p.date,
		Party1:      *p.party1,
		Party2:      *p.party2,
		Description: p.description,
		Amount:      *p.amount,
		Pos:         row.Pos,
	}, nil
}

// decode replaces invalid UTF-8 with U+FFFD and keeps a byte order mark.
func decode(decoder *encoding.Decoder, cell string) string {
	decoded, err := decoder.String(cell)
	if err != nil {
		return strings.ToValidUTF8(cell, "\uFFFD")
	}
	return decoded
}

func columnNames(columns []Column) []string {
	result := make([]string, len(columns))
	for i, c := range columns {
		result[i] = c.String()
	}
	return result
}
