package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/juev/spendreport/internal/ledger"
)

type DateFormatError struct {
	Value   string
	Pattern string
	Pos     ledger.Position
	Err     error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("parsing date %q at %s - is the format %q correct?", e.Value, e.Pos, e.Pattern)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// DateFormat is a strptime pattern compiled to a Go time layout.
type DateFormat struct {
	Pattern string
	layout  string
}

func CompileDateFormat(pattern string) (DateFormat, error) {
	if strings.TrimSpace(pattern) == "" {
		return DateFormat{}, fmt.Errorf("empty date format")
	}
	layout, err := strftime.Layout(pattern)
	if err != nil {
		return DateFormat{}, fmt.Errorf("date format %q: %w", pattern, err)
	}
	// Layout emits zero padded fields; parsing accepts both forms anyway.
	if _, err := strftime.Parse(pattern, strftime.Format(pattern, time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC))); err != nil {
		return DateFormat{}, fmt.Errorf("date format %q: %w", pattern, err)
	}
	return DateFormat{Pattern: pattern, layout: layout}, nil
}

// Parse returns the calendar date at UTC midnight.
func (f DateFormat) Parse(value string) (time.Time, error) {
	t, err := strftime.Parse(f.Pattern, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &DateFormatError{Value: value, Pattern: f.Pattern, Err: err}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (f DateFormat) Layout() string {
	return f.layout
}
