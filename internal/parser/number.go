package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/juev/spendreport/internal/ledger"
)

type NumberFormatError struct {
	Value   string
	Segment string
	Pos     ledger.Position
	Err     error
}

func (e *NumberFormatError) Error() string {
	msg := fmt.Sprintf("parsing amount %q at %s", e.Value, e.Pos)
	if e.Segment != "" && e.Segment != e.Value {
		msg += fmt.Sprintf(": invalid segment %q", e.Segment)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NumberFormatError) Unwrap() error {
	return e.Err
}

// ParseAmount reads a localized number such as "-1.234,56 EUR". The value is
// split at the first decimal separator; the integer part may carry group
// separators, the fractional part ends at the first space.
func ParseAmount(value string, loc NumberLocale) (decimal.Decimal, error) {
	intPart, fracPart := value, ""
	if loc.Decimal != "" {
		if before, after, found := strings.Cut(value, loc.Decimal); found {
			intPart, fracPart = before, after
		}
	}
	if before, _, found := strings.Cut(fracPart, " "); found {
		fracPart = before
	}

	whole, negative, err := parseGrouped(intPart, loc.Group)
	if err != nil {
		return decimal.Zero, &NumberFormatError{Value: value, Segment: intPart, Err: err}
	}
	result := decimal.NewFromInt(whole)

	if fracPart == "" {
		return result, nil
	}
	digits, err := strconv.ParseUint(fracPart, 10, 64)
	if err != nil {
		return decimal.Zero, &NumberFormatError{Value: value, Segment: fracPart, Err: err}
	}
	frac := decimal.NewFromBigInt(new(big.Int).SetUint64(digits), -int32(len(fracPart)))
	if negative {
		return result.Sub(frac), nil
	}
	return result.Add(frac), nil
}

// parseGrouped parses an integer with optional sign and group separators.
// A whitespace group separator also accepts any other Unicode space.
func parseGrouped(s, group string) (int64, bool, error) {
	s = strings.TrimSpace(s)
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "−"):
		negative = true
		s = s[len("−"):]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	spaceGroup := false
	if r, _ := utf8.DecodeRuneInString(group); group != "" && unicode.IsSpace(r) {
		spaceGroup = true
	}

	var digits strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case group != "" && strings.HasPrefix(s[i:], group) && digits.Len() > 0:
			size = len(group)
		case spaceGroup && unicode.IsSpace(r) && digits.Len() > 0:
		default:
			return 0, false, fmt.Errorf("unexpected character %q", r)
		}
		i += size
	}
	if digits.Len() == 0 {
		return 0, false, fmt.Errorf("no digits")
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false, err
	}
	if negative {
		n = -n
	}
	return n, negative, nil
}
