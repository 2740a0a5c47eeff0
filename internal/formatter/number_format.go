package formatter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// NumberFormat describes how amounts are written: the decimal mark, the
// thousands separator and the number of fraction digits.
type NumberFormat struct {
	DecimalMark   rune
	ThousandsSep  string
	DecimalPlaces int
	HasDecimal    bool
}

// ForSeparators builds a two-place format from locale separators.
func ForSeparators(decimalMark, thousandsSep string) NumberFormat {
	mark, _ := utf8.DecodeRuneInString(decimalMark)
	if mark == utf8.RuneError {
		mark = '.'
	}
	return NumberFormat{
		DecimalMark:   mark,
		ThousandsSep:  thousandsSep,
		DecimalPlaces: 2,
		HasDecimal:    true,
	}
}

// ParseNumberFormat guesses the separators from a sample such as
// "1.000,00 EUR" or "1'000.00". The right-most mark is the decimal mark.
func ParseNumberFormat(formatStr string) NumberFormat {
	nf := NumberFormat{
		DecimalMark:   '.',
		ThousandsSep:  "",
		DecimalPlaces: 0,
		HasDecimal:    false,
	}

	numberPart := extractNumberPart(formatStr)
	if numberPart == "" {
		return nf
	}

	lastDot := strings.LastIndex(numberPart, ".")
	lastComma := strings.LastIndex(numberPart, ",")

	if lastDot > lastComma {
		nf.DecimalMark = '.'
		nf.HasDecimal = true
		nf.ThousandsSep = groupSeparator(numberPart[:lastDot], ",")
		nf.DecimalPlaces = len(numberPart) - lastDot - 1
	} else if lastComma > lastDot {
		nf.DecimalMark = ','
		nf.HasDecimal = true
		nf.ThousandsSep = groupSeparator(numberPart[:lastComma], ".")
		nf.DecimalPlaces = len(numberPart) - lastComma - 1
	} else {
		nf.ThousandsSep = groupSeparator(numberPart, "")
	}

	return nf
}

func groupSeparator(intPart, other string) string {
	switch {
	case other != "" && strings.Contains(intPart, other):
		return other
	case strings.Contains(intPart, "'"):
		return "'"
	case strings.Contains(intPart, "’"):
		return "’"
	case strings.Contains(intPart, " "):
		return " "
	}
	return ""
}

func isNumberChar(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == ',' || r == ' ' || r == '\'' || r == '’'
}

func extractNumberPart(formatStr string) string {
	var start, end int
	inNumber := false
	lastDigitPos := -1

	for i, r := range formatStr {
		if isNumberChar(r) {
			if !inNumber {
				start = i
				inNumber = true
			}
			if unicode.IsDigit(r) {
				lastDigitPos = i
			}
			end = i + utf8.RuneLen(r)
		} else if inNumber {
			break
		}
	}

	if !inNumber || lastDigitPos < 0 {
		return ""
	}

	result := formatStr[start:end]
	return strings.TrimSpace(result)
}

func FormatNumber(qty decimal.Decimal, format NumberFormat) string {
	var str string
	if format.HasDecimal {
		str = qty.StringFixed(int32(format.DecimalPlaces))
	} else {
		str = qty.Round(0).String()
	}

	intPart, decPart, _ := strings.Cut(str, ".")

	negative := false
	if strings.HasPrefix(intPart, "-") {
		negative = true
		intPart = intPart[1:]
	}

	if format.ThousandsSep != "" && len(intPart) > 3 {
		var groups []string
		for len(intPart) > 3 {
			groups = append([]string{intPart[len(intPart)-3:]}, groups...)
			intPart = intPart[:len(intPart)-3]
		}
		if len(intPart) > 0 {
			groups = append([]string{intPart}, groups...)
		}
		intPart = strings.Join(groups, format.ThousandsSep)
	}

	var result strings.Builder
	if negative {
		result.WriteString("-")
	}
	result.WriteString(intPart)

	if format.HasDecimal && format.DecimalPlaces > 0 {
		result.WriteRune(format.DecimalMark)
		result.WriteString(decPart)
	}

	return result.String()
}
