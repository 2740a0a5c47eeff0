package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/juev/spendreport/internal/config"
	"github.com/juev/spendreport/internal/ledger"
)

// Field is the semantic meaning of a mapped column.
type Field int

const (
	FieldDate Field = iota + 1
	FieldParty
	FieldParty1
	FieldParty2
	FieldAmount
	FieldDescription
)

var fieldNames = map[string]Field{
	"date":        FieldDate,
	"party":       FieldParty,
	"party1":      FieldParty1,
	"party2":      FieldParty2,
	"amount":      FieldAmount,
	"description": FieldDescription,
}

func (f Field) String() string {
	for name, field := range fieldNames {
		if field == f {
			return name
		}
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

type UnknownFieldError struct {
	Name    string
	Pattern string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q (mapped by %q) does not exist", e.Name, e.Pattern)
}

func ParseField(name string) (Field, error) {
	field, ok := fieldNames[strings.TrimSpace(name)]
	if !ok {
		return 0, &UnknownFieldError{Name: name}
	}
	return field, nil
}

type fieldMatcher struct {
	pattern *regexp.Regexp
	field   Field
}

// Column is a header column that matched a configured pattern.
type Column struct {
	Index  int
	Field  Field
	Header string
}

func (c Column) String() string {
	return fmt.Sprintf("(%d, %s)", c.Index, c.Field)
}

// FieldMapper projects a header row onto record fields. The first pattern in
// configuration order that matches a header cell decides its field.
type FieldMapper struct {
	matchers []fieldMatcher
	patterns []string
}

func NewFieldMapper(mappings []config.Mapping) (*FieldMapper, error) {
	m := &FieldMapper{
		matchers: make([]fieldMatcher, 0, len(mappings)),
		patterns: make([]string, 0, len(mappings)),
	}
	for _, mapping := range mappings {
		field, err := ParseField(mapping.Target)
		if err != nil {
			return nil, &UnknownFieldError{Name: mapping.Target, Pattern: mapping.Pattern}
		}
		re, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return nil, fmt.Errorf("field pattern %q: %w", mapping.Pattern, err)
		}
		m.matchers = append(m.matchers, fieldMatcher{pattern: re, field: field})
		m.patterns = append(m.patterns, mapping.Pattern)
	}
	return m, nil
}

// Map returns the matched columns in header order. Unmatched cells are
// dropped. When fewer or more columns matched than patterns are configured
// a warning diagnostic is returned as well.
func (m *FieldMapper) Map(header []string) ([]Column, *ledger.Diagnostic) {
	var columns []Column
	for i, cell := range header {
		for _, matcher := range m.matchers {
			if matcher.pattern.MatchString(cell) {
				columns = append(columns, Column{Index: i, Field: matcher.field, Header: cell})
				break
			}
		}
	}

	if len(columns) == len(m.matchers) {
		return columns, nil
	}

	found := make([]string, len(columns))
	for i, c := range columns {
		found[i] = c.String()
	}
	return columns, &ledger.Diagnostic{
		Severity: ledger.SeverityWarning,
		Code:     ledger.CodeHeaderMismatch,
		Message: fmt.Sprintf("headers configured: [%s], headers actually found: [%s]",
			strings.Join(quoteAll(m.patterns), ", "), strings.Join(found, ", ")),
	}
}

func (m *FieldMapper) Patterns() []string {
	return m.patterns
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return quoted
}
