package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juev/spendreport/internal/config"
)

func TestFieldMapper_FirstPatternWins(t *testing.T) {
	mapper, err := NewFieldMapper([]config.Mapping{
		{Pattern: "Betrag", Target: "amount"},
		{Pattern: "Betrag|Text", Target: "description"},
		{Pattern: "^Datum", Target: "date"},
	})
	require.NoError(t, err)

	columns, diag := mapper.Map([]string{"Datum", "Unused", "Betrag (EUR)", "Text"})
	assert.Nil(t, diag)
	assert.Equal(t, []Column{
		{Index: 0, Field: FieldDate, Header: "Datum"},
		{Index: 2, Field: FieldAmount, Header: "Betrag (EUR)"},
		{Index: 3, Field: FieldDescription, Header: "Text"},
	}, columns)
}

func TestFieldMapper_Mismatch(t *testing.T) {
	mapper, err := NewFieldMapper([]config.Mapping{
		{Pattern: "^Amount", Target: "amount"},
		{Pattern: "^Date", Target: "date"},
	})
	require.NoError(t, err)

	columns, diag := mapper.Map([]string{"Date"})
	require.Len(t, columns, 1)
	require.NotNil(t, diag)
	assert.Contains(t, diag.Message, `"^Amount"`)
	assert.Contains(t, diag.Message, "(0, date)")
}

func TestParseField(t *testing.T) {
	for name, want := range map[string]Field{
		"date":        FieldDate,
		"party":       FieldParty,
		"party1":      FieldParty1,
		"party2":      FieldParty2,
		"amount":      FieldAmount,
		"description": FieldDescription,
	} {
		got, err := ParseField(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseField("iban")
	var ufe *UnknownFieldError
	assert.ErrorAs(t, err, &ufe)
}
