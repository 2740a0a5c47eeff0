package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juev/spendreport/internal/config"
)

func TestClassifier_FirstMatchWins(t *testing.T) {
	groups := &config.Groups{Parties: map[string]string{
		"^rewe|aldi": "groceries",
		"^acme.*":    "shopping",
		"markt":      "market",
	}}
	c, err := NewClassifier(groups.Mappings())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	tests := []struct {
		party   string
		group   string
		matched bool
	}{
		{party: "Acme Corp", group: "shopping", matched: true},
		{party: "REWE Markt", group: "groceries", matched: true},
		{party: "Wochenmarkt", group: "market", matched: true},
		{party: "Employer", group: "employer", matched: false},
		{party: "", group: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.party, func(t *testing.T) {
			group, ok := c.Classify(tt.party)
			assert.Equal(t, tt.group, group)
			assert.Equal(t, tt.matched, ok)
		})
	}
}

func TestClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier([]config.Mapping{{Pattern: "[a-", Target: "broken"}})
	require.Error(t, err)

	var ce *config.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "[a-")
}

func TestClassifier_Empty(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	group, ok := c.Classify("Some Shop")
	assert.Equal(t, "some shop", group)
	assert.False(t, ok)
}
