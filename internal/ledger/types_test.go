package ledger

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthYear_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b MonthYear
		want int
	}{
		{name: "same", a: MonthYear{Month: 3, Year: 2024}, b: MonthYear{Month: 3, Year: 2024}, want: 0},
		{name: "earlier month", a: MonthYear{Month: 2, Year: 2024}, b: MonthYear{Month: 3, Year: 2024}, want: -1},
		{name: "year wins over month", a: MonthYear{Month: 12, Year: 2023}, b: MonthYear{Month: 1, Year: 2024}, want: -1},
		{name: "later year", a: MonthYear{Month: 1, Year: 2025}, b: MonthYear{Month: 12, Year: 2024}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestMonthYear_SortAndFormat(t *testing.T) {
	months := []MonthYear{
		MonthOf(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		MonthOf(time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC)),
		MonthOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	slices.SortFunc(months, MonthYear.Compare)

	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()
	}
	assert.Equal(t, []string{"2023 11", "2024 1", "2024 3"}, names)

	data, err := json.Marshal(months[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":1,"year":2024}`, string(data))
}

func TestAggregate_Days(t *testing.T) {
	day := func(m time.Month, d int) time.Time {
		return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		agg    Aggregate
		days   int
		factor float64
	}{
		{name: "empty", agg: Aggregate{}, days: 0, factor: 30},
		{name: "single day", agg: Aggregate{Start: day(1, 5), End: day(1, 5)}, days: 0, factor: 30},
		{name: "fifteen days", agg: Aggregate{Start: day(1, 1), End: day(1, 16)}, days: 15, factor: 2},
		{name: "leap february", agg: Aggregate{Start: day(2, 1), End: day(3, 1)}, days: 29, factor: 30.0 / 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, tt.agg.Days())
			assert.InDelta(t, tt.factor, tt.agg.MonthFactor(), 1e-9)
		})
	}
}

func TestAggregate_MarshalJSON(t *testing.T) {
	jan := MonthYear{Month: 1, Year: 2024}
	agg := &Aggregate{
		Start:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		Summary: []GroupTotal{{Group: "rent", Total: decimal.RequireFromString("-900.50")}},
		Monthly: []MonthStats{{Month: jan}},
		Grouped: []GroupSeries{{Group: "rent"}},
	}

	data, err := json.Marshal(agg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"start": "2024-01-02",
		"end": "2024-01-30",
		"stats_summary": [["rent", -900.5]],
		"stats_monthly": [[{"month": 1, "year": 2024}, []]],
		"stats_grouped": [["rent", []]]
	}`, string(data))
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "line 7 (record 5)", Position{Line: 7, Row: 5}.String())
}
