package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juev/spendreport/internal/ledger"
)

func sampleAggregate() *ledger.Aggregate {
	jan := ledger.MonthYear{Month: 1, Year: 2024}
	feb := ledger.MonthYear{Month: 2, Year: 2024}
	d := decimal.RequireFromString
	return &ledger.Aggregate{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		Summary: []ledger.GroupTotal{
			{Group: "rent", Total: d("-1800")},
			{Group: "groceries", Total: d("-354.5")},
			{Group: "salary", Total: d("5900")},
		},
		Monthly: []ledger.MonthStats{
			{Month: jan, Entries: []ledger.GroupTotal{
				{Group: "salary", Total: d("2950")},
				{Group: "rent", Total: d("-900")},
				{Group: "groceries", Total: d("-200")},
			}},
			{Month: feb, Entries: []ledger.GroupTotal{
				{Group: "salary", Total: d("2950")},
				{Group: "rent", Total: d("-900")},
				{Group: "refund", Total: d("0")},
				{Group: "groceries", Total: d("-154.5")},
			}},
		},
	}
}

func TestBuild(t *testing.T) {
	rep := Build(sampleAggregate())

	assert.Equal(t, "Summary of spending and revenue from 2024-01-01 to 2024-02-29 (59 days)", rep.Title)
	assert.Equal(t, 59, rep.Days)

	require.Len(t, rep.Summary, 3)
	assert.Equal(t, "rent", rep.Summary[0].Group)
	assert.Equal(t, "-915.2542", rep.Summary[0].PerMonth.StringFixed(4))

	require.Len(t, rep.Months, 2)
	groups := func(b MonthBlock) []string {
		names := make([]string, len(b.Entries))
		for i, e := range b.Entries {
			names[i] = e.Group
		}
		return names
	}
	assert.Equal(t, []string{"rent", "groceries", "salary"}, groups(rep.Months[0]))
	assert.Equal(t, []string{"rent", "groceries", "salary", "refund"}, groups(rep.Months[1]))
}

func TestTitle_Empty(t *testing.T) {
	assert.Equal(t, "Summary of spending and revenue from - to - (0 days)", Title(&ledger.Aggregate{}))

	rep := Build(&ledger.Aggregate{})
	assert.Empty(t, rep.Summary)
	assert.Empty(t, rep.Months)
}
