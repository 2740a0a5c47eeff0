// Package report renders an aggregate as a console listing or an xlsx
// workbook. Both share the layout built by Build.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/juev/spendreport/internal/ledger"
)

type SummaryLine struct {
	Group    string
	Total    decimal.Decimal
	PerMonth decimal.Decimal
}

// MonthBlock lists a month's entries with expenses before revenue, each part
// keeping the aggregate's order.
type MonthBlock struct {
	Month   ledger.MonthYear
	Entries []ledger.GroupTotal
}

type Report struct {
	Title   string
	Days    int
	Summary []SummaryLine
	Months  []MonthBlock
}

var thirtyDays = decimal.NewFromInt(30)

func Build(agg *ledger.Aggregate) *Report {
	days := agg.Days()
	r := &Report{
		Title:   Title(agg),
		Days:    days,
		Summary: make([]SummaryLine, 0, len(agg.Summary)),
		Months:  make([]MonthBlock, 0, len(agg.Monthly)),
	}

	span := decimal.NewFromInt(int64(max(days, 1)))
	for _, s := range agg.Summary {
		r.Summary = append(r.Summary, SummaryLine{
			Group:    s.Group,
			Total:    s.Total,
			PerMonth: s.Total.Mul(thirtyDays).Div(span),
		})
	}

	for _, m := range agg.Monthly {
		entries := make([]ledger.GroupTotal, 0, len(m.Entries))
		for _, e := range m.Entries {
			if e.Total.IsNegative() {
				entries = append(entries, e)
			}
		}
		for _, e := range m.Entries {
			if !e.Total.IsNegative() {
				entries = append(entries, e)
			}
		}
		r.Months = append(r.Months, MonthBlock{Month: m.Month, Entries: entries})
	}

	return r
}

func Title(agg *ledger.Aggregate) string {
	start, end := "-", "-"
	if !agg.Start.IsZero() {
		start = agg.Start.Format(ledger.DateLayout)
		end = agg.End.Format(ledger.DateLayout)
	}
	return fmt.Sprintf("Summary of spending and revenue from %s to %s (%d days)", start, end, agg.Days())
}
