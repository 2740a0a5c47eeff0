// Package analyzer classifies records into groups and reduces them to the
// summary views shared by every report.
package analyzer

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/juev/spendreport/internal/ledger"
)

// MonthlyTopN caps the entries kept per month.
const MonthlyTopN = 20

var ErrAggregated = errors.New("groups already aggregated")

// Groups accumulates records. It has a single owner: Aggregate hands the
// state over to the returned result and the accumulator cannot be used again.
type Groups struct {
	classifier *Classifier
	logger     *zap.Logger

	summary map[string]decimal.Decimal
	monthly map[ledger.MonthYear]map[string]decimal.Decimal
	start   time.Time
	end     time.Time
	count   int
	done    bool

	diagnostics []ledger.Diagnostic
}

type Option func(*Groups)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Groups) {
		g.logger = logger
	}
}

func NewGroups(classifier *Classifier, opts ...Option) *Groups {
	if classifier == nil {
		classifier = &Classifier{}
	}
	g := &Groups{
		classifier: classifier,
		logger:     zap.NewNop(),
		summary:    make(map[string]decimal.Decimal),
		monthly:    make(map[ledger.MonthYear]map[string]decimal.Decimal),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Push adds one record. Outflows are classified by the receiving party,
// inflows by the sending party.
func (g *Groups) Push(rec ledger.Record) error {
	if g.done {
		return ErrAggregated
	}

	party := rec.Party1
	if rec.Amount.IsNegative() {
		party = rec.Party2
	}
	group, matched := g.classifier.Classify(party)

	total, seen := g.summary[group]
	if !seen && !matched {
		g.reportUnmapped(group, rec.Pos)
	}
	g.summary[group] = total.Add(rec.Amount)

	month := ledger.MonthOf(rec.Date)
	bucket, ok := g.monthly[month]
	if !ok {
		bucket = make(map[string]decimal.Decimal)
		g.monthly[month] = bucket
	}
	bucket[group] = bucket[group].Add(rec.Amount)

	if g.count == 0 || rec.Date.Before(g.start) {
		g.start = rec.Date
	}
	if g.count == 0 || rec.Date.After(g.end) {
		g.end = rec.Date
	}
	g.count++

	return nil
}

func (g *Groups) reportUnmapped(key string, pos ledger.Position) {
	g.diagnostics = append(g.diagnostics, ledger.Diagnostic{
		Severity: ledger.SeverityWarning,
		Code:     ledger.CodeUnmappedParty,
		Message:  fmt.Sprintf("no group mapping found for %q", key),
		Pos:      pos,
	})
	g.logger.Warn("no group mapping found",
		zap.String("party", key),
		zap.Int("line", pos.Line))
}

// Len is the number of records pushed so far.
func (g *Groups) Len() int {
	return g.count
}

func (g *Groups) Diagnostics() []ledger.Diagnostic {
	return g.diagnostics
}

// Aggregate sorts the accumulated totals into the report views and consumes
// the accumulator.
func (g *Groups) Aggregate() (*ledger.Aggregate, error) {
	if g.done {
		return nil, ErrAggregated
	}
	g.done = true

	agg := &ledger.Aggregate{
		Start:   g.start,
		End:     g.end,
		Summary: sortedTotals(g.summary, byTotal),
	}

	months := make([]ledger.MonthYear, 0, len(g.monthly))
	for m := range g.monthly {
		months = append(months, m)
	}
	slices.SortFunc(months, ledger.MonthYear.Compare)

	agg.Monthly = make([]ledger.MonthStats, 0, len(months))
	for _, m := range months {
		entries := sortedTotals(g.monthly[m], byMagnitude)
		if len(entries) > MonthlyTopN {
			entries = entries[:MonthlyTopN]
		}
		agg.Monthly = append(agg.Monthly, ledger.MonthStats{Month: m, Entries: entries})
	}

	agg.Grouped = make([]ledger.GroupSeries, 0, len(agg.Summary))
	for _, s := range agg.Summary {
		points := make([]ledger.MonthTotal, len(months))
		for i, m := range months {
			points[i] = ledger.MonthTotal{Month: m, Total: g.monthly[m][s.Group]}
		}
		agg.Grouped = append(agg.Grouped, ledger.GroupSeries{Group: s.Group, Points: points})
	}

	g.summary = nil
	g.monthly = nil
	g.logger.Debug("aggregated",
		zap.Int("records", g.count),
		zap.Int("groups", len(agg.Summary)),
		zap.Int("months", len(agg.Monthly)))

	return agg, nil
}

func byTotal(a, b ledger.GroupTotal) int {
	return a.Total.Cmp(b.Total)
}

func byMagnitude(a, b ledger.GroupTotal) int {
	return b.Total.Abs().Cmp(a.Total.Abs())
}

func sortedTotals(totals map[string]decimal.Decimal, order func(a, b ledger.GroupTotal) int) []ledger.GroupTotal {
	result := make([]ledger.GroupTotal, 0, len(totals))
	for group, total := range totals {
		result = append(result, ledger.GroupTotal{Group: group, Total: total})
	}
	slices.SortFunc(result, func(a, b ledger.GroupTotal) int {
		if c := order(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Group, b.Group)
	})
	return result
}
