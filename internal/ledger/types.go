package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout used whenever a date leaves the program.
const DateLayout = "2006-01-02"

// Position locates a row in the input: Line is the 1-based physical line,
// Row the 0-based record index as delivered by the row source.
type Position struct {
	Line int
	Row  int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d (record %d)", p.Line, p.Row)
}

// Record is a single imported transaction. Negative amounts are outflows.
type Record struct {
	Date        time.Time
	Party1      string
	Party2      string
	Description string
	Amount      decimal.Decimal
	Pos         Position
}

type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func MonthOf(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// Compare orders by year, then month.
func (m MonthYear) Compare(other MonthYear) int {
	switch {
	case m.Year < other.Year:
		return -1
	case m.Year > other.Year:
		return 1
	case m.Month < other.Month:
		return -1
	case m.Month > other.Month:
		return 1
	}
	return 0
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%d %d", m.Year, m.Month)
}

type GroupTotal struct {
	Group string
	Total decimal.Decimal
}

func (g GroupTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{g.Group, g.Total.InexactFloat64()})
}

type MonthStats struct {
	Month   MonthYear
	Entries []GroupTotal
}

func (m MonthStats) MarshalJSON() ([]byte, error) {
	entries := m.Entries
	if entries == nil {
		entries = []GroupTotal{}
	}
	return json.Marshal([]any{m.Month, entries})
}

type MonthTotal struct {
	Month MonthYear
	Total decimal.Decimal
}

func (m MonthTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.Month, m.Total.InexactFloat64()})
}

type GroupSeries struct {
	Group  string
	Points []MonthTotal
}

func (g GroupSeries) MarshalJSON() ([]byte, error) {
	points := g.Points
	if points == nil {
		points = []MonthTotal{}
	}
	return json.Marshal([]any{g.Group, points})
}

// Aggregate is the immutable result of a run, shared by every presenter.
type Aggregate struct {
	Start   time.Time
	End     time.Time
	Summary []GroupTotal
	Monthly []MonthStats
	Grouped []GroupSeries
}

// Days is the number of days between the first and the last record.
func (a *Aggregate) Days() int {
	if a.Start.IsZero() || a.End.Before(a.Start) {
		return 0
	}
	return int(a.End.Sub(a.Start).Hours() / 24)
}

// MonthFactor scales a period total to a 30 day month. A period shorter than
// a day counts as one day.
func (a *Aggregate) MonthFactor() float64 {
	return 30 / float64(max(a.Days(), 1))
}

func (a *Aggregate) MarshalJSON() ([]byte, error) {
	type wire struct {
		Start   string        `json:"start"`
		End     string        `json:"end"`
		Summary []GroupTotal  `json:"stats_summary"`
		Monthly []MonthStats  `json:"stats_monthly"`
		Grouped []GroupSeries `json:"stats_grouped"`
	}
	w := wire{
		Summary: a.Summary,
		Monthly: a.Monthly,
		Grouped: a.Grouped,
	}
	if !a.Start.IsZero() {
		w.Start = a.Start.Format(DateLayout)
		w.End = a.End.Format(DateLayout)
	}
	if w.Summary == nil {
		w.Summary = []GroupTotal{}
	}
	if w.Monthly == nil {
		w.Monthly = []MonthStats{}
	}
	if w.Grouped == nil {
		w.Grouped = []GroupSeries{}
	}
	return json.Marshal(w)
}
