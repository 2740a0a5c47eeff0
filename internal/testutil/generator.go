package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/juev/spendreport/internal/ledger"
)

// StatementHeader is the header row written by GenerateStatement.
const StatementHeader = "Date;Party;Amount;Memo"

var parties = []string{
	"REWE Markt",
	"Aldi Sued",
	"Shell Station 42",
	"Stadtwerke",
	"Netflix.com",
	"Amazon EU",
	"Deutsche Bahn",
	"Apotheke am Markt",
	"Employer GmbH",
}

// GenerateStatement renders numRows semicolon separated rows with German
// number formatting. Every tenth row is a salary credit, the rest are debits.
func GenerateStatement(numRows int) string {
	var sb strings.Builder
	sb.WriteString(StatementHeader)
	sb.WriteString("\n")

	for i := range numRows {
		rec := record(i)
		fmt.Fprintf(&sb, "%s;%s;%s;ref %d\n",
			rec.Date.Format(ledger.DateLayout), rec.Party1, germanAmount(rec.Amount), i)
	}

	return sb.String()
}

// GenerateRecords returns the records GenerateStatement writes, already parsed.
func GenerateRecords(numRows int) []ledger.Record {
	records := make([]ledger.Record, numRows)
	for i := range numRows {
		records[i] = record(i)
		records[i].Description = fmt.Sprintf("ref %d", i)
		records[i].Pos = ledger.Position{Line: i + 2, Row: i + 1}
	}
	return records
}

func GenerateStatementFile(tmpDir, name string, numRows int) (string, error) {
	path := filepath.Join(tmpDir, name)
	if err := os.WriteFile(path, []byte(GenerateStatement(numRows)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func record(i int) ledger.Record {
	year := 2020 + (i / 365)
	month := time.Month((i/30)%12 + 1)
	day := i%28 + 1

	party := parties[i%(len(parties)-1)]
	cents := int64((i%1000 + 1) * 137)
	amount := decimal.New(-cents, -2)
	if i%10 == 9 {
		party = parties[len(parties)-1]
		amount = decimal.New(250000+int64(i%7)*100, -2)
	}

	return ledger.Record{
		Date:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Party1: party,
		Party2: party,
		Amount: amount,
	}
}

func germanAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return sign + grouped.String() + "," + frac
}
