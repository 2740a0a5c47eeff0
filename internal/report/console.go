package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/juev/spendreport/internal/formatter"
)

const amountWidth = 10

const (
	colorRed   lipgloss.Color = "#f38ba8"
	colorGreen lipgloss.Color = "#a6e3a1"
	colorBlue  lipgloss.Color = "#89b4fa"
	colorMuted lipgloss.Color = "#7f849c"
)

type consoleStyles struct {
	title   lipgloss.Style
	month   lipgloss.Style
	expense lipgloss.Style
	revenue lipgloss.Style
	muted   lipgloss.Style
}

// Console writes the plain text report. Colors are only emitted when the
// writer is a terminal that supports them.
type Console struct {
	w      io.Writer
	format formatter.NumberFormat
	styles consoleStyles
}

type ConsoleOption func(*Console)

func WithNumberFormat(nf formatter.NumberFormat) ConsoleOption {
	return func(c *Console) {
		c.format = nf
	}
}

func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		w:      w,
		format: formatter.ForSeparators(".", ""),
		styles: consoleStyles{
			title:   r.NewStyle().Bold(true),
			month:   r.NewStyle().Bold(true).Foreground(colorBlue),
			expense: r.NewStyle().Foreground(colorRed),
			revenue: r.NewStyle().Foreground(colorGreen),
			muted:   r.NewStyle().Foreground(colorMuted),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Render(rep *Report) error {
	var sb strings.Builder

	sb.WriteString(c.styles.title.Render(rep.Title))
	sb.WriteString("\n")
	for _, line := range rep.Summary {
		fmt.Fprintf(&sb, "%s %s %s\n",
			c.amount(line.Total),
			c.styles.muted.Render("("+c.pad(line.PerMonth)+" / month)"),
			line.Group)
	}

	for _, block := range rep.Months {
		sb.WriteString(c.styles.month.Render(block.Month.String()))
		sb.WriteString("\n")
		for _, e := range block.Entries {
			fmt.Fprintf(&sb, "%s %s\n", c.amount(e.Total), e.Group)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(c.w, sb.String())
	return err
}

func (c *Console) pad(d decimal.Decimal) string {
	return fmt.Sprintf("%*s", amountWidth, formatter.FormatNumber(d, c.format))
}

func (c *Console) amount(d decimal.Decimal) string {
	if d.IsNegative() {
		return c.styles.expense.Render(c.pad(d))
	}
	return c.styles.revenue.Render(c.pad(d))
}
