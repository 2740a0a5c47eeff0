package main

import (
	"errors"
	"flag"
	"io"

	"github.com/juev/spendreport/internal/report"
	"github.com/juev/spendreport/internal/server"
)

type options struct {
	ImportSpec string
	GroupSpec  string
	Serve      bool
	Addr       string
	Output     string
	Currency   string
	Verbose    bool
	Version    bool
	Input      string
}

const usage = `Usage: spendreport [flags] <statement.csv>

Summarizes a bank statement export by group. The report is printed and
written to an xlsx workbook, or served as charts with -s.

Flags:
`

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var opts options

	fs := flag.NewFlagSet("spendreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		io.WriteString(fs.Output(), usage) //nolint:errcheck
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.ImportSpec, "i", "", "Import specification (TOML or YAML)")
	fs.StringVar(&opts.ImportSpec, "ff", "", "Alias for -i")
	fs.StringVar(&opts.GroupSpec, "g", "", "Group specification (TOML or YAML)")
	fs.BoolVar(&opts.Serve, "s", false, "Serve charts instead of writing the report")
	fs.StringVar(&opts.Addr, "addr", server.DefaultAddr, "Chart server address")
	fs.StringVar(&opts.Output, "o", report.DefaultXLSXPath, "Workbook path")
	fs.StringVar(&opts.Currency, "currency", report.DefaultCurrency, "Currency symbol used in the workbook")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Verbose logging")
	fs.BoolVar(&opts.Version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.Version {
		return &opts, nil
	}

	switch fs.NArg() {
	case 0:
		fs.Usage()
		return nil, errors.New("missing statement file")
	case 1:
		opts.Input = fs.Arg(0)
	default:
		return nil, errors.New("expected exactly one statement file")
	}
	if opts.ImportSpec == "" {
		return nil, errors.New("missing import specification (-i)")
	}

	return &opts, nil
}
