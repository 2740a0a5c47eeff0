package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func runMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	if opts.Version {
		fmt.Fprintf(stdout, "spendreport %s (commit: %s, built: %s)\n", Version, Commit, Date)
		return 0
	}

	logger := newLogger(stderr, opts.Verbose)
	defer logger.Sync() //nolint:errcheck

	if err := run(ctx, opts, stdout, logger); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
