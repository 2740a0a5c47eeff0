package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/juev/spendreport/internal/analyzer"
	"github.com/juev/spendreport/internal/config"
	"github.com/juev/spendreport/internal/formatter"
	"github.com/juev/spendreport/internal/importer"
	"github.com/juev/spendreport/internal/report"
	"github.com/juev/spendreport/internal/server"
	"github.com/juev/spendreport/internal/source"
)

func run(ctx context.Context, opts *options, stdout io.Writer, logger *zap.Logger) error {
	importCfg, err := config.LoadImport(source.ResolvePath("", opts.ImportSpec))
	if err != nil {
		return err
	}
	groupPath := opts.GroupSpec
	if groupPath != "" {
		groupPath = source.ResolvePath("", groupPath)
	}
	groupCfg, err := config.LoadGroups(groupPath)
	if err != nil {
		return err
	}

	im, err := importer.New(importCfg, importer.WithLogger(logger))
	if err != nil {
		return err
	}
	classifier, err := analyzer.NewClassifier(groupCfg.Mappings())
	if err != nil {
		return err
	}
	groups := analyzer.NewGroups(classifier, analyzer.WithLogger(logger))

	input := source.ResolvePath("", opts.Input)
	if err := im.ImportFile(input, groups.Push); err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}
	logger.Debug("imported",
		zap.String("file", input),
		zap.Int("records", groups.Len()),
		zap.Int("diagnostics", len(im.Diagnostics())+len(groups.Diagnostics())))

	agg, err := groups.Aggregate()
	if err != nil {
		return err
	}

	if opts.Serve {
		srv, err := server.New(agg, logger, server.WithAddr(opts.Addr))
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Hosting web server on %s\n", srv.URL())
		return srv.Run(ctx)
	}

	rep := report.Build(agg)
	locale := im.Locale()
	console := report.NewConsole(stdout,
		report.WithNumberFormat(formatter.ForSeparators(locale.Decimal, locale.Group)))
	if err := console.Render(rep); err != nil {
		return err
	}

	output := source.ResolvePath("", opts.Output)
	if err := report.NewWorkbook(report.WithCurrency(opts.Currency)).Save(rep, output); err != nil {
		return err
	}
	logger.Debug("workbook written", zap.String("path", output))
	return nil
}
