package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/linear/linear-release/pkg/cli/config"
	"github.com/linear/linear-release/pkg/domain/types"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
	)

	flags := append(loggerCfg.Flags(), sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Link commits to Linear issues for release tracking",
		Version: types.Version,
		Flags:   flags,
		Commands: []*cli.Command{
			cmdScan(&loggerCfg),
			cmdSync(&loggerCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		slog.Default().Error("command failed", slog.Any("error", err))
		reportError(&sentryCfg, err)
		return err
	}

	return nil
}

// setupLogger configures the logger on the given writer and installs it
// as both the slog default and the context logger. Commands that print
// JSON results to stdout pass stderr here.
func setupLogger(ctx context.Context, cfg *config.Logger, w io.Writer) (context.Context, error) {
	logger, err := cfg.Configure(w)
	if err != nil {
		return ctx, err
	}

	slog.SetDefault(logger)
	return ctxlog.With(ctx, logger), nil
}

// reportError forwards the failure to Sentry when a DSN is configured.
func reportError(cfg *config.Sentry, err error) {
	enabled, initErr := cfg.Configure()
	if initErr != nil {
		slog.Default().Warn("failed to initialize Sentry", slog.Any("error", initErr))
		return
	}
	if !enabled {
		return
	}

	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
}
