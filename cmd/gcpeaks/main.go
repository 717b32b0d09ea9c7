package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gcpeaks/internal/config"
	apperrors "gcpeaks/internal/errors"
	"gcpeaks/internal/infrastructure"
	"gcpeaks/internal/operations"
	"gcpeaks/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run parses flags, loads configuration and runs one batch. Errors are
// logged before they are returned.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML configuration file (defaults to gcpeaks.yaml or configs/gcpeaks.yaml)")
	root := flags.String("root", "", "root folder holding the data folder")
	name := flags.String("name", "", "data folder name inside root")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load(*configPath, func(c *config.Config) {
		if *root != "" {
			c.Analysis.Root = *root
		}
		if *name != "" {
			c.Analysis.Name = *name
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureRunID(ctx)
	logger.InfoContext(ctx, "Starting peak analysis",
		slog.String("version", contracts.Version),
		slog.String("commit", contracts.GitCommit),
		slog.String("root", cfg.Analysis.Root),
		slog.String("name", cfg.Analysis.Name),
		slog.Int("peaks", len(cfg.Analysis.Peaks)))

	providers, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to initialize telemetry")
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Telemetry shutdown failed")
		}
	}()

	batch, err := operations.NewBatch(cfg, providers, stdout, logger)
	if err != nil {
		logError(ctx, logger, err)
		return err
	}

	if _, err := batch.Run(ctx); err != nil {
		logError(ctx, logger, err)
		return err
	}
	return nil
}

func logError(ctx context.Context, logger *slog.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger.ErrorContext(ctx, "Peak analysis failed", appErr.LogAttrs()...)
		return
	}
	infrastructure.WithError(logger, err).ErrorContext(ctx, "Peak analysis failed")
}
