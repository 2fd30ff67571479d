package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"cajachica/internal/amqp"
	"cajachica/internal/cli"
	"cajachica/internal/sheets"
	gsheet "cajachica/internal/sheets/google"
	mem "cajachica/internal/sheets/memory"
	"cajachica/internal/worker"
)

func main() {
	cfg, repo := cli.Bootstrap()
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a spreadsheet the worker still runs, writing to an in-memory
	// ledger. Useful for local development against a real queue.
	var ledger sheets.LedgerWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewClient(ctx, cfg)
		if err != nil {
			slog.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		ledger = client
		slog.Info("Google Sheets ledger initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		ledger = mem.New()
		slog.Info("No spreadsheet configured, using in-memory ledger")
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		slog.Info("No AMQP URL configured, running on the periodic sweep only")
	}

	mirror := worker.NewMirrorWorker(repo, ledger, cfg.MirrorBatchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return mirror.Run(gctx, amqpClient, cfg.MirrorInterval)
	})

	slog.Info("Mirror worker started",
		"batch_size", cfg.MirrorBatchSize, "interval", cfg.MirrorInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker stopped gracefully")
}
