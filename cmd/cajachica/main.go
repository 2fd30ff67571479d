package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cajachica/internal/amqp"
	"cajachica/internal/cli"
	apphttp "cajachica/internal/http"
	"cajachica/internal/services"
)

func main() {
	cfg, repo := cli.Bootstrap()
	defer repo.Close()

	// The AMQP client is optional. Without it movements stay local and the
	// worker's periodic sweep picks them up once the queue comes back.
	var publisher services.MirrorPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Warn("AMQP unavailable, movements will mirror via the sweep", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			slog.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	expenses := services.NewExpenseService(repo, publisher)
	funds := services.NewFundService(repo)
	periods := services.NewPeriodService(repo)
	catalog := services.NewCatalogService(repo)
	reports := services.NewReportService(repo, repo, periods)

	srv := apphttp.NewServer(":"+cfg.Port, expenses, funds, periods, catalog, reports)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	slog.Info("Starting cajachica server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}
