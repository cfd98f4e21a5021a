package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/kartstats/internal/server"
)

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := bootstrap(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.close()
	logger := a.logger

	logger.Info("kartstats server starting")

	// A failed load leaves the server up so POST /api/v1/reload can recover.
	if err := a.hydrate(ctx); err != nil {
		logger.Error("dataset unavailable", zap.Error(err))
	}

	addr := a.settings.Server.Addr()
	if addr == ":" {
		addr = "0.0.0.0:8080"
	}
	srv := server.New(addr, a.state, a.loader, logger.Named("server"), server.Options{
		SearchRate:  a.settings.Server.SearchRate,
		SearchBurst: a.settings.Server.SearchBurst,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("kartstats server ready", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("kartstats server stopped")
}
