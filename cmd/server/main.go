package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"site-classifier/internal/app"
	"site-classifier/internal/config"
	"site-classifier/internal/metrics"
	"site-classifier/pkg/logger"
)

func main() {
	cfgPath := ""
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	l, err := app.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = l.Sync() }()

	fetcher, err := app.NewFetcher(cfg, l)
	if err != nil {
		l.Error("setup failed", logger.Error(err))
		fmt.Fprintln(os.Stderr, "Setup Error:", err)
		os.Exit(1)
	}

	a := app.New(cfg, l, fetcher, metrics.New(prometheus.NewRegistry()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(a),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // batch requests are paced and can run for minutes
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		l.Info("server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Error("server error", logger.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
