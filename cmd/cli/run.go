package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"site-classifier/internal/app"
	"site-classifier/internal/config"
	"site-classifier/internal/ioformats"
	"site-classifier/internal/metrics"
	"site-classifier/internal/models"
	"site-classifier/internal/storage"
	"site-classifier/pkg/logger"
)

type runOptions struct {
	input       string
	output      string
	ndjson      string
	db          string
	metricsFile string
	noTable     bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze every site in the input list and write the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.input, "input", "", "site list (csv with url column, ndjson, yaml or txt); default: configured sites")
	f.StringVar(&opts.output, "output", "", "CSV output path (overrides output.csv)")
	f.StringVar(&opts.ndjson, "ndjson", "", "also write full records as NDJSON to this path")
	f.StringVar(&opts.db, "db", "", "SQLite run history path (overrides output.sqlite)")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Prometheus textfile path (overrides output.metrics_file)")
	f.BoolVar(&opts.noTable, "no-table", false, "do not print the result table")
	return cmd
}

func loadConfig(root *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return nil, err
	}
	if root.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Output.CSV = opts.output
	}
	if opts.db != "" {
		cfg.Output.SQLite = opts.db
	}
	if opts.metricsFile != "" {
		cfg.Output.MetricsFile = opts.metricsFile
	}
	if opts.noTable {
		cfg.Output.Table = false
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	urls := cfg.Sites
	if opts.input != "" {
		urls, err = ioformats.ReadURLs(opts.input)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	// a missing browser aborts here, before any site is processed
	fetcher, err := app.NewFetcher(cfg, log)
	if err != nil {
		log.Error("setup failed", logger.Error(err))
		return err
	}
	a := app.New(cfg, log, fetcher, metrics.New(nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	results := a.Runner.Run(ctx, urls)
	finished := time.Now()

	if len(results) == 0 {
		log.Warn("no results were obtained")
		return nil
	}

	if cfg.Output.Table {
		ioformats.RenderTable(cmd.OutOrStdout(), a.Registry, results)
	}
	if cfg.Output.CSV != "" {
		if err := ioformats.WriteCSVFile(cfg.Output.CSV, a.Registry, results); err != nil {
			return err
		}
		log.Info("results saved", logger.String("path", cfg.Output.CSV))
	}
	if opts.ndjson != "" {
		if err := writeNDJSON(opts.ndjson, results); err != nil {
			return err
		}
	}
	if cfg.Output.SQLite != "" {
		if err := saveHistory(context.Background(), cfg.Output.SQLite, a, started, finished, results); err != nil {
			return err
		}
	}
	if cfg.Output.MetricsFile != "" {
		if err := a.Metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func writeNDJSON(path string, results models.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ioformats.WriteNDJSON(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func saveHistory(ctx context.Context, path string, a *app.App, started, finished time.Time, results models.BatchResult) error {
	store, err := storage.Open(path, a.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveBatch(ctx, started, finished, results)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	a.Log.Info("run recorded", logger.String("run_id", id), logger.String("db", path))
	return nil
}
