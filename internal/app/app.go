// Package app wires the pipeline together from configuration.
package app

import (
	"fmt"

	"site-classifier/internal/analyzer"
	"site-classifier/internal/batch"
	"site-classifier/internal/classifier"
	"site-classifier/internal/config"
	"site-classifier/internal/crawler"
	"site-classifier/internal/metrics"
	"site-classifier/internal/parser"
	"site-classifier/internal/taxonomy"
	"site-classifier/pkg/logger"
)

type App struct {
	Config   *config.Config
	Log      logger.Logger
	Registry *taxonomy.Registry
	Analyzer *analyzer.Analyzer
	Runner   *batch.Runner
	Metrics  *metrics.Recorder
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		OutputPaths: cfg.Log.OutputPaths,
		Console:     cfg.Log.Console,
	})
}

// NewFetcher returns the fetcher for the configured engine. With the browser
// engine a missing browser fails here with crawler.ErrSetup.
func NewFetcher(cfg *config.Config, log logger.Logger) (analyzer.Fetcher, error) {
	switch cfg.Fetch.Engine {
	case config.EngineHTTP:
		return crawler.NewHTTPFetcher(cfg.Fetch.ReadyTimeout, cfg.Fetch.ReadyTimeout/3, cfg.Fetch.MaxBodyBytes, cfg.Browser.UserAgent), nil
	case config.EngineBrowser:
		l, err := crawler.NewRodLauncher(cfg.CrawlerBrowser())
		if err != nil {
			return nil, err
		}
		return crawler.NewBrowserFetcher(l, cfg.CrawlerFetch(), log), nil
	default:
		return nil, fmt.Errorf("unknown fetch engine %q", cfg.Fetch.Engine)
	}
}

// New wires the pipeline around fetcher.
func New(cfg *config.Config, log logger.Logger, fetcher analyzer.Fetcher, rec *metrics.Recorder) *App {
	reg := taxonomy.Default()
	a := analyzer.New(fetcher, parser.New(), classifier.New(reg), log)

	var observers []batch.Observer
	if rec != nil {
		observers = append(observers, rec)
	}
	return &App{
		Config:   cfg,
		Log:      log,
		Registry: reg,
		Analyzer: a,
		Runner:   batch.NewRunner(a, cfg.Batch.Delay, log, observers...),
		Metrics:  rec,
	}
}
