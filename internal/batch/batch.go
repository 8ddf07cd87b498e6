// Package batch runs the site analyzer over an ordered list of URLs, one at
// a time, with a fixed pause between sites.
package batch

import (
	"context"
	"time"

	"site-classifier/internal/models"
	"site-classifier/pkg/logger"
)

// SiteAnalyzer produces exactly one record per URL and never fails.
type SiteAnalyzer interface {
	Analyze(ctx context.Context, url string) models.SiteResult
}

// Observer is notified of each record as soon as it is produced.
type Observer interface {
	Observe(res models.SiteResult)
}

type Runner struct {
	analyzer  SiteAnalyzer
	delay     time.Duration
	log       logger.Logger
	observers []Observer
}

func NewRunner(a SiteAnalyzer, delay time.Duration, log logger.Logger, observers ...Observer) *Runner {
	return &Runner{analyzer: a, delay: delay, log: log, observers: observers}
}

// Run analyzes urls sequentially in input order. The result always has
// len(urls) entries in the same order. Cancelling ctx shortens the pauses;
// remaining sites are still recorded, as errored when their fetch fails.
func (r *Runner) Run(ctx context.Context, urls []string) models.BatchResult {
	out := make(models.BatchResult, 0, len(urls))
	if len(urls) == 0 {
		r.log.Warn("no results were obtained: empty site list")
		return out
	}

	start := time.Now()
	r.log.Info("batch started", logger.Int("sites", len(urls)), logger.Duration("delay", r.delay))

	for i, u := range urls {
		res := r.analyzer.Analyze(ctx, u)
		out = append(out, res)
		for _, o := range r.observers {
			o.Observe(res)
		}
		r.log.Debug("site recorded", logger.Int("index", i), logger.String("website", res.Website))

		r.pause(ctx)
	}

	s := out.Summary()
	r.log.Info("batch completed",
		logger.Int("sites", s.Total),
		logger.Int("succeeded", s.Succeeded),
		logger.Int("errored", s.Errored),
		logger.Int("relevant", s.Relevant),
		logger.Duration("elapsed", time.Since(start)))
	if s.Succeeded == 0 {
		r.log.Warn("no site could be analyzed")
	}
	return out
}

func (r *Runner) pause(ctx context.Context) {
	if r.delay <= 0 {
		return
	}
	t := time.NewTimer(r.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
