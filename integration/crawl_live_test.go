//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"site-classifier/internal/analyzer"
	"site-classifier/internal/classifier"
	"site-classifier/internal/crawler"
	"site-classifier/internal/models"
	"site-classifier/internal/parser"
	"site-classifier/internal/taxonomy"
	"site-classifier/pkg/logger"
)

func TestLiveBrowserAnalysis(t *testing.T) {
	// brand site with food and beverage copy (subject to change / blocking)
	url := "www.nestle.com"

	l, err := crawler.NewRodLauncher(crawler.DefaultBrowserConfig())
	if err != nil {
		t.Skipf("skipping: %v", err)
		return
	}

	f := crawler.NewBrowserFetcher(l, crawler.DefaultFetchConfig(), logger.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a := analyzer.New(f, parser.New(), classifier.New(taxonomy.Default()), logger.NewNop())
	res := a.Analyze(ctx, url)
	if res.Errored() {
		t.Skipf("skipping: fetch failed due to network/blocking: %s", res.Reason)
		return
	}

	assert.Equal(t, models.SectorFB, res.Sector)
	assert.Greater(t, res.WordCount, 0)
	assert.Len(t, res.Labels, len(taxonomy.Default().Categories()))
}
