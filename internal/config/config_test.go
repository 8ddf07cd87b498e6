package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EngineBrowser, cfg.Fetch.Engine)
	assert.Equal(t, 15*time.Second, cfg.Fetch.ReadyTimeout)
	assert.Equal(t, "body", cfg.Fetch.ReadySelector)
	assert.Equal(t, 2*time.Second, cfg.Fetch.ScrollSettle)
	assert.Equal(t, 3, cfg.Fetch.MaxScrolls)
	assert.Equal(t, 3*time.Second, cfg.Batch.Delay)
	assert.Equal(t, 1920, cfg.Browser.WindowWidth)
	assert.Equal(t, 1080, cfg.Browser.WindowHeight)
	assert.Equal(t, "website_analysis.csv", cfg.Output.CSV)
	assert.Equal(t, []string{"stderr", "scraper.log"}, cfg.Log.OutputPaths)
	assert.Len(t, cfg.Sites, 40)
	assert.Equal(t, "www.nestle.com", cfg.Sites[0])
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fetch:
  engine: http
  ready_timeout: 5s
batch:
  delay: 250ms
sites:
  - example.com
  - https://example.org
`), 0o600))
	t.Setenv("SITECLASS_BATCH_DELAY", "1s")
	t.Setenv("SITECLASS_OUTPUT_CSV", "out.csv")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EngineHTTP, cfg.Fetch.Engine)
	assert.Equal(t, 5*time.Second, cfg.Fetch.ReadyTimeout)
	assert.Equal(t, time.Second, cfg.Batch.Delay, "environment wins over file")
	assert.Equal(t, "out.csv", cfg.Output.CSV)
	assert.Equal(t, []string{"example.com", "https://example.org"}, cfg.Sites)
	assert.Equal(t, 3, cfg.CrawlerFetch().MaxScrolls)
	assert.Equal(t, cfg.Browser.UserAgent, cfg.CrawlerBrowser().UserAgent)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Fetch.Engine = "carrier-pigeon"
	cfg.Fetch.ReadyTimeout = 0
	cfg.Batch.Delay = -time.Second

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.engine")
	assert.Contains(t, err.Error(), "ready_timeout")
	assert.Contains(t, err.Error(), "batch.delay")
}
