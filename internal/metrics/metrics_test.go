package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-classifier/internal/models"
	"site-classifier/internal/taxonomy"
)

func TestObserve(t *testing.T) {
	r := New(nil)

	r.Observe(models.SiteResult{Website: "a", Sector: models.SectorFB, Relevant: models.Yes, Duration: 2 * time.Second})
	r.Observe(models.SiteResult{Website: "b", Sector: models.SectorBulk, Relevant: models.No})
	r.Observe(models.NewErrored("c", taxonomy.Default().Categories(), "timeout"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SitesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SitesTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RelevantTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SectorTotal.WithLabelValues("F&B")))

	path := filepath.Join(t.TempDir(), "site_classifier.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "site_classifier_analyze_duration_seconds_count 3")
	assert.Contains(t, string(data), `site_classifier_sites_total{outcome="error"} 1`)
}

func TestNewWithSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.Observe(models.SiteResult{Sector: models.SectorBulk, Relevant: models.No})

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.Equal(t, prometheus.Gatherer(reg), r.Gatherer())
}
