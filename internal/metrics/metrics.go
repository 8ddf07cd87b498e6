// Package metrics records per-site analysis outcomes as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"site-classifier/internal/models"
)

const namespace = "site_classifier"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder implements batch.Observer.
type Recorder struct {
	reg prometheus.Gatherer

	SitesTotal      *prometheus.CounterVec
	RelevantTotal   prometheus.Counter
	SectorTotal     *prometheus.CounterVec
	AnalyzeSeconds  prometheus.Histogram
	LastObservation prometheus.Gauge
}

// New registers the metrics on reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		SitesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_total",
			Help:      "Sites analyzed, by outcome",
		}, []string{"outcome"}),
		RelevantTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relevant_sites_total",
			Help:      "Successfully analyzed sites marked relevant",
		}),
		SectorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sector_total",
			Help:      "Successfully analyzed sites, by sector",
		}, []string{"sector"}),
		AnalyzeSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analyze_duration_seconds",
			Help:      "Wall time of one site analysis, including fetch",
			Buckets:   []float64{1, 2.5, 5, 10, 15, 20, 30, 60},
		}),
		LastObservation: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_observation_timestamp_seconds",
			Help:      "Unix time of the most recent site result",
		}),
	}
}

// Observe records one site result.
func (r *Recorder) Observe(res models.SiteResult) {
	r.AnalyzeSeconds.Observe(res.Duration.Seconds())
	r.LastObservation.Set(float64(time.Now().Unix()))
	if res.Errored() {
		r.SitesTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	r.SitesTotal.WithLabelValues(OutcomeSuccess).Inc()
	r.SectorTotal.WithLabelValues(string(res.Sector)).Inc()
	if res.Relevant == models.Yes {
		r.RelevantTotal.Inc()
	}
}

// Gatherer exposes the underlying registry for HTTP handlers.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the current metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
