package main

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"site-classifier/internal/app"
	"site-classifier/internal/ioformats"
	"site-classifier/internal/models"
	"site-classifier/internal/parser"
	"site-classifier/pkg/logger"
)

type analyzeReq struct {
	URL string `json:"url" binding:"required"`
}

type batchReq struct {
	URLs []string `json:"urls" binding:"required"`
}

// record is the JSON shape of one site: the tabular columns keyed by name.
type record map[string]string

type batchResp struct {
	Results []record       `json:"results"`
	Summary models.Summary `json:"summary"`
}

type handler struct {
	app    *app.App
	parser *parser.Parser
	// one browser session at a time, across all requests
	mu sync.Mutex
}

func newRouter(a *app.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	h := &handler{app: a, parser: parser.New()}

	r := gin.New()
	r.Use(gin.Recovery(), logRequest(a.Log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.Metrics.Gatherer(), promhttp.HandlerOpts{})))
	r.POST("/analyze", h.analyze)
	r.POST("/analyze/batch", h.analyzeBatch)
	r.POST("/classify", h.classify)
	return r
}

func (h *handler) toRecord(res models.SiteResult) record {
	header := ioformats.Header(h.app.Registry)
	row := ioformats.Row(h.app.Registry, res)
	out := make(record, len(header))
	for i, k := range header {
		out[k] = row[i]
	}
	return out
}

// POST /analyze  { "url": "www.example.com" }
func (h *handler) analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	h.mu.Lock()
	res := h.app.Analyzer.Analyze(c.Request.Context(), req.URL)
	h.mu.Unlock()

	if h.app.Metrics != nil {
		h.app.Metrics.Observe(res)
	}
	c.JSON(http.StatusOK, h.toRecord(res))
}

// POST /analyze/batch  { "urls": ["...", "..."] }
func (h *handler) analyzeBatch(c *gin.Context) {
	var req batchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	h.mu.Lock()
	results := h.app.Runner.Run(c.Request.Context(), req.URLs)
	h.mu.Unlock()

	resp := batchResp{Results: make([]record, 0, len(results)), Summary: results.Summary()}
	for _, res := range results {
		resp.Results = append(resp.Results, h.toRecord(res))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /classify?website=...  body: raw HTML
func (h *handler) classify(c *gin.Context) {
	website := c.DefaultQuery("website", "inline")
	doc := h.parser.ExtractReader(http.MaxBytesReader(c.Writer, c.Request.Body, 5<<20), c.ContentType())
	res := h.app.Analyzer.ClassifyDocument(website, doc)
	c.JSON(http.StatusOK, h.toRecord(res))
}

func logRequest(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		l.Info("request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()))
	}
}
