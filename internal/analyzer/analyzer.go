// Package analyzer turns one URL into one classification record. Analyze is
// total: every failure below it becomes an errored record.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"site-classifier/internal/classifier"
	"site-classifier/internal/crawler"
	"site-classifier/internal/models"
	"site-classifier/internal/parser"
	"site-classifier/pkg/logger"
)

// Fetcher returns the rendered markup of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type Analyzer struct {
	fetcher    Fetcher
	parser     *parser.Parser
	classifier *classifier.Classifier
	log        logger.Logger
	now        func() time.Time
}

func New(f Fetcher, p *parser.Parser, c *classifier.Classifier, log logger.Logger) *Analyzer {
	return &Analyzer{fetcher: f, parser: p, classifier: c, log: log, now: time.Now}
}

// Analyze fetches, extracts and classifies rawURL. It never panics and never
// returns an error; failures yield a record whose fields are all "Error".
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (res models.SiteResult) {
	website := crawler.NormalizeURL(rawURL)
	start := a.now()
	log := a.log.With(logger.String("website", website))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			log.Error("unexpected error analyzing site", logger.Error(err))
			res = a.errored(website, err)
		}
		res.Duration = a.now().Sub(start)
	}()

	log.Info("attempting to scrape")
	markup, err := a.fetcher.Fetch(ctx, website)
	if err != nil {
		log.Error("site analysis failed",
			logger.String("kind", crawler.KindOf(err).String()),
			logger.Error(err))
		return a.errored(website, err)
	}

	doc := a.parser.Extract(markup)
	res = a.classifier.Label(website, doc.Text)
	res.Title = doc.Title
	res.WordCount = doc.WordCount

	log.Info("site analyzed",
		logger.String("sector", string(res.Sector)),
		logger.String("relevant", string(res.Relevant)),
		logger.Int("words", doc.WordCount))
	return res
}

// ClassifyMarkup labels already-fetched markup without touching the network.
func (a *Analyzer) ClassifyMarkup(website, markup string) models.SiteResult {
	return a.ClassifyDocument(website, a.parser.Extract(markup))
}

// ClassifyDocument labels text that has already been extracted.
func (a *Analyzer) ClassifyDocument(website string, doc parser.Document) models.SiteResult {
	res := a.classifier.Label(website, doc.Text)
	res.Title = doc.Title
	res.WordCount = doc.WordCount
	return res
}

func (a *Analyzer) errored(website string, err error) models.SiteResult {
	return models.NewErrored(website, a.classifier.Registry().Categories(), err.Error())
}
