
package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"site-classifier/internal/models"
	"site-classifier/internal/taxonomy"
)

// Classifier labels page text against a taxonomy. One Aho-Corasick automaton
// is built per category at construction; matching never mutates it, so a
// Classifier is safe for concurrent use.
type Classifier struct {
	reg      *taxonomy.Registry
	matchers map[taxonomy.Category]*ahocorasick.Matcher
	sector   *ahocorasick.Matcher
}

func New(reg *taxonomy.Registry) *Classifier {
	c := &Classifier{
		reg:      reg,
		matchers: make(map[taxonomy.Category]*ahocorasick.Matcher),
		sector:   newMatcher(reg.SectorTriggers()),
	}
	for _, cat := range reg.Categories() {
		phrases, err := reg.Lookup(cat)
		if err != nil {
			continue
		}
		c.matchers[cat] = newMatcher(phrases)
	}
	return c
}

func newMatcher(phrases []string) *ahocorasick.Matcher {
	if len(phrases) == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(phrases)
}

// contains reports whether any dictionary entry of m occurs in lowered text.
func contains(m *ahocorasick.Matcher, lowered string) bool {
	if m == nil || lowered == "" {
		return false
	}
	return len(m.MatchThreadSafe([]byte(lowered))) > 0
}

// Registry returns the taxonomy the classifier was built from.
func (c *Classifier) Registry() *taxonomy.Registry { return c.reg }

// Classify reports whether text contains, case-insensitively, at least one
// trigger phrase of cat. Unknown categories never match.
func (c *Classifier) Classify(text string, cat taxonomy.Category) bool {
	return contains(c.matchers[cat], strings.ToLower(text))
}

// ClassifySector returns F&B when text mentions any sector trigger, Bulk otherwise.
func (c *Classifier) ClassifySector(text string) models.Sector {
	if contains(c.sector, strings.ToLower(text)) {
		return models.SectorFB
	}
	return models.SectorBulk
}

// AggregateRelevance is true iff any topic category in labels is true. Role
// categories do not count.
func (c *Classifier) AggregateRelevance(labels map[taxonomy.Category]bool) bool {
	for _, cat := range c.reg.CategoriesInGroup(taxonomy.GroupTopic) {
		if labels[cat] {
			return true
		}
	}
	return false
}

// Label classifies text for every category and returns a fully populated
// record for website.
func (c *Classifier) Label(website, text string) models.SiteResult {
	lowered := strings.ToLower(text)

	matched := make(map[taxonomy.Category]bool, len(c.matchers))
	labels := make(map[taxonomy.Category]models.Label, len(c.matchers))
	for _, cat := range c.reg.Categories() {
		hit := contains(c.matchers[cat], lowered)
		matched[cat] = hit
		labels[cat] = models.LabelOf(hit)
	}

	sector := models.SectorBulk
	if contains(c.sector, lowered) {
		sector = models.SectorFB
	}

	return models.SiteResult{
		Website:  website,
		Sector:   sector,
		Labels:   labels,
		Relevant: models.LabelOf(c.AggregateRelevance(matched)),
	}
}
