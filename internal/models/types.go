
package models

import (
	"time"

	"site-classifier/internal/taxonomy"
)

// Label is the per-category outcome written to output.
type Label string

const (
	Yes        Label = "Yes"
	No         Label = "No"
	LabelError Label = "Error"
)

// LabelOf maps a match result onto Yes/No.
func LabelOf(b bool) Label {
	if b {
		return Yes
	}
	return No
}

// Sector is the coarse food & beverage vs bulk split.
type Sector string

const (
	SectorFB    Sector = "F&B"
	SectorBulk  Sector = "Bulk"
	SectorError Sector = "Error"
)

// SiteResult is the classification record for one input URL. A record is
// either fully populated or fully errored; use NewErrored for the latter.
type SiteResult struct {
	Website  string                      `json:"website"`
	Sector   Sector                      `json:"sector"`
	Labels   map[taxonomy.Category]Label `json:"labels"`
	Relevant Label                       `json:"relevant"`

	// diagnostics, not part of tabular output
	Reason    string        `json:"reason,omitempty"`
	Title     string        `json:"title,omitempty"`
	WordCount int           `json:"wordCount,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// NewErrored returns a record with every classification field set to the
// error sentinel.
func NewErrored(website string, categories []taxonomy.Category, reason string) SiteResult {
	labels := make(map[taxonomy.Category]Label, len(categories))
	for _, c := range categories {
		labels[c] = LabelError
	}
	return SiteResult{
		Website:  website,
		Sector:   SectorError,
		Labels:   labels,
		Relevant: LabelError,
		Reason:   reason,
	}
}

// Errored reports whether the record is the error sentinel shape.
func (r SiteResult) Errored() bool {
	return r.Sector == SectorError
}

// Label returns the label for c, or the empty label if c is absent.
func (r SiteResult) Label(c taxonomy.Category) Label {
	return r.Labels[c]
}

// BatchResult holds one SiteResult per input URL in input order.
type BatchResult []SiteResult

// Summary counts outcomes across a batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Errored   int `json:"errored"`
	Relevant  int `json:"relevant"`
}

func (b BatchResult) Summary() Summary {
	s := Summary{Total: len(b)}
	for _, r := range b {
		if r.Errored() {
			s.Errored++
			continue
		}
		s.Succeeded++
		if r.Relevant == Yes {
			s.Relevant++
		}
	}
	return s
}
