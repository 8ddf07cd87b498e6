
// Package taxonomy holds the fixed category set used to label sites and the
// trigger phrases that signal each category.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned by Lookup for a name the registry does not define.
var ErrUnknownCategory = errors.New("unknown category")

// Category names one classification dimension.
type Category string

// Group partitions categories into roles and topics.
type Group int

const (
	GroupRole Group = iota
	GroupTopic
)

func (g Group) String() string {
	switch g {
	case GroupRole:
		return "role"
	case GroupTopic:
		return "topic"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Definition is the input used to build a Registry.
type Definition struct {
	Category Category
	Group    Group
	Phrases  []string
}

// Registry maps categories to their trigger phrases. It is read-only once
// built and safe to share between goroutines.
type Registry struct {
	phrases map[Category][]string
	groups  map[Group][]Category
	sector  []string
}

// New builds a registry from definitions. Phrases are lower-cased; order of
// definitions fixes the order returned by CategoriesInGroup.
func New(defs []Definition, sectorTriggers []string) (*Registry, error) {
	r := &Registry{
		phrases: make(map[Category][]string, len(defs)),
		groups:  make(map[Group][]Category, 2),
		sector:  lowerAll(sectorTriggers),
	}
	for _, d := range defs {
		if d.Category == "" {
			return nil, errors.New("taxonomy: empty category name")
		}
		if _, dup := r.phrases[d.Category]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate category %q", d.Category)
		}
		if d.Group != GroupRole && d.Group != GroupTopic {
			return nil, fmt.Errorf("taxonomy: category %q has invalid %s", d.Category, d.Group)
		}
		r.phrases[d.Category] = lowerAll(d.Phrases)
		r.groups[d.Group] = append(r.groups[d.Group], d.Category)
	}
	return r, nil
}

// Lookup returns a copy of the trigger phrases for c.
func (r *Registry) Lookup(c Category) ([]string, error) {
	p, ok := r.phrases[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return append([]string(nil), p...), nil
}

// CategoriesInGroup returns the categories of g in definition order.
func (r *Registry) CategoriesInGroup(g Group) []Category {
	return append([]Category(nil), r.groups[g]...)
}

// Categories returns role categories followed by topic categories. This is
// also the column order of tabular output.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.phrases))
	out = append(out, r.groups[GroupRole]...)
	return append(out, r.groups[GroupTopic]...)
}

// SectorTriggers returns the words that mark a site as food & beverage.
func (r *Registry) SectorTriggers() []string {
	return append([]string(nil), r.sector...)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
