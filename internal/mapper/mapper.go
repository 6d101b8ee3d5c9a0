// Package mapper flattens the registry into a uniform listing of
// components and sections for the map and search commands.
package mapper

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/uipacks/uipacks/internal/registry"
)

// Item types.
const (
	TypeComponent = "component"
	TypeSection   = "section"
)

// Group titles that are not pack categories.
const (
	Uncategorized = "uncategorized"
	SectionsGroup = "sections"
)

// Item is one entry of the flattened listing.
type Item struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

// Stats holds aggregate counts over the listing.
type Stats struct {
	TotalComponents int `json:"totalComponents"`
	TotalSections   int `json:"totalSections"`
	Total           int `json:"total"`
}

// Group is a titled run of items.
type Group struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Filter narrows a search beyond the free-text query. Zero values match everything.
type Filter struct {
	Type string   // TypeComponent or TypeSection
	Tags []string // matches if the item has any of these tags
}

// Mapper produces read-only views over a registry.
type Mapper struct {
	reg    *registry.Registry
	logger *log.Logger
}

// New returns a Mapper over reg. A nil logger discards warnings.
func New(reg *registry.Registry, logger *log.Logger) *Mapper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Mapper{reg: reg, logger: logger}
}

// Stats counts the items Items would return.
func (m *Mapper) Stats() Stats {
	var s Stats
	for _, it := range m.Items() {
		switch it.Type {
		case TypeComponent:
			s.TotalComponents++
		case TypeSection:
			s.TotalSections++
		}
	}
	s.Total = s.TotalComponents + s.TotalSections
	return s
}

// Items flattens packs, variants and sections in registry order: one
// component item per variant, one for a pack with no variants, then one
// item per section. Entries without a title or name are logged and skipped.
func (m *Mapper) Items() []Item {
	items := []Item{}

	for _, p := range m.reg.All() {
		if p.Title == "" {
			m.logger.Warn("skipping pack without title", "pack", p.ID)
			continue
		}

		if len(p.Variants) == 0 {
			items = append(items, Item{
				Name:        p.Title,
				Path:        "packs/" + p.ID,
				Type:        TypeComponent,
				Description: p.Description,
				Tags:        union(p.Tags, nil),
				Category:    p.Category,
				Featured:    p.Featured,
			})
			continue
		}

		for _, v := range p.Variants {
			if v.Title == "" {
				m.logger.Warn("skipping variant without title", "pack", p.ID, "variant", v.ID)
				continue
			}
			desc := v.Description
			if desc == "" {
				desc = p.Description
			}
			items = append(items, Item{
				Name:        p.Title + " / " + v.Title,
				Path:        "packs/" + p.ID + "/" + v.ID,
				Type:        TypeComponent,
				Description: desc,
				Tags:        union(p.Tags, v.Tags),
				Category:    p.Category,
				Featured:    p.Featured || v.Featured,
			})
		}
	}

	for _, s := range m.reg.Sections() {
		if s.Name == "" {
			m.logger.Warn("skipping section without name", "path", s.Path)
			continue
		}
		path := s.Path
		if path == "" {
			path = "sections/" + s.Name
		}
		items = append(items, Item{
			Name:        s.Name,
			Path:        path,
			Type:        TypeSection,
			Description: s.Description,
			Tags:        union(s.Tags, nil),
		})
	}

	return items
}

// Groups returns the listing grouped by pack category in first-seen
// order, followed by uncategorized packs and then sections. Empty groups
// are omitted.
func (m *Mapper) Groups() []Group {
	var (
		groups        []Group
		index         = make(map[string]int)
		uncategorized []Item
		sections      []Item
	)

	for _, it := range m.Items() {
		switch {
		case it.Type == TypeSection:
			sections = append(sections, it)
		case it.Category == "":
			uncategorized = append(uncategorized, it)
		default:
			i, ok := index[it.Category]
			if !ok {
				i = len(groups)
				index[it.Category] = i
				groups = append(groups, Group{Title: it.Category})
			}
			groups[i].Items = append(groups[i].Items, it)
		}
	}

	if len(uncategorized) > 0 {
		groups = append(groups, Group{Title: Uncategorized, Items: uncategorized})
	}
	if len(sections) > 0 {
		groups = append(groups, Group{Title: SectionsGroup, Items: sections})
	}
	return groups
}

// Search returns the items whose name, description or any tag contains
// query, ignoring case, in registry order. An empty query matches every item.
func (m *Mapper) Search(query string) []Item {
	return m.SearchFiltered(query, Filter{})
}

// SearchFiltered is Search with additional type and tag filters, AND-combined.
func (m *Mapper) SearchFiltered(query string, f Filter) []Item {
	matches := []Item{}
	q := strings.ToLower(query)
	for _, it := range m.Items() {
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if len(f.Tags) > 0 && !matchesAnyTag(it.Tags, f.Tags) {
			continue
		}
		if q != "" && !matchesQuery(it, q) {
			continue
		}
		matches = append(matches, it)
	}
	return matches
}

// matchesQuery expects q to be lower case already.
func matchesQuery(it Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Description), q) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchesAnyTag returns true if any of the item's tags equals any filter tag,
// ignoring case.
func matchesAnyTag(itemTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, tt := range itemTags {
			if strings.EqualFold(tt, ft) {
				return true
			}
		}
	}
	return false
}

// union returns a followed by the elements of b not already present, or nil
// if both are empty.
func union(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
