package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrInvalidPack is returned when a pack fails validation at registration.
	ErrInvalidPack = errors.New("invalid pack")
	// ErrInvalidSection is returned when a section fails validation at registration.
	ErrInvalidSection = errors.New("invalid section")
)

// Registry holds the registered packs and sections. Packs keep their
// registration order; re-registering an id replaces the entry in place.
//
// A Registry is built once at startup and passed to whatever needs it.
// Writes are serialized, so packs may be registered from several goroutines.
type Registry struct {
	mu       sync.RWMutex
	packs    []ComponentPack
	index    map[string]int // pack id -> position in packs
	sections []Section
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register validates pack and inserts it, or overwrites the pack already
// registered under the same id. The result tells the caller which happened.
// A pack with no variants is valid and enumerates as empty.
func (r *Registry) Register(pack ComponentPack) (RegisterResult, error) {
	if err := validatePack(pack); err != nil {
		return Inserted, err
	}

	pack = clonePack(pack)

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[pack.ID]; ok {
		r.packs[i] = pack
		return Replaced, nil
	}
	r.index[pack.ID] = len(r.packs)
	r.packs = append(r.packs, pack)
	return Inserted, nil
}

// All returns every pack in registration order. The packs are copies;
// changing them does not affect the registry.
func (r *Registry) All() []ComponentPack {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ComponentPack, len(r.packs))
	for i, p := range r.packs {
		out[i] = clonePack(p)
	}
	return out
}

// ByID looks up a pack. The boolean is false if no pack has that id.
func (r *Registry) ByID(id string) (ComponentPack, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return ComponentPack{}, false
	}
	return clonePack(r.packs[i]), true
}

// ByCategory returns the packs whose category equals category, in registration order.
func (r *Registry) ByCategory(category string) []ComponentPack {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []ComponentPack
	for _, p := range r.packs {
		if p.Category == category {
			filtered = append(filtered, clonePack(p))
		}
	}
	return filtered
}

// Categories returns the distinct pack categories in first-seen order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var cats []string
	for _, p := range r.packs {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return cats
}

// Len returns the number of registered packs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packs)
}

// RegisterSection appends a section. Sections are not keyed; duplicates are kept.
func (r *Registry) RegisterSection(s Section) error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSection)
	}

	s.Tags = slices.Clone(s.Tags)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sections = append(r.sections, s)
	return nil
}

// Sections returns the registered sections in registration order.
func (r *Registry) Sections() []Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		s.Tags = slices.Clone(s.Tags)
		out[i] = s
	}
	return out
}

// clonePack copies the slices of p so the registry and its callers never
// share backing arrays.
func clonePack(p ComponentPack) ComponentPack {
	p.Tags = slices.Clone(p.Tags)
	p.Dependencies = slices.Clone(p.Dependencies)
	p.Variants = slices.Clone(p.Variants)
	for i := range p.Variants {
		p.Variants[i].Tags = slices.Clone(p.Variants[i].Tags)
	}
	return p
}

// validatePack checks the required fields of a pack and its variants.
func validatePack(pack ComponentPack) error {
	if pack.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPack)
	}
	if pack.Name == "" {
		return fmt.Errorf("%w %q: missing name", ErrInvalidPack, pack.ID)
	}

	seen := make(map[string]bool, len(pack.Variants))
	for i, v := range pack.Variants {
		if v.ID == "" {
			return fmt.Errorf("%w %q: variant %d has no id", ErrInvalidPack, pack.ID, i)
		}
		if seen[v.ID] {
			return fmt.Errorf("%w %q: duplicate variant id %q", ErrInvalidPack, pack.ID, v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}
