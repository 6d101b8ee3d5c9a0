package registry

import (
	"fmt"
	"io"
)

// ResolveOptions controls how far dependency resolution reaches.
type ResolveOptions struct {
	// Shallow limits expansion to direct dependencies. A dependency's own
	// dependencies are then not included.
	Shallow bool
}

// Resolver computes the files and external packages needed to bundle
// components described by a DependencyMap. It never mutates the map, so
// repeated calls with the same key return the same result.
type Resolver struct {
	deps DependencyMap
	opts ResolveOptions
}

// NewResolver returns a Resolver over deps.
func NewResolver(deps DependencyMap, opts ResolveOptions) *Resolver {
	return &Resolver{deps: deps, opts: opts}
}

// Has reports whether key is in the dependency map.
func (r *Resolver) Has(key string) bool {
	_, ok := r.deps[key]
	return ok
}

// Files returns the deduplicated file list for key: its own files, then the
// files of its dependencies in breadth-first order, then its style files.
// An unknown key yields an empty list.
func (r *Resolver) Files(key string) []string {
	return r.FilesFor([]string{key})
}

// FilesFor returns the union of Files over keys, first occurrence wins.
func (r *Resolver) FilesFor(keys []string) []string {
	set := newOrderedSet()
	for _, key := range keys {
		entry, ok := r.deps[key]
		if !ok {
			continue
		}
		set.add(entry.Files...)
		for _, dep := range r.dependencies(key) {
			set.add(dep.Files...)
			if !r.opts.Shallow {
				set.add(dep.StyleFiles...)
			}
		}
		set.add(entry.StyleFiles...)
	}
	return set.items()
}

// Packages returns the external packages needed by key, deduplicated in
// order of first encounter. An unknown key yields empty lists.
func (r *Resolver) Packages(key string) PackageSet {
	return r.PackagesFor([]string{key})
}

// PackagesFor returns the union of Packages over keys.
func (r *Resolver) PackagesFor(keys []string) PackageSet {
	deps := newOrderedSet()
	peers := newOrderedSet()
	for _, key := range keys {
		entry, ok := r.deps[key]
		if !ok {
			continue
		}
		deps.add(entry.PackageDeps...)
		peers.add(entry.PeerDeps...)
		for _, dep := range r.dependencies(key) {
			deps.add(dep.PackageDeps...)
			peers.add(dep.PeerDeps...)
		}
	}
	return PackageSet{Dependencies: deps.items(), PeerDependencies: peers.items()}
}

// dependencies returns the entries reachable from key, excluding key itself,
// in breadth-first order. The visited set keeps cyclic maps from looping.
// Unknown dependency keys are skipped.
func (r *Resolver) dependencies(key string) []DependencyEntry {
	root, ok := r.deps[key]
	if !ok {
		return nil
	}

	visited := map[string]bool{key: true}
	queue := append([]string(nil), root.Dependencies...)
	var result []DependencyEntry

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true

		entry, ok := r.deps[next]
		if !ok {
			continue
		}
		result = append(result, entry)
		if !r.opts.Shallow {
			queue = append(queue, entry.Dependencies...)
		}
	}
	return result
}

// Order returns every key reachable from keys with dependencies before
// dependents. Unknown keys are left out. In shallow mode the result is
// limited to keys and their direct dependencies, still ordered over the
// full graph.
func (r *Resolver) Order(keys []string) []string {
	var include map[string]bool
	if r.opts.Shallow {
		include = make(map[string]bool)
		for _, key := range keys {
			entry, ok := r.deps[key]
			if !ok {
				continue
			}
			include[key] = true
			for _, dep := range entry.Dependencies {
				if _, ok := r.deps[dep]; ok {
					include[dep] = true
				}
			}
		}
	}

	seen := make(map[string]bool)
	var result []string
	for _, key := range keys {
		r.orderRecursive(key, include, seen, &result)
	}
	return result
}

// orderRecursive emits key after its dependencies. A nil include emits
// every reachable key.
func (r *Resolver) orderRecursive(key string, include, seen map[string]bool, result *[]string) {
	if seen[key] {
		return
	}
	seen[key] = true

	entry, ok := r.deps[key]
	if !ok {
		return
	}
	for _, dep := range entry.Dependencies {
		r.orderRecursive(dep, include, seen, result)
	}
	if include == nil || include[key] {
		*result = append(*result, key)
	}
}

// Tree builds the dependency tree rooted at key. Keys seen earlier in the
// tree are marked Deduped and not expanded again; unknown keys are marked
// Missing.
func (r *Resolver) Tree(key string) *DependencyNode {
	seen := make(map[string]bool)
	return r.buildNode(key, seen)
}

func (r *Resolver) buildNode(key string, seen map[string]bool) *DependencyNode {
	node := &DependencyNode{Key: key}

	if seen[key] {
		node.Deduped = true
		return node
	}
	seen[key] = true

	entry, ok := r.deps[key]
	if !ok {
		node.Missing = true
		return node
	}
	node.Entry = &entry

	for _, dep := range entry.Dependencies {
		node.Children = append(node.Children, r.buildNode(dep, seen))
	}
	return node
}

// PrintTree prints the dependency tree with box-drawing characters.
func PrintTree(w io.Writer, node *DependencyNode) {
	printNode(w, node, "", true, true)
}

func printNode(w io.Writer, node *DependencyNode, prefix string, isLast, isRoot bool) {
	if node == nil {
		return
	}

	label := node.Key
	switch {
	case node.Deduped:
		label += " (deduped)"
	case node.Missing:
		label += " (missing)"
	case node.Entry != nil:
		label += fmt.Sprintf(" [%d files]", len(node.Entry.Files)+len(node.Entry.StyleFiles))
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	childPrefix := prefix
	if isRoot {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	for i, child := range node.Children {
		printNode(w, child, childPrefix, i == len(node.Children)-1, false)
	}
}

// orderedSet accumulates unique strings in insertion order.
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), order: []string{}}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.order = append(s.order, v)
	}
}

func (s *orderedSet) items() []string {
	return s.order
}
