package registry

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError indicates that the dependency map contains a cycle.
type CycleError struct {
	// Cycle holds the keys that could not be ordered. It contains every key
	// on a cycle and may also contain keys that depend on one.
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Issue is a single problem found in a dependency map.
type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	if i.Key == "" {
		return i.Message
	}
	return i.Key + ": " + i.Message
}

// Keys returns the component keys in sorted order.
func (m DependencyMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check reports dependencies on unknown keys and cycles. A nil result means
// the map is a well-formed acyclic graph.
func (m DependencyMap) Check() []Issue {
	var issues []Issue
	keys := m.Keys()

	for _, key := range keys {
		for _, dep := range m[key].Dependencies {
			if _, ok := m[dep]; !ok {
				issues = append(issues, Issue{Key: key, Message: fmt.Sprintf("depends on unknown component %q", dep)})
			}
		}
	}

	if _, err := m.TopologicalOrder(); err != nil {
		issues = append(issues, Issue{Message: err.Error()})
	}
	return issues
}

// TopologicalOrder returns all keys with dependencies first using Kahn's
// algorithm. Keys at the same level appear in sorted order. Edges to unknown
// keys are ignored. Returns a *CycleError if the map contains a cycle.
func (m DependencyMap) TopologicalOrder() ([]string, error) {
	keys := m.Keys()
	if len(keys) == 0 {
		return nil, nil
	}

	// dependents maps a key to the keys that depend on it.
	dependents := make(map[string][]string, len(keys))
	inDegree := make(map[string]int, len(keys))
	for _, key := range keys {
		inDegree[key] += 0
		seen := make(map[string]bool)
		for _, dep := range m[key].Dependencies {
			if _, ok := m[dep]; !ok || seen[dep] {
				continue
			}
			seen[dep] = true
			dependents[dep] = append(dependents[dep], key)
			inDegree[key]++
		}
	}

	var queue []string
	for _, key := range keys {
		if inDegree[key] == 0 {
			queue = append(queue, key)
		}
	}

	var result []string
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		result = append(result, key)

		for _, dependent := range dependents[key] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(keys) {
		var cycle []string
		for _, key := range keys {
			if inDegree[key] > 0 {
				cycle = append(cycle, key)
			}
		}
		return nil, &CycleError{Cycle: cycle}
	}
	return result, nil
}
