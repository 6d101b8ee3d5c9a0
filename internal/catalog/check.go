package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/uipacks/uipacks/internal/manifest"
	"github.com/uipacks/uipacks/internal/registry"
)

// Problem is a single defect found by Check.
type Problem struct {
	File    string // catalog-relative path, empty for graph-level problems
	Message string
}

func (p Problem) String() string {
	if p.File == "" {
		return p.Message
	}
	return p.File + ": " + p.Message
}

// Check validates every catalog document in fsys against its schema and
// checks the dependency map for unknown references and cycles. It returns
// an error only when the catalog cannot be read at all.
func Check(fsys fs.FS) ([]Problem, error) {
	var problems []Problem

	docs, err := documents(fsys)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]string) // pack id -> first file
	for _, doc := range docs {
		data, err := fs.ReadFile(fsys, doc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", doc, err)
		}
		kind := manifest.KindOf(doc)

		result, err := manifest.Validate(kind, doc, data)
		if err != nil {
			problems = append(problems, Problem{File: doc, Message: err.Error()})
			continue
		}
		for _, issue := range result.Issues {
			problems = append(problems, Problem{File: doc, Message: issue.String()})
		}

		if kind == manifest.KindPack && result.Valid {
			m, err := manifest.DecodePack(doc, data)
			if err != nil {
				problems = append(problems, Problem{File: doc, Message: err.Error()})
				continue
			}
			if first, dup := ids[m.ID]; dup {
				problems = append(problems, Problem{File: doc, Message: fmt.Sprintf("pack id %q already defined in %s", m.ID, first)})
				continue
			}
			ids[m.ID] = doc
			if err := validateVariants(m); err != nil {
				problems = append(problems, Problem{File: doc, Message: err.Error()})
			}
		}

		if kind == manifest.KindDependencies && result.Valid {
			m, err := manifest.DecodeDependencies(doc, data)
			if err != nil {
				problems = append(problems, Problem{File: doc, Message: err.Error()})
				continue
			}
			deps := make(registry.DependencyMap, len(m.Components))
			for key, d := range m.Components {
				deps[key] = registry.DependencyEntry{Files: d.Files, Dependencies: d.Dependencies}
			}
			for _, issue := range deps.Check() {
				problems = append(problems, Problem{File: doc, Message: issue.String()})
			}
		}
	}
	return problems, nil
}

// validateVariants reports duplicate variant ids, which the schema cannot express.
func validateVariants(m *manifest.PackManifest) error {
	seen := make(map[string]bool, len(m.Variants))
	for _, v := range m.Variants {
		if seen[v.ID] {
			return fmt.Errorf("duplicate variant id %q", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}

// documents lists the catalog documents present in fsys in lexical order:
// pack files first, then the sections and dependency files.
func documents(fsys fs.FS) ([]string, error) {
	var docs []string

	entries, err := fs.ReadDir(fsys, manifest.PacksDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", manifest.PacksDir, err)
	}
	for _, entry := range entries {
		name := path.Join(manifest.PacksDir, entry.Name())
		if !entry.IsDir() && manifest.KindOf(name) == manifest.KindPack {
			docs = append(docs, name)
		}
	}

	for _, name := range []string{manifest.SectionsFile, manifest.DependenciesFile} {
		if _, err := fs.Stat(fsys, name); err == nil {
			docs = append(docs, name)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	return docs, nil
}
