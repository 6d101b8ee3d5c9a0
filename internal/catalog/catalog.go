// Package catalog builds the component registry and dependency map at
// startup. The catalog is read either from the copy embedded in the binary
// or from a catalog directory on disk.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/charmbracelet/log"

	"github.com/uipacks/uipacks/internal/branding"
	"github.com/uipacks/uipacks/internal/config"
	"github.com/uipacks/uipacks/internal/manifest"
	"github.com/uipacks/uipacks/internal/registry"
)

// BuiltinName is the source name reported for the embedded catalog.
const BuiltinName = "builtin"

//go:embed data
var builtinFS embed.FS

// Catalog is a loaded registry plus its dependency map.
type Catalog struct {
	Source   string // directory path, or BuiltinName
	Registry *registry.Registry
	Deps     registry.DependencyMap
	Skipped  int // malformed or invalid entries skipped while loading
}

// Resolver returns a dependency resolver over the catalog's dependency map.
func (c *Catalog) Resolver(opts registry.ResolveOptions) *registry.Resolver {
	return registry.NewResolver(c.Deps, opts)
}

// Location returns the configured catalog directory, checking (in order):
// 1. <PREFIX>_CATALOG env var
// 2. config key "catalog"
// An empty result means the builtin catalog.
func Location() string {
	if v := os.Getenv(branding.EnvVar("CATALOG")); v != "" {
		return v
	}
	return config.Get("catalog")
}

// Open loads the catalog in dir, or the builtin catalog when dir is empty.
func Open(dir string, logger *log.Logger) (*Catalog, error) {
	if dir == "" {
		return Builtin(logger)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening catalog: %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), dir, logger)
}

// Builtin loads the catalog embedded in the binary.
func Builtin(logger *log.Logger) (*Catalog, error) {
	return Load(BuiltinFS(), BuiltinName, logger)
}

// BuiltinFS returns the embedded catalog rooted at its top directory.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(builtinFS, "data")
	if err != nil {
		// The embed directive guarantees data/ exists.
		panic(err)
	}
	return sub
}

// Load reads every catalog document from fsys into a fresh registry.
//
// Pack files are read in lexical order. A pack that fails to parse or
// validate is logged and skipped; a pack id registered twice is logged and
// the later file wins. A malformed dependency map is an error, since nothing
// could be resolved without it. Missing sections and dependency files are
// treated as empty.
func Load(fsys fs.FS, source string, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Catalog{
		Source:   source,
		Registry: registry.New(),
		Deps:     registry.DependencyMap{},
	}

	if err := c.loadPacks(fsys, logger); err != nil {
		return nil, err
	}
	if err := c.loadSections(fsys, logger); err != nil {
		return nil, err
	}
	if err := c.loadDependencies(fsys); err != nil {
		return nil, err
	}

	logger.Debug("catalog loaded", "source", source, "packs", c.Registry.Len(),
		"sections", len(c.Registry.Sections()), "components", len(c.Deps), "skipped", c.Skipped)
	return c, nil
}

func (c *Catalog) loadPacks(fsys fs.FS, logger *log.Logger) error {
	entries, err := fs.ReadDir(fsys, manifest.PacksDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", manifest.PacksDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !manifest.IsPackFile(entry.Name()) {
			continue
		}
		name := path.Join(manifest.PacksDir, entry.Name())

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}

		m, err := manifest.DecodePack(name, data)
		if err != nil {
			logger.Warn("skipping malformed pack", "file", name, "err", err)
			c.Skipped++
			continue
		}

		res, err := c.Registry.Register(toPack(m))
		if err != nil {
			logger.Warn("skipping invalid pack", "file", name, "err", err)
			c.Skipped++
			continue
		}
		if res == registry.Replaced {
			logger.Warn("duplicate pack id, later file wins", "pack", m.ID, "file", name)
		}
	}
	return nil
}

func (c *Catalog) loadSections(fsys fs.FS, logger *log.Logger) error {
	data, err := fs.ReadFile(fsys, manifest.SectionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", manifest.SectionsFile, err)
	}

	m, err := manifest.DecodeSections(manifest.SectionsFile, data)
	if err != nil {
		logger.Warn("skipping malformed sections file", "file", manifest.SectionsFile, "err", err)
		c.Skipped++
		return nil
	}

	for i, s := range m.Sections {
		if err := c.Registry.RegisterSection(toSection(s)); err != nil {
			logger.Warn("skipping invalid section", "index", i, "err", err)
			c.Skipped++
		}
	}
	return nil
}

func (c *Catalog) loadDependencies(fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, manifest.DependenciesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", manifest.DependenciesFile, err)
	}

	m, err := manifest.DecodeDependencies(manifest.DependenciesFile, data)
	if err != nil {
		return fmt.Errorf("loading dependency map: %w", err)
	}
	for key, d := range m.Components {
		c.Deps[key] = registry.DependencyEntry{
			Files:        d.Files,
			Dependencies: d.Dependencies,
			PackageDeps:  d.PackageDeps,
			PeerDeps:     d.PeerDeps,
			StyleFiles:   d.StyleFiles,
		}
	}
	return nil
}

func toPack(m *manifest.PackManifest) registry.ComponentPack {
	p := registry.ComponentPack{
		ID:             m.ID,
		Name:           m.Name,
		Title:          m.Title,
		Description:    m.Description,
		Category:       m.Category,
		Tags:           m.Tags,
		Dependencies:   m.Dependencies,
		Implemented:    m.Implemented,
		Featured:       m.Featured,
		Version:        m.Version,
		Author:         m.Author,
		License:        m.License,
		Repository:     m.Repository,
		Documentation:  m.Documentation,
		InstallCommand: m.InstallCommand,
		ImportExample:  m.ImportExample,
	}
	for _, v := range m.Variants {
		variant := registry.PackVariant{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Tags:        v.Tags,
			Featured:    v.Featured,
			CodeExample: v.CodeExample,
		}
		if v.Component != "" {
			variant.Component = v.Component
		}
		p.Variants = append(p.Variants, variant)
	}
	return p
}

func toSection(s manifest.SectionManifest) registry.Section {
	return registry.Section{
		Name:        s.Name,
		Path:        s.Path,
		Description: s.Description,
		Site:        s.Site,
		Tags:        s.Tags,
	}
}
