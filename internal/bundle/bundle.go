package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/uipacks/uipacks/internal/registry"
)

var (
	// ErrUnknownComponent is returned when a requested key is not in the dependency map.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrNoComponents is returned when Build is called without component keys.
	ErrNoComponents = errors.New("no components requested")
)

// Defaults applied when Options leaves a field empty.
const (
	DefaultName    = "ui-bundle"
	DefaultVersion = "0.1.0"
)

// Output file names written at the root of the bundle.
const (
	PackageFile = "package.json"
	ReadmeFile  = "README.md"
)

// Options configures a bundle build.
type Options struct {
	Components []string // component keys to include
	SrcDir     string   // root the component file paths are relative to
	OutDir     string   // destination directory
	Name       string   // package name
	Version    string   // package version, must be valid semver
	Clean      bool     // remove OutDir before writing
}

// Result describes a completed build.
type Result struct {
	Components       []string          // every included key, dependencies first
	Files            []string          // files copied, relative to OutDir
	Missing          []string          // resolved files absent from SrcDir
	Dependencies     map[string]string // package name -> version range
	PeerDependencies map[string]string
}

// packageManifest is the generated package.json.
type packageManifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description,omitempty"`
	Dependencies     map[string]string `json:"dependencies"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// Build resolves opts.Components through r and writes the bundle to opts.OutDir.
// Missing source files are reported in the result rather than failing the build.
func Build(r *registry.Resolver, opts Options) (*Result, error) {
	if len(opts.Components) == 0 {
		return nil, ErrNoComponents
	}
	if opts.OutDir == "" {
		return nil, errors.New("no output directory")
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if _, err := semver.StrictNewVersion(opts.Version); err != nil {
		return nil, fmt.Errorf("invalid bundle version %q: %w", opts.Version, err)
	}
	for _, key := range opts.Components {
		if !r.Has(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, key)
		}
	}

	pkgs := r.PackagesFor(opts.Components)
	deps, err := packageRanges(pkgs.Dependencies)
	if err != nil {
		return nil, err
	}
	peers, err := packageRanges(pkgs.PeerDependencies)
	if err != nil {
		return nil, err
	}

	files := r.FilesFor(opts.Components)
	for _, f := range files {
		if !filepath.IsLocal(filepath.FromSlash(f)) {
			return nil, fmt.Errorf("component file %q escapes the source directory", f)
		}
	}

	if opts.Clean {
		if err := os.RemoveAll(opts.OutDir); err != nil {
			return nil, fmt.Errorf("cleaning %s: %w", opts.OutDir, err)
		}
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", opts.OutDir, err)
	}

	res := &Result{
		Components:       r.Order(opts.Components),
		Files:            []string{},
		Missing:          []string{},
		Dependencies:     deps,
		PeerDependencies: peers,
	}

	for _, f := range files {
		src := filepath.Join(opts.SrcDir, filepath.FromSlash(f))
		dst := filepath.Join(opts.OutDir, filepath.FromSlash(f))

		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			res.Missing = append(res.Missing, f)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", f, err)
		}
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("copying %s: %w", f, err)
		}
		res.Files = append(res.Files, f)
	}

	if err := writePackageJSON(opts, res); err != nil {
		return nil, err
	}
	if err := writeReadme(opts, res); err != nil {
		return nil, err
	}
	return res, nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}

// packageRanges turns "name" and "name@range" specs into a name -> range
// map. Bare names get "*". When a package appears more than once, an
// explicit range replaces "*" and otherwise the first range is kept.
func packageRanges(specs []string) (map[string]string, error) {
	out := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, rng, err := ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		if prev, ok := out[name]; ok && prev != "*" {
			continue
		}
		out[name] = rng
	}
	return out, nil
}

// ParseSpec splits a package spec such as "motion@^11.0.0" or
// "@tabler/icons-react@^3" into name and version range. A spec without a
// range yields "*". Ranges must parse as semver constraints.
func ParseSpec(spec string) (name, rng string, err error) {
	spec = strings.TrimSpace(spec)
	at := strings.LastIndex(spec, "@")
	if at <= 0 {
		name, rng = spec, "*"
	} else {
		name, rng = spec[:at], spec[at+1:]
	}

	if name == "" || strings.HasSuffix(name, "/") {
		return "", "", fmt.Errorf("invalid package spec %q", spec)
	}
	if rng == "" {
		return "", "", fmt.Errorf("invalid package spec %q: empty version range", spec)
	}
	if rng != "*" {
		if _, err := semver.NewConstraint(rng); err != nil {
			return "", "", fmt.Errorf("invalid version range in %q: %w", spec, err)
		}
	}
	return name, rng, nil
}

func writePackageJSON(opts Options, res *Result) error {
	m := packageManifest{
		Name:             opts.Name,
		Version:          opts.Version,
		Description:      "Components: " + strings.Join(opts.Components, ", "),
		Dependencies:     res.Dependencies,
		PeerDependencies: res.PeerDependencies,
	}
	// Ranges such as ">=18" must stay readable, so HTML escaping is off.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding %s: %w", PackageFile, err)
	}

	file := filepath.Join(opts.OutDir, PackageFile)
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}

func writeReadme(opts Options, res *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", opts.Name)
	fmt.Fprintf(&b, "Version %s. Generated bundle of UI components.\n\n", opts.Version)

	b.WriteString("## Components\n\n")
	for _, c := range res.Components {
		fmt.Fprintf(&b, "- %s\n", c)
	}

	b.WriteString("\n## Files\n\n")
	for _, f := range res.Files {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	if len(res.Missing) > 0 {
		b.WriteString("\nNot found in the source tree:\n\n")
		for _, f := range res.Missing {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
	}

	writeRanges(&b, "Dependencies", res.Dependencies)
	writeRanges(&b, "Peer dependencies", res.PeerDependencies)

	b.WriteString("\n## Install\n\n```sh\nnpm install\n```\n")

	file := filepath.Join(opts.OutDir, ReadmeFile)
	if err := os.WriteFile(file, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}

func writeRanges(b *strings.Builder, title string, ranges map[string]string) {
	if len(ranges) == 0 {
		return
	}
	names := make([]string, 0, len(ranges))
	for name := range ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(b, "\n## %s\n\n", title)
	for _, name := range names {
		fmt.Fprintf(b, "- %s `%s`\n", name, ranges[name])
	}
}
