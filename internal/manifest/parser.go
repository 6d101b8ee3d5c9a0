package manifest

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// IsPackFile reports whether name has a recognized pack manifest extension.
func IsPackFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range packExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// KindOf returns the document kind for a catalog-relative, slash-separated
// path, or "" if the path is not a catalog document.
func KindOf(rel string) Kind {
	switch {
	case rel == SectionsFile:
		return KindSections
	case rel == DependenciesFile:
		return KindDependencies
	case path.Dir(rel) == PacksDir && IsPackFile(rel):
		return KindPack
	default:
		return ""
	}
}

// ParsePack reads a pack manifest file. The format is chosen by extension.
func ParsePack(file string) (*PackManifest, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}
	return DecodePack(file, data)
}

// DecodePack decodes pack manifest data. name is used for format detection
// and error messages. TOML is decoded with go-toml; YAML and JSON with yaml.v3.
func DecodePack(name string, data []byte) (*PackManifest, error) {
	if strings.EqualFold(path.Ext(name), ".toml") {
		var m PackManifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
		}
		return &m, nil
	}
	return parseTyped[PackManifest](data, name)
}

// ParseSections reads a sections file.
func ParseSections(file string) (*SectionsManifest, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}
	return DecodeSections(file, data)
}

// DecodeSections decodes sections file data.
func DecodeSections(name string, data []byte) (*SectionsManifest, error) {
	return parseTyped[SectionsManifest](data, name)
}

// ParseDependencies reads a dependency map file.
func ParseDependencies(file string) (*DependenciesManifest, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}
	return DecodeDependencies(file, data)
}

// DecodeDependencies decodes dependency map data.
func DecodeDependencies(name string, data []byte) (*DependenciesManifest, error) {
	m, err := parseTyped[DependenciesManifest](data, name)
	if err != nil {
		return nil, err
	}
	if m.Components == nil {
		m.Components = make(map[string]ComponentDeps)
	}
	return m, nil
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, name string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(file string) ([]byte, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", file, err)
	}
	return data, nil
}
