package manifest

// PackManifest is the on-disk form of a component pack, one per file under packs/.
type PackManifest struct {
	ID             string            `yaml:"id" json:"id" toml:"id"`
	Name           string            `yaml:"name" json:"name" toml:"name"`
	Title          string            `yaml:"title" json:"title" toml:"title"`
	Description    string            `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Category       string            `yaml:"category,omitempty" json:"category,omitempty" toml:"category,omitempty"`
	Variants       []VariantManifest `yaml:"variants,omitempty" json:"variants,omitempty" toml:"variants,omitempty"`
	Tags           []string          `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags,omitempty"`
	Dependencies   []string          `yaml:"dependencies,omitempty" json:"dependencies,omitempty" toml:"dependencies,omitempty"`
	Implemented    bool              `yaml:"implemented,omitempty" json:"implemented,omitempty" toml:"implemented,omitempty"`
	Featured       bool              `yaml:"featured,omitempty" json:"featured,omitempty" toml:"featured,omitempty"`
	Version        string            `yaml:"version,omitempty" json:"version,omitempty" toml:"version,omitempty"`
	Author         string            `yaml:"author,omitempty" json:"author,omitempty" toml:"author,omitempty"`
	License        string            `yaml:"license,omitempty" json:"license,omitempty" toml:"license,omitempty"`
	Repository     string            `yaml:"repository,omitempty" json:"repository,omitempty" toml:"repository,omitempty"`
	Documentation  string            `yaml:"documentation,omitempty" json:"documentation,omitempty" toml:"documentation,omitempty"`
	InstallCommand string            `yaml:"install_command,omitempty" json:"install_command,omitempty" toml:"install_command,omitempty"`
	ImportExample  string            `yaml:"import_example,omitempty" json:"import_example,omitempty" toml:"import_example,omitempty"`
}

// VariantManifest is one variant entry inside a pack manifest.
type VariantManifest struct {
	ID          string   `yaml:"id" json:"id" toml:"id"`
	Title       string   `yaml:"title" json:"title" toml:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Component   string   `yaml:"component,omitempty" json:"component,omitempty" toml:"component,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags,omitempty"`
	Featured    bool     `yaml:"featured,omitempty" json:"featured,omitempty" toml:"featured,omitempty"`
	CodeExample string   `yaml:"code_example,omitempty" json:"code_example,omitempty" toml:"code_example,omitempty"`
}

// SectionsManifest lists the page sections of the generated sites.
type SectionsManifest struct {
	Sections []SectionManifest `yaml:"sections" json:"sections"`
}

// SectionManifest is a single section entry.
type SectionManifest struct {
	Name        string   `yaml:"name" json:"name"`
	Path        string   `yaml:"path,omitempty" json:"path,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Site        string   `yaml:"site,omitempty" json:"site,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// DependenciesManifest is the dependency map file.
type DependenciesManifest struct {
	Components map[string]ComponentDeps `yaml:"components" json:"components"`
}

// ComponentDeps is the dependency record of one component key.
type ComponentDeps struct {
	Files        []string `yaml:"files" json:"files"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	PackageDeps  []string `yaml:"package_deps,omitempty" json:"package_deps,omitempty"`
	PeerDeps     []string `yaml:"peer_deps,omitempty" json:"peer_deps,omitempty"`
	StyleFiles   []string `yaml:"style_files,omitempty" json:"style_files,omitempty"`
}

// Kind identifies which catalog document a file holds.
type Kind string

const (
	KindPack         Kind = "pack"
	KindSections     Kind = "sections"
	KindDependencies Kind = "dependencies"
)

// Catalog file and directory names.
const (
	PacksDir         = "packs"
	SectionsFile     = "sections.yaml"
	DependenciesFile = "dependencies.yaml"
)

// packExtensions are the recognized pack manifest extensions, in priority order.
var packExtensions = []string{".yaml", ".yml", ".json", ".toml"}
