package registry

// PackVariant is one presentational preset of a pack's underlying component.
type PackVariant struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Component   any      `json:"component,omitempty"` // opaque handle, never inspected
	Tags        []string `json:"tags,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	CodeExample string   `json:"codeExample,omitempty"`
}

// ComponentPack is a named collection of related variants plus shared metadata.
type ComponentPack struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Category     string        `json:"category,omitempty"`
	Variants     []PackVariant `json:"variants"`
	Tags         []string      `json:"tags,omitempty"`
	Dependencies []string      `json:"dependencies,omitempty"`
	Implemented  bool          `json:"implemented"`
	Featured     bool          `json:"featured,omitempty"`

	// Descriptive only.
	Version        string `json:"version,omitempty"`
	Author         string `json:"author,omitempty"`
	License        string `json:"license,omitempty"`
	Repository     string `json:"repository,omitempty"`
	Documentation  string `json:"documentation,omitempty"`
	InstallCommand string `json:"installCommand,omitempty"`
	ImportExample  string `json:"importExample,omitempty"`
}

// Section is a page-level building block of a generated site.
type Section struct {
	Name        string   `json:"name"`
	Path        string   `json:"path,omitempty"`
	Description string   `json:"description,omitempty"`
	Site        string   `json:"site,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// RegisterResult reports whether Register added a new pack or replaced one.
type RegisterResult int

const (
	Inserted RegisterResult = iota
	Replaced
)

func (r RegisterResult) String() string {
	if r == Replaced {
		return "replaced"
	}
	return "inserted"
}

// DependencyEntry describes what a single component needs to be bundled standalone.
type DependencyEntry struct {
	Files        []string `json:"files"`
	Dependencies []string `json:"dependencies,omitempty"` // keys into the same map
	PackageDeps  []string `json:"packageDeps,omitempty"`  // "name" or "name@range"
	PeerDeps     []string `json:"peerDeps,omitempty"`
	StyleFiles   []string `json:"styleFiles,omitempty"`
}

// DependencyMap maps a component key to its dependency entry.
type DependencyMap map[string]DependencyEntry

// PackageSet is the resolved external package contract of a component set.
type PackageSet struct {
	Dependencies     []string `json:"dependencies"`
	PeerDependencies []string `json:"peerDependencies"`
}

// DependencyNode represents a node in the dependency tree.
type DependencyNode struct {
	Key      string
	Entry    *DependencyEntry
	Children []*DependencyNode
	Deduped  bool // true if this key was already seen earlier in the tree
	Missing  bool // true if the key is not in the dependency map
}
