package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/uipacks/uipacks/internal/registry"
)

func TestBuiltin(t *testing.T) {
	c, err := Builtin(nil)
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	if c.Source != BuiltinName {
		t.Errorf("Source = %q, want %q", c.Source, BuiltinName)
	}
	if c.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", c.Skipped)
	}
	if c.Registry.Len() != 11 {
		t.Errorf("Registry.Len() = %d, want 11", c.Registry.Len())
	}
	if n := len(c.Registry.Sections()); n != 6 {
		t.Errorf("Sections len = %d, want 6", n)
	}

	// Lexical file order: 3d-card.yaml sorts first.
	if first := c.Registry.All()[0].ID; first != "3d-card" {
		t.Errorf("first pack = %q, want 3d-card", first)
	}

	aurora, ok := c.Registry.ByID("aurora-background")
	if !ok {
		t.Fatal("aurora-background (TOML) not loaded")
	}
	if len(aurora.Variants) != 2 || !aurora.Variants[1].Featured {
		t.Errorf("aurora-background variants = %+v", aurora.Variants)
	}
	if aurora.Variants[0].Component != "components/ui/aurora-background" {
		t.Errorf("Component = %v", aurora.Variants[0].Component)
	}
	if aurora.Variants[1].Component != nil {
		t.Errorf("variant without component has Component = %v, want nil", aurora.Variants[1].Component)
	}

	files := c.Resolver(registry.ResolveOptions{}).Files("hero-parallax")
	want := []string{"components/ui/hero-parallax.tsx", "lib/utils.ts"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("Files(hero-parallax) = %v, want %v", files, want)
	}
}

func TestBuiltin_PassesCheck(t *testing.T) {
	problems, err := Check(BuiltinFS())
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	for _, p := range problems {
		t.Errorf("builtin catalog problem: %s", p)
	}
}

func TestLoad_SkipsMalformedAndInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/a-good.yaml":   {Data: []byte("id: good\nname: Good\ntitle: Good\n")},
		"packs/b-broken.yaml": {Data: []byte("id: [unterminated\n")},
		"packs/c-noname.yaml": {Data: []byte("id: noname\ntitle: No Name\n")},
		"packs/d-dupvar.yaml": {Data: []byte("id: dup\nname: Dup\ntitle: Dup\nvariants:\n  - {id: x, title: X}\n  - {id: x, title: Y}\n")},
		"packs/README.md":     {Data: []byte("# not a pack\n")},
		"packs/nested/e.yaml": {Data: []byte("id: nested\nname: Nested\ntitle: Nested\n")},
		"sections.yaml":       {Data: []byte("sections:\n  - name: hero\n  - description: nameless\n")},
		"dependencies.yaml":   {Data: []byte("components:\n  good:\n    files: [good.tsx]\n")},
	}

	var buf bytes.Buffer
	c, err := Load(fsys, "test", log.New(&buf))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.Registry.Len() != 1 {
		t.Fatalf("Registry.Len() = %d, want 1: %+v", c.Registry.Len(), c.Registry.All())
	}
	if _, ok := c.Registry.ByID("good"); !ok {
		t.Error("good pack not registered")
	}
	if n := len(c.Registry.Sections()); n != 1 {
		t.Errorf("Sections len = %d, want 1", n)
	}
	if c.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", c.Skipped)
	}

	logged := buf.String()
	for _, want := range []string{"skipping malformed pack", "skipping invalid pack", "skipping invalid section", "b-broken.yaml"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output missing %q:\n%s", want, logged)
		}
	}
}

func TestLoad_DuplicateIDLaterWins(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/a.yaml": {Data: []byte("id: glow\nname: GlowA\ntitle: A\n")},
		"packs/b.json": {Data: []byte(`{"id": "glow", "name": "GlowB", "title": "B"}`)},
		"packs/c.yaml": {Data: []byte("id: other\nname: Other\ntitle: Other\n")},
	}

	var buf bytes.Buffer
	c, err := Load(fsys, "test", log.New(&buf))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	all := c.Registry.All()
	if len(all) != 2 {
		t.Fatalf("len(All) = %d, want 2", len(all))
	}
	if all[0].ID != "glow" || all[0].Name != "GlowB" {
		t.Errorf("All[0] = %s/%s, want glow/GlowB in first position", all[0].ID, all[0].Name)
	}
	if !strings.Contains(buf.String(), "duplicate pack id") {
		t.Errorf("duplicate not logged:\n%s", buf.String())
	}
}

func TestLoad_EmptyCatalog(t *testing.T) {
	c, err := Load(fstest.MapFS{}, "empty", nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Registry.Len() != 0 || len(c.Registry.Sections()) != 0 || len(c.Deps) != 0 {
		t.Errorf("expected empty catalog, got %d packs, %d sections, %d deps",
			c.Registry.Len(), len(c.Registry.Sections()), len(c.Deps))
	}
	if c.Deps == nil {
		t.Error("Deps is nil, want empty map")
	}
}

func TestLoad_MalformedDependencies(t *testing.T) {
	fsys := fstest.MapFS{
		"dependencies.yaml": {Data: []byte("components: [not, a, map]\n")},
	}
	if _, err := Load(fsys, "test", nil); err == nil {
		t.Fatal("expected error for malformed dependency map")
	}
}

func TestLoad_MalformedSectionsIsSkipped(t *testing.T) {
	fsys := fstest.MapFS{
		"sections.yaml": {Data: []byte("sections: {{\n")},
	}
	c, err := Load(fsys, "test", nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", c.Skipped)
	}
}

func TestOpen(t *testing.T) {
	c, err := Open("", nil)
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if c.Source != BuiltinName {
		t.Errorf("Open(\"\").Source = %q", c.Source)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "packs"), 0755); err != nil {
		t.Fatal(err)
	}
	pack := []byte("id: local\nname: Local\ntitle: Local\n")
	if err := os.WriteFile(filepath.Join(dir, "packs", "local.yaml"), pack, 0644); err != nil {
		t.Fatal(err)
	}

	c, err = Open(dir, nil)
	if err != nil {
		t.Fatalf("Open(dir) error: %v", err)
	}
	if c.Source != dir || c.Registry.Len() != 1 {
		t.Errorf("Open(dir) = source %q, %d packs", c.Source, c.Registry.Len())
	}

	if _, err := Open(filepath.Join(dir, "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want ErrNotExist", err)
	}
	if _, err := Open(filepath.Join(dir, "packs", "local.yaml"), nil); err == nil {
		t.Error("Open(file) expected error, got nil")
	}
}

func TestLocation_EnvVar(t *testing.T) {
	t.Setenv("UIPACKS_CATALOG", "/opt/catalog")
	if got := Location(); got != "/opt/catalog" {
		t.Errorf("Location() = %q, want /opt/catalog", got)
	}
}

func TestCheck_FindsProblems(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/a.yaml":      {Data: []byte("id: glow\nname: Glow\ntitle: Glow\n")},
		"packs/b.yaml":      {Data: []byte("id: glow\nname: Glow2\ntitle: Glow2\n")},
		"packs/c.yaml":      {Data: []byte("id: Bad_ID\nname: Bad\ntitle: Bad\n")},
		"packs/d.yaml":      {Data: []byte("id: vars\nname: V\ntitle: V\nvariants:\n  - {id: x, title: X}\n  - {id: x, title: Y}\n")},
		"packs/e.yaml":      {Data: []byte("id: [broken\n")},
		"sections.yaml":     {Data: []byte("sections:\n  - name: hero\n")},
		"dependencies.yaml": {Data: []byte("components:\n  a:\n    files: [a.tsx]\n    dependencies: [b, ghost]\n  b:\n    files: [b.tsx]\n    dependencies: [a]\n")},
	}

	problems, err := Check(fsys)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}

	wants := []struct {
		file    string
		message string
	}{
		{"packs/b.yaml", "already defined in packs/a.yaml"},
		{"packs/c.yaml", "/id"},
		{"packs/d.yaml", "duplicate variant id"},
		{"packs/e.yaml", "parsing YAML"},
		{"dependencies.yaml", `unknown component "ghost"`},
		{"dependencies.yaml", "dependency cycle detected"},
	}
	for _, want := range wants {
		found := false
		for _, p := range problems {
			if p.File == want.file && strings.Contains(p.Message, want.message) {
				found = true
			}
		}
		if !found {
			t.Errorf("no problem for %s containing %q in %v", want.file, want.message, problems)
		}
	}
	for _, p := range problems {
		if p.File == "sections.yaml" || p.File == "packs/a.yaml" {
			t.Errorf("unexpected problem: %s", p)
		}
	}
}

func TestProblemString(t *testing.T) {
	if got := (Problem{File: "packs/a.yaml", Message: "bad"}).String(); got != "packs/a.yaml: bad" {
		t.Errorf("String() = %q", got)
	}
	if got := (Problem{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q", got)
	}
}
