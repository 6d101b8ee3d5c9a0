//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // UIPACKS_HOME, holds config.yaml
	CatalogDir string // on-disk catalog
	SrcDir     string // component source tree
	OutDir     string // bundle output
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so config reads and writes are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		CatalogDir: t.TempDir(),
		SrcDir:     t.TempDir(),
		OutDir:     filepath.Join(t.TempDir(), "dist"),
	}

	t.Setenv("UIPACKS_HOME", env.HomeDir)
	t.Setenv("UIPACKS_CATALOG", "")
	return env
}

// setupCatalog writes a synthetic catalog with packs in every supported
// format, sections and a three-level dependency map.
func setupCatalog(t *testing.T, catalogDir string) {
	t.Helper()

	writeFile(t, filepath.Join(catalogDir, "packs", "hero-parallax.yaml"), `id: hero-parallax
name: HeroParallax
title: Hero Parallax
description: Scroll-driven parallax hero
category: heroes
implemented: true
featured: true
version: "1.0.0"
tags: [hero, parallax]
variants:
  - id: default
    title: Default
  - id: minimal
    title: Minimal
`)
	writeFile(t, filepath.Join(catalogDir, "packs", "glow-button.json"), `{
  "id": "glow-button",
  "name": "GlowButton",
  "title": "Glow Button",
  "category": "buttons",
  "tags": ["button", "glow"],
  "variants": [{"id": "default", "title": "Default"}]
}
`)
	writeFile(t, filepath.Join(catalogDir, "packs", "aurora.toml"), `id = "aurora-background"
name = "AuroraBackground"
title = "Aurora Background"
category = "backgrounds"
tags = ["background", "gradient"]
`)
	writeFile(t, filepath.Join(catalogDir, "sections.yaml"), `sections:
  - name: hero
    path: sites/demo/sections/hero
    description: Landing hero
    tags: [hero]
  - name: footer
`)
	writeFile(t, filepath.Join(catalogDir, "dependencies.yaml"), `components:
  lib/utils:
    files: [lib/utils.ts]
    package_deps: [clsx@^2.1.0, tailwind-merge]
    peer_deps: [react@>=18]
  glow-button:
    files: [components/ui/glow-button.tsx]
    dependencies: [lib/utils]
    style_files: [styles/glow.css]
  hero-parallax:
    files: [components/ui/hero-parallax.tsx, components/ui/product-card.tsx]
    dependencies: [lib/utils, glow-button]
    package_deps: [motion@^11.0.0]
  section/hero:
    files: [sites/demo/sections/hero/index.tsx]
    dependencies: [hero-parallax]
`)
}

// setupSources writes every file named in the synthetic dependency map.
func setupSources(t *testing.T, srcDir string) {
	t.Helper()
	for _, f := range []string{
		"lib/utils.ts",
		"components/ui/glow-button.tsx",
		"components/ui/hero-parallax.tsx",
		"components/ui/product-card.tsx",
		"styles/glow.css",
		"sites/demo/sections/hero/index.tsx",
	} {
		writeFile(t, filepath.Join(srcDir, filepath.FromSlash(f)), "// "+f+"\n")
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
