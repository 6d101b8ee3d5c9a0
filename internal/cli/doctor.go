package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/catalog"
	"github.com/uipacks/uipacks/internal/config"
	"github.com/uipacks/uipacks/internal/registry"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration, catalog and source tree",
	Long: `Run diagnostic checks on the local setup: the config file parses, the
catalog loads without problems, and every file named in the dependency map
exists under the source directory used by bundle.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	fmt.Fprintln(out, "Config check:")
	if !checkConfig(out) {
		failed++
	}

	fmt.Fprintln(out, "Catalog check:")
	cat, ok := checkCatalog(out)
	if !ok {
		failed++
	}

	fmt.Fprintln(out, "Source check:")
	if cat != nil && !checkSources(out, cat.Deps, config.Get(config.KeySrc)) {
		failed++
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func checkConfig(w io.Writer) bool {
	file := config.FilePath()
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", file)
		return true
	}
	if err := config.Load(); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", file)
	return true
}

func checkCatalog(w io.Writer) (*catalog.Catalog, bool) {
	fsys, name, err := catalogFS()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil, false
	}

	problems, err := catalog.Check(fsys)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil, false
	}
	for _, p := range problems {
		fmt.Fprintf(w, "  [FAIL] %s\n", p)
	}

	cat, err := catalog.Load(fsys, name, logger)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return nil, false
	}
	if len(problems) == 0 {
		fmt.Fprintf(w, "  [ OK ] %s: %d packs, %d components\n", name, cat.Registry.Len(), len(cat.Deps))
	}
	return cat, len(problems) == 0
}

// checkSources reports dependency-map files that are missing under src.
func checkSources(w io.Writer, deps registry.DependencyMap, src string) bool {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(w, "  [MISS] source directory %s not found (set it with 'config set src <dir>')\n", src)
		return false
	}

	missing := 0
	for _, key := range deps.Keys() {
		entry := deps[key]
		files := append(append([]string(nil), entry.Files...), entry.StyleFiles...)
		for _, f := range files {
			if _, err := os.Stat(filepath.Join(src, filepath.FromSlash(f))); err != nil {
				fmt.Fprintf(w, "  [MISS] %s: %s\n", key, f)
				missing++
			}
		}
	}
	if missing > 0 {
		return false
	}
	fmt.Fprintf(w, "  [ OK ] all %d components present in %s\n", len(deps), src)
	return true
}
