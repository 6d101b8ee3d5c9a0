package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotEmpty is returned by Export when the destination already has files
// and overwriting was not requested.
var ErrNotEmpty = errors.New("destination is not empty")

// Export writes the builtin catalog to dir so it can be edited and loaded
// with --catalog. It returns the catalog-relative paths written, in walk
// order. An existing non-empty dir is refused unless force is set.
func Export(dir string, force bool) ([]string, error) {
	if !force {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		if len(entries) > 0 {
			return nil, fmt.Errorf("exporting to %s: %w", dir, ErrNotEmpty)
		}
	}

	src := BuiltinFS()
	var written []string
	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		written = append(written, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("exporting catalog: %w", err)
	}
	return written, nil
}
