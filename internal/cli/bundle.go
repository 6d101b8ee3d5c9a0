package cli

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/bundle"
	"github.com/uipacks/uipacks/internal/config"
	"github.com/uipacks/uipacks/internal/registry"
)

var (
	bundleOut         string
	bundleSrc         string
	bundleName        string
	bundleVersion     string
	bundleClean       bool
	bundleShallow     bool
	bundleInteractive bool
)

var bundleCmd = &cobra.Command{
	Use:   "bundle [component...]",
	Short: "Bundle components into a standalone package",
	Long: `Copy the files of the given components and all of their dependencies from the
source tree into an output directory, then write a package.json listing the
external packages they need and a README.md describing the bundle.

Use -i to pick components interactively.`,
	RunE: runBundle,
}

func init() {
	bundleCmd.Flags().StringVarP(&bundleOut, "out", "o", "", "Output directory (default: config bundle_out)")
	bundleCmd.Flags().StringVar(&bundleSrc, "src", "", "Source root for component files (default: config src)")
	bundleCmd.Flags().StringVar(&bundleName, "name", bundle.DefaultName, "Package name")
	bundleCmd.Flags().StringVar(&bundleVersion, "version", bundle.DefaultVersion, "Package version (semver)")
	bundleCmd.Flags().BoolVar(&bundleClean, "clean", false, "Remove the output directory first")
	bundleCmd.Flags().BoolVar(&bundleShallow, "shallow", false, "Expand direct dependencies only")
	bundleCmd.Flags().BoolVarP(&bundleInteractive, "interactive", "i", false, "Pick components interactively")
	rootCmd.AddCommand(bundleCmd)
}

func runBundle(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	components := args
	if bundleInteractive {
		components, err = promptComponents(cat.Deps.Keys(), args)
		if err != nil {
			return err
		}
	}
	if len(components) == 0 {
		return fmt.Errorf("no components given (pass component keys or use -i)")
	}

	out := bundleOut
	if out == "" {
		out = config.Get(config.KeyBundleOut)
	}
	src := bundleSrc
	if src == "" {
		src = config.Get(config.KeySrc)
	}
	shallow := shallowMode(cmd, bundleShallow)

	logger.Debug("bundling", "components", components, "src", src, "out", out, "shallow", shallow)

	res, err := bundle.Build(cat.Resolver(registry.ResolveOptions{Shallow: shallow}), bundle.Options{
		Components: components,
		SrcDir:     src,
		OutDir:     out,
		Name:       bundleName,
		Version:    bundleVersion,
		Clean:      bundleClean,
	})
	if err != nil {
		return fmt.Errorf("building bundle: %w", err)
	}

	for _, f := range res.Missing {
		logger.Warn("file not found in source tree", "file", f, "src", src)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Bundled %d component(s) into %s\n", len(res.Components), out)
	fmt.Fprintf(w, "  files:             %d copied, %d missing\n", len(res.Files), len(res.Missing))
	fmt.Fprintf(w, "  dependencies:      %d\n", len(res.Dependencies))
	fmt.Fprintf(w, "  peerDependencies:  %d\n", len(res.PeerDependencies))
	return nil
}

// promptComponents uses huh to present a multi-select of component keys,
// with preselected keys checked.
func promptComponents(keys, preselected []string) ([]string, error) {
	options := make([]huh.Option[string], len(keys))
	for i, key := range keys {
		options[i] = huh.NewOption(key, key).Selected(slices.Contains(preselected, key))
	}

	var selected []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Components to bundle").
				Options(options...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}

	return selected, nil
}
