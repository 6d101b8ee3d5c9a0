package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/catalog"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog",
	Long: `Validate every catalog file against its schema, check for duplicate pack and
variant ids, and check the dependency map for unknown components and cycles.
Exits non-zero if any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fsys, name, err := catalogFS()
	if err != nil {
		return err
	}

	problems, err := catalog.Check(fsys)
	if err != nil {
		return fmt.Errorf("checking catalog %s: %w", name, err)
	}

	out := cmd.OutOrStdout()
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(out, "  ✗ %s\n", p)
		}
		return fmt.Errorf("catalog %s has %d problem(s)", name, len(problems))
	}

	cat, err := catalog.Load(fsys, name, logger)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	fmt.Fprintf(out, "✓ Catalog %s is valid: %d packs, %d sections, %d components\n",
		name, cat.Registry.Len(), len(cat.Registry.Sections()), len(cat.Deps))
	return nil
}
