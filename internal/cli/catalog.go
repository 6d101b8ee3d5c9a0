package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/branding"
	"github.com/uipacks/uipacks/internal/catalog"
	"github.com/uipacks/uipacks/internal/config"
)

var exportForce bool

func init() {
	catalogExportCmd.Flags().BoolVar(&exportForce, "force", false, "Write into a non-empty directory, overwriting catalog files")
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or export the component catalog",
	Long: `Inspect or export the component catalog.

The catalog is read from the first of:
  --catalog flag, $` + branding.EnvVar("CATALOG") + `, the "catalog" config key.
When none is set the catalog built into the binary is used.`,
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which catalog is in use and what it contains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Catalog:      %s\n", cat.Source)
		fmt.Fprintf(out, "Config file:  %s\n", config.FilePath())
		fmt.Fprintf(out, "Packs:        %d\n", cat.Registry.Len())
		fmt.Fprintf(out, "Sections:     %d\n", len(cat.Registry.Sections()))
		fmt.Fprintf(out, "Components:   %d\n", len(cat.Deps))
		if cat.Skipped > 0 {
			fmt.Fprintf(out, "Skipped:      %d (run '%s check' for details)\n", cat.Skipped, branding.CLIName())
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the builtin catalog to a directory",
	Long: `Write the builtin catalog to a directory so it can be edited.

Point the CLI at the copy with --catalog <dir> or
'` + branding.CLIName() + ` config set catalog <dir>'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := catalog.Export(args[0], exportForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(written), args[0])
		return nil
	},
}
