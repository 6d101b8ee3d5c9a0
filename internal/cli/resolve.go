package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/registry"
)

var (
	resolveShallow bool
	resolveTree    bool
	resolveJSON    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <component>...",
	Short: "Resolve the files and packages components need",
	Long: `Resolve the complete, deduplicated set of files and external packages needed
to include the given components. Dependencies are followed transitively unless
--shallow is set (or the "shallow" config key is true).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveShallow, "shallow", false, "Expand direct dependencies only")
	resolveCmd.Flags().BoolVar(&resolveTree, "tree", false, "Print the dependency tree")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

type resolveReport struct {
	Components []string            `json:"components"`
	Order      []string            `json:"order"`
	Files      []string            `json:"files"`
	Packages   registry.PackageSet `json:"packages"`
	Unknown    []string            `json:"unknown,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	r := cat.Resolver(registry.ResolveOptions{Shallow: shallowMode(cmd, resolveShallow)})

	report := resolveReport{
		Components: args,
		Order:      r.Order(args),
		Files:      r.FilesFor(args),
		Packages:   r.PackagesFor(args),
	}
	if report.Order == nil {
		report.Order = []string{}
	}
	for _, key := range args {
		if !r.Has(key) {
			logger.Warn("unknown component", "key", key)
			report.Unknown = append(report.Unknown, key)
		}
	}

	out := cmd.OutOrStdout()
	if resolveJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if resolveTree {
		for _, key := range args {
			registry.PrintTree(out, r.Tree(key))
		}
		fmt.Fprintln(out)
	}

	printList(out, "Files", report.Files)
	printList(out, "Dependencies", report.Packages.Dependencies)
	printList(out, "Peer dependencies", report.Packages.PeerDependencies)
	return nil
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(w, "  %s\n", it)
	}
}
