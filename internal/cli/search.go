package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/branding"
	"github.com/uipacks/uipacks/internal/mapper"
	"github.com/uipacks/uipacks/internal/output"
)

var (
	searchTypeFilter string
	searchTagFilter  string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search components and sections",
	Long: `Search the catalog for components and sections.

The query matches against item names, descriptions and tags (case-insensitive
substring). Use --type to restrict to components or sections and --tag to
require one of the given tags.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTypeFilter, "type", "", "Filter by item type (component, section)")
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s search <query>\n", branding.CLIName())
		return errUsage
	}
	query := strings.Join(args, " ")

	switch searchTypeFilter {
	case "", mapper.TypeComponent, mapper.TypeSection:
	default:
		return fmt.Errorf("invalid --type %q: want %s or %s", searchTypeFilter, mapper.TypeComponent, mapper.TypeSection)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	filter := mapper.Filter{Type: searchTypeFilter, Tags: splitList(searchTagFilter)}
	items := mapper.New(cat.Registry, logger).SearchFiltered(query, filter)

	if searchJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if len(items) == 0 {
		msg := fmt.Sprintf("No items found matching %q", query)
		if searchTypeFilter != "" {
			msg += fmt.Sprintf(" with --type=%s", searchTypeFilter)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tPATH\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Type, it.Name, it.Path, output.Truncate(it.Description, 60))
	}
	return w.Flush()
}

// splitList splits a comma-separated flag value, dropping empty elements.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
