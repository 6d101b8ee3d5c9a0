package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/registry"
)

var (
	listCategory string
	listFeatured bool
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List component packs",
	Long:  `List the component packs in the catalog, in catalog order.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (e.g., buttons, backgrounds)")
	listCmd.Flags().BoolVar(&listFeatured, "featured", false, "Only packs that are featured or have a featured variant")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	packs := cat.Registry.All()
	if listCategory != "" {
		packs = cat.Registry.ByCategory(listCategory)
	}
	if listFeatured {
		packs = featuredPacks(packs)
	}

	if listJSON {
		if packs == nil {
			packs = []registry.ComponentPack{}
		}
		data, err := json.MarshalIndent(packs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if len(packs) == 0 {
		msg := "No packs found"
		if listCategory != "" {
			msg += fmt.Sprintf(" with --category=%s", listCategory)
		}
		if listFeatured {
			msg += " with --featured"
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tVARIANTS\tVERSION\tSTATUS")
	for _, p := range packs {
		category := p.Category
		if category == "" {
			category = "-"
		}
		version := p.Version
		if version == "" {
			version = "-"
		}
		status := "planned"
		if p.Implemented {
			status = "ready"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", p.ID, p.Title, category, len(p.Variants), version, status)
	}
	return w.Flush()
}

// featuredPacks keeps packs that are featured themselves or through a variant.
func featuredPacks(packs []registry.ComponentPack) []registry.ComponentPack {
	var out []registry.ComponentPack
	for _, p := range packs {
		if p.Featured {
			out = append(out, p)
			continue
		}
		for _, v := range p.Variants {
			if v.Featured {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
