package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/mapper"
	"github.com/uipacks/uipacks/internal/output"
)

var mapJSON bool

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print catalog statistics and a grouped listing",
	Long: `Print the number of components and sections in the catalog, followed by
every item grouped by pack category. Sections are listed last.`,
	Args: cobra.NoArgs,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().BoolVar(&mapJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(mapCmd)
}

type mapReport struct {
	Source string         `json:"source"`
	Stats  mapper.Stats   `json:"stats"`
	Groups []mapper.Group `json:"groups"`
}

func runMap(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	m := mapper.New(cat.Registry, logger)
	report := mapReport{
		Source: cat.Source,
		Stats:  m.Stats(),
		Groups: m.Groups(),
	}

	if mapJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return printMap(cmd, report)
}

func printMap(cmd *cobra.Command, report mapReport) error {
	out := cmd.OutOrStdout()
	st := output.StylesFor(out)

	fmt.Fprintln(out, st.Header.Render("Catalog: "+report.Source))
	fmt.Fprintf(out, "Components: %s  Sections: %s  Total: %s\n",
		output.Number(report.Stats.TotalComponents),
		output.Number(report.Stats.TotalSections),
		output.Number(report.Stats.Total))

	for _, g := range report.Groups {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Group.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Items))))

		// Styles are applied outside the tabwriter so escapes do not skew columns.
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		for _, it := range g.Items {
			marker := " "
			if it.Featured {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %s\t%s\t%s\n", marker, it.Name, it.Path, output.Truncate(it.Description, 60))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
