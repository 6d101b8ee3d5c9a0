package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/output"
	"github.com/uipacks/uipacks/internal/registry"
)

var (
	showMarkdown bool
	showShallow  bool
)

var showCmd = &cobra.Command{
	Use:   "show <pack-id>",
	Short: "Show details of a component pack",
	Long: `Show a pack's metadata, its variants and the files and packages its
component needs. With --markdown the details are rendered as a document.
Dependencies are followed transitively unless --shallow is set (or the
"shallow" config key is true).`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "Render as a markdown document")
	showCmd.Flags().BoolVar(&showShallow, "shallow", false, "Expand direct dependencies only")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	id := args[0]
	pack, ok := cat.Registry.ByID(id)
	if !ok {
		return fmt.Errorf("pack %q not found (run '%s list' to see available packs)", id, rootCmd.Name())
	}

	r := cat.Resolver(registry.ResolveOptions{Shallow: shallowMode(cmd, showShallow)})
	files := r.Files(id)
	pkgs := r.Packages(id)

	out := cmd.OutOrStdout()
	if showMarkdown {
		rendered, err := output.Markdown(packMarkdown(pack, files, pkgs), 80, output.ColorEnabled(out))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	}

	st := output.StylesFor(out)
	fmt.Fprintln(out, st.Header.Render(pack.Title)+" "+st.Hint.Render("("+pack.ID+")"))
	if pack.Description != "" {
		fmt.Fprintln(out, pack.Description)
	}
	fmt.Fprintln(out)

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%s %s\n", st.Label.Render(label+":"), st.Value.Render(value))
		}
	}
	field("Name", pack.Name)
	field("Category", pack.Category)
	field("Version", pack.Version)
	field("License", pack.License)
	field("Author", pack.Author)
	field("Tags", strings.Join(pack.Tags, ", "))
	field("Dependencies", strings.Join(pack.Dependencies, ", "))
	field("Install", pack.InstallCommand)
	field("Import", pack.ImportExample)

	if len(pack.Variants) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Group.Render(fmt.Sprintf("Variants (%d)", len(pack.Variants))))
		for _, v := range pack.Variants {
			line := fmt.Sprintf("  %s  %s", v.ID, v.Title)
			if v.Featured {
				line += " *"
			}
			fmt.Fprintln(out, line)
			if v.Description != "" {
				fmt.Fprintln(out, "      "+st.Hint.Render(v.Description))
			}
		}
	}

	if len(files) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Group.Render(fmt.Sprintf("Files (%d)", len(files))))
		for _, f := range files {
			fmt.Fprintln(out, "  "+f)
		}
	}
	if len(pkgs.Dependencies)+len(pkgs.PeerDependencies) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Group.Render("Packages"))
		for _, p := range pkgs.Dependencies {
			fmt.Fprintln(out, "  "+p)
		}
		for _, p := range pkgs.PeerDependencies {
			fmt.Fprintln(out, "  "+p+" (peer)")
		}
	}
	return nil
}

// packMarkdown builds the markdown document for show --markdown.
func packMarkdown(p registry.ComponentPack, files []string, pkgs registry.PackageSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}

	fmt.Fprintf(&b, "- **ID:** `%s`\n", p.ID)
	if p.Category != "" {
		fmt.Fprintf(&b, "- **Category:** %s\n", p.Category)
	}
	if p.Version != "" {
		fmt.Fprintf(&b, "- **Version:** %s\n", p.Version)
	}
	if p.License != "" {
		fmt.Fprintf(&b, "- **License:** %s\n", p.License)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(p.Tags, ", "))
	}

	if p.ImportExample != "" {
		fmt.Fprintf(&b, "\n## Usage\n\n```tsx\n%s\n```\n", p.ImportExample)
	}

	if len(p.Variants) > 0 {
		b.WriteString("\n## Variants\n")
		for _, v := range p.Variants {
			fmt.Fprintf(&b, "\n### %s\n\n", v.Title)
			if v.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", v.Description)
			}
			if v.CodeExample != "" {
				fmt.Fprintf(&b, "```tsx\n%s\n```\n", v.CodeExample)
			}
		}
	}

	if len(files) > 0 {
		b.WriteString("\n## Files\n\n")
		for _, f := range files {
			fmt.Fprintf(&b, "- `%s`\n", f)
		}
	}
	if len(pkgs.Dependencies) > 0 {
		b.WriteString("\n## Packages\n\n")
		for _, d := range pkgs.Dependencies {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
	}
	if len(pkgs.PeerDependencies) > 0 {
		b.WriteString("\n## Peer dependencies\n\n")
		for _, d := range pkgs.PeerDependencies {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
	}
	return b.String()
}
