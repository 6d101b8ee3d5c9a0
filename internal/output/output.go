// Package output holds terminal presentation helpers shared by the CLI
// commands: color detection, lipgloss styles and markdown rendering.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ColorEnabled reports whether styled output should be written to w.
// NO_COLOR disables color; otherwise w must be a terminal.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Styles are the text styles used by the reporting commands.
type Styles struct {
	Header  lipgloss.Style
	Group   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles returns the styles for a writer. Without color every style
// renders its input unchanged.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Header: plain, Group: plain, Label: plain, Value: plain, Hint: plain, Warning: plain}
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Group: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		Label: lipgloss.NewStyle().
			Bold(true),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}

// StylesFor returns NewStyles(ColorEnabled(w)).
func StylesFor(w io.Writer) Styles {
	return NewStyles(ColorEnabled(w))
}

// Number formats n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Markdown renders markdown source for the terminal. With color off the
// plain "notty" style is used. A width of 0 disables word wrapping.
func Markdown(src string, width int, color bool) (string, error) {
	opts := []glamour.TermRendererOption{}
	if color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
