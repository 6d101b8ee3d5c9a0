package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/uipacks/uipacks/internal/branding"
	"github.com/uipacks/uipacks/internal/catalog"
	"github.com/uipacks/uipacks/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	catalogDir string
	verbose    bool

	logger = log.New(io.Discard)
)

// errUsage marks errors whose message has already been printed as a usage line.
var errUsage = errors.New("usage error")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` catalogs animated UI component packs, resolves the files and
packages each component needs, and bundles a selection into a standalone package.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: branding.CLIName()})
		logger.SetLevel(log.WarnLevel)
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		if err := config.Load(); err != nil {
			logger.Warn("ignoring config file", "err", err)
		}
		return nil
	},
	// Bare invocations and unknown subcommands print usage and succeed.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "Catalog directory (default: builtin catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadCatalog opens the catalog selected by --catalog, the environment or
// the config file, falling back to the builtin catalog.
func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Open(catalogLocation(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

func catalogLocation() string {
	if catalogDir != "" {
		return catalogDir
	}
	return catalog.Location()
}

// catalogFS returns the raw catalog files selected by catalogLocation and
// the name to report them under.
func catalogFS() (fs.FS, string, error) {
	dir := catalogLocation()
	if dir == "" {
		return catalog.BuiltinFS(), catalog.BuiltinName, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", fmt.Errorf("opening catalog: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("opening catalog: %s is not a directory", dir)
	}
	return os.DirFS(dir), dir, nil
}

// shallowMode returns the --shallow flag when it was given on the command
// line, otherwise the "shallow" config key.
func shallowMode(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("shallow") {
		return flag
	}
	return config.GetBool(config.KeyShallow)
}
