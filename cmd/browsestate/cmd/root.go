package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesm/browsestate/internal/catalog"
	"github.com/wesm/browsestate/internal/config"
	"github.com/wesm/browsestate/internal/service"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "browsestate",
	Short: "List view query state tool",
	Long: `browsestate decodes and rewrites list view URLs: search terms, filters,
multi-column sort order and pagination.

Views are declared in config.toml; each names its sortable columns, its
filter controls and the page sizes it offers. The same controller backs the
command line, the HTTP API, the MCP server and the terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newService builds the view catalog from the loaded config.
func newService() (*service.Service, error) {
	cat, err := catalog.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("load views from %s: %w", cfg.ConfigFilePath(), err)
	}
	return service.New(cat, logger), nil
}

// resolveView returns the named view, or the only view when name is empty.
func resolveView(svc *service.Service, name string) (*catalog.View, error) {
	if name != "" {
		return svc.View(name)
	}
	switch views := svc.Views(); len(views) {
	case 0:
		return nil, fmt.Errorf("no views configured\n\nAdd one to %s:\n\n  [[views]]\n  name = \"products\"\n  path = \"/products\"", cfg.ConfigFilePath())
	case 1:
		return views[0], nil
	default:
		return nil, fmt.Errorf("%d views configured; choose one with --view", len(views))
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "browsestate", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.browsestate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "home directory (overrides BROWSESTATE_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(versionCmd)
}
