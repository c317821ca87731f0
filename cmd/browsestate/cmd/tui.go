package cmd

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wesm/browsestate/internal/service"
	"github.com/wesm/browsestate/internal/tui"
)

var (
	tuiView string
	tuiRows []string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [url-or-query]",
	Short: "Open the interactive terminal UI",
	Long: `Open an interactive terminal UI on one view's query state.

Navigation:
  ↑/k, ↓/j    Move up/down
  Enter/Space Toggle sort, filter value or row; edit a range bound
  /           Search
  g           Go to page
  p           Cycle page size
  r           Edit the range bound under the cursor
  a / c       Apply / clear filters
  s / x       Clear search / sorts
  C           Clear everything
  * / A       Check page rows / select all pages
  d           Show the bulk delete URL
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return errors.New("tui needs an interactive terminal")
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		v, err := resolveView(svc, tuiView)
		if err != nil {
			return err
		}
		var query string
		if len(args) > 0 {
			query = args[0]
		}
		return tui.Run(cmd.Context(), v, tui.Options{
			URL:     service.ViewURL(v, query),
			Rows:    tuiRows,
			Version: Version,
			Logger:  logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiView, "view", "", "view to open")
	tuiCmd.Flags().StringSliceVar(&tuiRows, "rows", nil, "row ids to show as selectable rows")
}
