package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wesm/browsestate/internal/service"
	"github.com/wesm/browsestate/internal/viewstate"
)

var parseView string

var parseCmd = &cobra.Command{
	Use:   "parse <url-or-query>",
	Short: "Decode a list view URL",
	Long: `Decode a list view URL or query string into search terms, filters,
sort order and pagination.

With --view (or a single configured view) the output is the full view model:
range filters are separated out, hidden filters are reported and button
states are derived. Without any views only the raw decoding is printed.

Examples:
  browsestate parse '/products?search_by=lamp&sort_by=-price'
  browsestate parse --view products 'filter_name=color&filter_value=red,blue'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if parseView == "" && len(svc.Views()) == 0 {
			s := viewstate.NewCodec(cfg.Defaults.PageSize).Parse(args[0])
			return printJSON(out, s.Summarize())
		}

		v, err := resolveView(svc, parseView)
		if err != nil {
			return err
		}
		m, err := svc.State(v.Name, args[0])
		if err != nil {
			return err
		}
		logger.Debug("parsed", "view", v.Name, "url", service.ViewURL(v, args[0]))
		return printJSON(out, m)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseView, "view", "", "view to decode against")
}
