package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesm/browsestate/internal/service"
)

var (
	actionURLView     string
	actionURLBase     string
	actionURLRows     []string
	actionURLSelected []string
	actionURLAllPages bool
)

var actionURLCmd = &cobra.Command{
	Use:   "action-url [url-or-query]",
	Short: "Build a bulk action URL from a row selection",
	Long: `Build the URL a bulk action (such as delete) visits for a selection.

Checked rows become an id filter. With --all-pages the current query is
passed through so the action covers every matching row. With nothing
selected the query is sent with __RETURN_EMPTY__=1 so the action matches
no rows.

Example:
  browsestate action-url '/products?search_by=lamp' --base /products/delete \
      --rows 3,5,7 --select 3,7`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		v, err := resolveView(svc, actionURLView)
		if err != nil {
			return err
		}
		var query string
		if len(args) > 0 {
			query = args[0]
		}
		resp, err := svc.Selection(v.Name, service.SelectionRequest{
			Query:    query,
			Rows:     actionURLRows,
			Selected: actionURLSelected,
			AllPages: actionURLAllPages,
			BaseURL:  actionURLBase,
		})
		if err != nil {
			return err
		}
		if !resp.DeleteEnabled {
			logger.Warn("no rows selected; the action will match nothing")
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionURLCmd)
	actionURLCmd.Flags().StringVar(&actionURLView, "view", "", "view the rows belong to")
	actionURLCmd.Flags().StringVar(&actionURLBase, "base", "", "bulk action path (required)")
	actionURLCmd.Flags().StringSliceVar(&actionURLRows, "rows", nil, "row ids on the page, in order")
	actionURLCmd.Flags().StringSliceVar(&actionURLSelected, "select", nil, "checked row ids")
	actionURLCmd.Flags().BoolVar(&actionURLAllPages, "all-pages", false, "select every matching row on all pages")
	_ = actionURLCmd.MarkFlagRequired("base")
}
