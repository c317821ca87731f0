package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/service"
)

var (
	applyView    string
	applyActions []string
	applyJSON    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [url-or-query]",
	Short: "Replay user actions on a list view URL",
	Long: `Replay user actions on a list view and print the resulting URL.

Actions are applied in order, as if clicked in the page:
  toggle_filter:<name>=<value>   select or deselect a filter value
  set_range:<name>=<value>       set (or with an empty value, clear) a range bound
  apply_filters                  navigate with the edited filters
  search:<text>                  replace the search terms
  toggle_sort:<column>           advance a column's sort: none, asc, desc
  set_page_size:<size>           change the page size
  goto_page:<n>                  jump to a page
  clear_search, clear_filters, clear_sorts, clear_all

Examples:
  browsestate apply '/products?sort_by=price' --action toggle_sort:price
  browsestate apply --action toggle_filter:color=red --action apply_filters`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions := make([]browse.Action, 0, len(applyActions))
		for _, raw := range applyActions {
			a, err := browse.ParseAction(raw)
			if err != nil {
				return fmt.Errorf("--action %q: %w", raw, err)
			}
			actions = append(actions, a)
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		v, err := resolveView(svc, applyView)
		if err != nil {
			return err
		}

		var query string
		if len(args) > 0 {
			query = args[0]
		}
		resp, err := svc.Apply(v.Name, service.ActionsRequest{Query: query, Actions: actions})
		if err != nil {
			return err
		}
		if applyJSON {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVar(&applyView, "view", "", "view to act on")
	applyCmd.Flags().StringArrayVarP(&applyActions, "action", "a", nil, "action as type[:arg] (repeatable)")
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "print the full response as JSON")
}
