package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var viewsJSON bool

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List configured views",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if viewsJSON {
			return printJSON(out, svc.Views())
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH\tSORTABLE\tFILTERS\tPAGE SIZE")
		for _, v := range svc.Views() {
			var filters []string
			for _, f := range v.Filters {
				filters = append(filters, f.Name)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", v.Name, v.Path,
				strings.Join(v.SortableColumns(), ","), strings.Join(filters, ","), v.PageSize)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
	viewsCmd.Flags().BoolVar(&viewsJSON, "json", false, "output as JSON")
}
