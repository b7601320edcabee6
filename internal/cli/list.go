package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbrowse/internal/codec"
	"gitbrowse/internal/service"
)

func newListCmd(a *app) *cobra.Command {
	var (
		sortExpr string
		offset   int
		limit    int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the repository listing",
		Example: `  # Most recently changed first (the default order)
  gitbrowse list

  # Second page of 10, by owner
  gitbrowse list --sort owner:asc --offset 10 --limit 10

  # Everything as YAML
  gitbrowse list --limit 500 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			opts := a.listingOptions()
			opts.CacheTTL = 0
			listing := service.NewListingService(store, opts)

			sort, err := service.ParseSort(sortExpr, listing.DefaultSort())
			if err != nil {
				return err
			}

			exp, err := codec.ForFormat(format, listing.Now())
			if err != nil {
				return err
			}

			page, err := listing.Page(cmd.Context(), service.PageRequest{
				Sort:   sort,
				Offset: offset,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if err := exp.Export(page.Items, cmd.OutOrStdout()); err != nil {
				return err
			}

			if exp.Format() == "table" {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%d-%d of %d, sorted by %s\n",
					min(page.Meta.Offset+1, page.Meta.TotalItems),
					page.Meta.Offset+len(page.Items),
					page.Meta.TotalItems,
					page.Sort)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortExpr, "sort", "s", "", "sort as field[:asc|desc] (name, description, owner, lastChange)")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first repository to print")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of repositories to print (default: listing.page_size)")
	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json, yaml")

	return cmd
}
