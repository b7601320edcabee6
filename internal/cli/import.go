package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitbrowse/internal/logging"
	"gitbrowse/internal/service"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Replace the stored repositories with a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			listing := service.NewListingService(store, a.listingOptions())
			catalog := service.NewCatalogService(store, listing, service.NewEventBus(),
				logging.Component(a.logger, "catalog"))

			n, err := catalog.Reload(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d repositories from %s\n", n, args[0])
			return nil
		},
	}
}
