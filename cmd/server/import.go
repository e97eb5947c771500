package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import photos|content <file.json>",
		Short: "Import a JSON array of catalog items as a new version",
		Long: `Import stores every element of the array under the next catalog version.

Elements need a string "id"; "active": false marks a removal.

Example:
  newtab-server import photos photos.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := store.Catalog(args[0])
			if !catalog.Valid() {
				return fmt.Errorf("%w: %q", store.ErrUnknownCatalog, args[0])
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			b, err := openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.storages.Close()

			n, err := b.services.CatalogService.Import(cmd.Context(), catalog, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", n, catalog)
			return nil
		},
	}
}
