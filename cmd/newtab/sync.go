package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync [photos|content]...",
		Short: "Sync collections with the catalog",
		Long: `Sync pulls the next page of every named collection, or of all of them.

A collection whose last sync is younger than the sync interval is skipped
unless --force is given.

Example:
  newtab sync
  newtab sync photos --force`,
		ValidArgs: []string{"photos", "content"},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			start := time.Now()
			if err := app.Sync(cmd.Context(), force, args...); err != nil {
				return err
			}
			outputText(cmd, "Sync complete (took %s)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "sync even when the cursor is fresh")
	return cmd
}
