package main

import "github.com/spf13/cobra"

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "clear [photos|content]...",
		Short:     "Drop local items and sync cursors",
		ValidArgs: []string{"photos", "content"},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Clear(cmd.Context(), args...); err != nil {
				return err
			}
			outputText(cmd, "Cleared\n")
			return nil
		},
	}
}
