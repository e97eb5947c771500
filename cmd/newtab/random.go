package main

import (
	"github.com/spf13/cobra"
)

func newRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "random photo|content",
		Short:     "Print a random photo or content item as JSON",
		ValidArgs: []string{"photo", "content"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			var item any
			if args[0] == "photo" {
				item, err = app.RandomPhoto(cmd.Context())
			} else {
				item, err = app.RandomContent(cmd.Context())
			}
			if err != nil {
				return err
			}
			return outputAsJSON(cmd, item)
		},
	}
}
