package main

import (
	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite photos",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <photo-id>",
			Short: "Add a photo to the favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := openApp(cmd)
				if err != nil {
					return err
				}
				defer app.Close()
				return app.Photos.Dispatch(cmd.Context(), app.Photos.AddToFavoritePhotos(args[0]))
			},
		},
		&cobra.Command{
			Use:   "remove <photo-id>",
			Short: "Remove a photo from the favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := openApp(cmd)
				if err != nil {
					return err
				}
				defer app.Close()
				return app.Photos.Dispatch(cmd.Context(), app.Photos.RemoveFromFavoritePhotos(args[0]))
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the favorite photo ids",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := openApp(cmd)
				if err != nil {
					return err
				}
				defer app.Close()
				for _, id := range app.Photos.State().FavoritePhotos {
					outputText(cmd, "%s\n", id)
				}
				return nil
			},
		},
	)
	return cmd
}
