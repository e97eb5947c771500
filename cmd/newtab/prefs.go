package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/ana-muslim-newtab/internal/client"
)

// prefsBucket is the part of a preference bucket the prefs commands use.
type prefsBucket interface {
	Raw(ctx context.Context, path string) (json.RawMessage, bool)
	Set(ctx context.Context, path string, value any) error
	Clear(ctx context.Context) error
}

func newPrefsCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write preferences",
		Long: `Preferences are JSON documents addressed by dot paths.

Example:
  newtab prefs get prayers.alarms
  newtab prefs set prayers.alarms.enable true
  newtab prefs --bucket favorites get photos`,
	}
	cmd.PersistentFlags().StringVar(&bucket, "bucket", "settings", "preference bucket (settings, favorites)")

	withBucket := func(fn func(cmd *cobra.Command, b prefsBucket, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			b, err := selectBucket(app, bucket)
			if err != nil {
				return err
			}
			return fn(cmd, b, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [path]",
			Short: "Print the value at path, or the whole bucket",
			Args:  cobra.MaximumNArgs(1),
			RunE: withBucket(func(cmd *cobra.Command, b prefsBucket, args []string) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				raw, ok := b.Raw(cmd.Context(), path)
				if !ok {
					return fmt.Errorf("%q is not set", path)
				}
				outputText(cmd, "%s\n", raw)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "set <path> <value>",
			Short: "Write value at path; JSON values are decoded, anything else is a string",
			Args:  cobra.ExactArgs(2),
			RunE: withBucket(func(cmd *cobra.Command, b prefsBucket, args []string) error {
				return b.Set(cmd.Context(), args[0], parsePrefValue(args[1]))
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Reset the bucket to its defaults",
			Args:  cobra.NoArgs,
			RunE: withBucket(func(cmd *cobra.Command, b prefsBucket, _ []string) error {
				return b.Clear(cmd.Context())
			}),
		},
	)
	return cmd
}

func selectBucket(app *client.App, name string) (prefsBucket, error) {
	switch name {
	case "settings":
		return app.Services().Settings, nil
	case "favorites":
		return app.Services().Favorites, nil
	default:
		return nil, fmt.Errorf("unknown bucket %q", name)
	}
}

// parsePrefValue decodes arg as JSON when it is valid JSON and keeps it as a
// plain string otherwise, so `set theme dark` needs no quoting.
func parsePrefValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}
