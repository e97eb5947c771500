package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/ana-muslim-newtab/internal/client"
	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "newtab",
		Short: "Ana Muslim new tab in the terminal",
		Long: `newtab shows a background photo caption, a verse, hadeeth or dhikr and
a clock, synced incrementally from the content catalog.

Without a subcommand the dashboard opens.`,
		Version:      buildInfo().String(),
		SilenceUsage: true,
		RunE:         runDashboard,
	}
	config.RegisterClientFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCmd(),
		newSyncCmd(),
		newRandomCmd(),
		newClearCmd(),
		newPrefsCmd(),
		newFavoritesCmd(),
	)
	return root
}

// openApp builds the client from flags, env and the config file.
func openApp(cmd *cobra.Command) (*client.App, error) {
	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("newtab", cfg.Log.File)
	if cfg.Log.Level != "" {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn().Err(err).Str("func", "openApp").Msg("unknown log level")
		}
	}
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(cmd.Context(), cfg, buildInfo(), log)
	if err != nil {
		return nil, fmt.Errorf("init client app: %w", err)
	}
	return app, nil
}
