package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/ana-muslim-newtab/internal/config"
	"github.com/MKhiriev/ana-muslim-newtab/internal/logger"
	"github.com/MKhiriev/ana-muslim-newtab/internal/service"
	"github.com/MKhiriev/ana-muslim-newtab/internal/store"
	"github.com/MKhiriev/ana-muslim-newtab/models"
)

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newtab-server",
		Short:        "Reference sync server of the new-tab catalog",
		Version:      buildInfo().String(),
		SilenceUsage: true,
	}
	config.RegisterServerFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd(), newImportCmd())
	return root
}

type backend struct {
	cfg      *config.ServerConfig
	storages *store.Storages
	services *service.Services
	logger   *logger.Logger
}

// openBackend loads the configuration, connects to PostgreSQL and applies
// the migrations.
func openBackend(cmd *cobra.Command) (*backend, error) {
	log := logger.NewLogger("newtab-server")

	cfg, err := config.GetServerConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.Log.Level != "" {
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			log.Warn().Err(err).Str("func", "openBackend").Msg("unknown log level")
		}
	}
	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(cmd.Context(), cfg.DatabaseURI, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	return &backend{
		cfg:      cfg,
		storages: storages,
		services: service.NewServices(storages, buildInfo(), log),
		logger:   log,
	}, nil
}
