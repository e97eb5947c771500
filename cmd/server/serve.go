package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/ana-muslim-newtab/internal/handler"
	"github.com/MKhiriev/ana-muslim-newtab/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /sync_photos, /sync_content and /version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(cmd)
			if err != nil {
				return err
			}
			defer b.storages.Close()

			handlers, err := handler.NewHandlers(b.services, b.cfg, b.logger)
			if err != nil {
				return fmt.Errorf("error creating handlers: %w", err)
			}

			srv, err := server.NewServer(handlers, b.cfg, b.logger)
			if err != nil {
				return fmt.Errorf("error creating server: %w", err)
			}

			srv.RunServer()
			return nil
		},
	}
}
