package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ServerConfig is the view of [StructuredConfig] used by the reference sync
// server.
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	DatabaseURI    string
	Log            Log
}

// GetServerConfig builds and validates the server configuration.
func GetServerConfig(fs *pflag.FlagSet) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DatabaseURI:    cfg.Storage.DB.DatabaseURI,
		Log:            cfg.Log,
	}

	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) validate() error {
	var addr NetAddress
	if err := addr.Set(cfg.HTTPAddress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
	}

	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}

	if cfg.DatabaseURI == "" {
		return fmt.Errorf("%w: database uri is required", ErrInvalidStorageConfigs)
	}

	return nil
}
