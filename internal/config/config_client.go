package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ClientConfig is the view of [StructuredConfig] used by the new-tab client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Log     Log
}

// ClientApp holds the sync core settings.
type ClientApp struct {
	PhotosSyncURL  string
	ContentSyncURL string
	SyncInterval   time.Duration
}

// ClientAdapter holds outbound HTTP settings.
type ClientAdapter struct {
	RequestTimeout time.Duration
}

// ClientStorage holds local persistence settings.
type ClientStorage struct {
	DSN      string
	CacheDir string
}

// ClientWorkers holds background worker settings.
type ClientWorkers struct {
	SyncInterval   time.Duration
	CacheQueueSize int
}

// GetClientConfig builds and validates the client configuration. Paths left
// empty resolve inside the user config and cache directories.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	base := strings.TrimRight(cfg.App.CloudFunctionsURL, "/")
	clientCfg := &ClientConfig{
		App: ClientApp{
			PhotosSyncURL:  base + "/sync_photos",
			ContentSyncURL: base + "/sync_content",
			SyncInterval:   cfg.App.SyncInterval,
		},
		Adapter: ClientAdapter{RequestTimeout: cfg.Adapter.RequestTimeout},
		Storage: ClientStorage{
			DSN:      cfg.Storage.DB.DSN,
			CacheDir: cfg.Storage.Files.CacheDir,
		},
		Workers: ClientWorkers{
			SyncInterval:   cfg.Workers.SyncInterval,
			CacheQueueSize: cfg.Workers.CacheQueueSize,
		},
		Log: cfg.Log,
	}

	if clientCfg.Storage.DSN == "" {
		clientCfg.Storage.DSN = filepath.Join(userDir(os.UserConfigDir), dataDirName, "newtab.db")
	}
	if clientCfg.Storage.CacheDir == "" {
		clientCfg.Storage.CacheDir = filepath.Join(userDir(os.UserCacheDir), dataDirName, "photos")
	}

	return clientCfg, clientCfg.validate(cfg.App.CloudFunctionsURL)
}

func (cfg *ClientConfig) validate(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: cloud functions url %q", ErrInvalidAppConfigs, baseURL)
	}

	if cfg.App.SyncInterval <= 0 {
		return fmt.Errorf("%w: sync interval must be positive", ErrInvalidAppConfigs)
	}

	if strings.Contains(cfg.Storage.DSN, ":memory:") || strings.Contains(cfg.Storage.DSN, "mode=memory") {
		return fmt.Errorf("%w: in-memory databases are not supported", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.CacheQueueSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func userDir(fn func() (string, error)) string {
	dir, err := fn()
	if err != nil {
		return os.TempDir()
	}
	return dir
}
