package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
)

// fileConfig mirrors [StructuredConfig] with file-friendly types.
type fileConfig struct {
	App struct {
		CloudFunctionsURL string   `json:"cloud_functions_url" toml:"cloud_functions_url"`
		SyncInterval      Duration `json:"sync_interval" toml:"sync_interval"`
	} `json:"app" toml:"app"`

	Storage struct {
		DB struct {
			DSN         string `json:"dsn" toml:"dsn"`
			DatabaseURI string `json:"database_uri" toml:"database_uri"`
		} `json:"db" toml:"db"`
		Files struct {
			CacheDir string `json:"cache_dir" toml:"cache_dir"`
		} `json:"files" toml:"files"`
	} `json:"storage" toml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" toml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"server" toml:"server"`

	Adapter struct {
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout"`
	} `json:"adapter" toml:"adapter"`

	Workers struct {
		SyncInterval   Duration `json:"sync_interval" toml:"sync_interval"`
		CacheQueueSize int      `json:"cache_queue_size" toml:"cache_queue_size"`
	} `json:"workers" toml:"workers"`

	Log struct {
		File  string `json:"file" toml:"file"`
		Level string `json:"level" toml:"level"`
	} `json:"log" toml:"log"`
}

// parseFile reads a .json (comments and trailing commas allowed) or .toml
// config file.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("error decoding json config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, ext)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CloudFunctionsURL: fc.App.CloudFunctionsURL,
			SyncInterval:      time.Duration(fc.App.SyncInterval),
		},
		Storage: Storage{
			DB: DB{
				DSN:         fc.Storage.DB.DSN,
				DatabaseURI: fc.Storage.DB.DatabaseURI,
			},
			Files: Files{CacheDir: fc.Storage.Files.CacheDir},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{RequestTimeout: time.Duration(fc.Adapter.RequestTimeout)},
		Workers: Workers{
			SyncInterval:   time.Duration(fc.Workers.SyncInterval),
			CacheQueueSize: fc.Workers.CacheQueueSize,
		},
		Log: Log{
			File:  fc.Log.File,
			Level: fc.Log.Level,
		},
	}
}

// Duration decodes strings such as "1h" or "30s" from JSON and TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
