// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the merged view of every configuration source.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Workers Workers `envPrefix:"WORKERS_"`
	Log     Log     `envPrefix:"LOG_"`

	// ConfigFilePath points at an optional .json or .toml file merged
	// below env and flags. Env: CONFIG, flag: -c/--config.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds settings of the sync core.
type App struct {
	// CloudFunctionsURL is the base URL of the sync endpoints; collections
	// append /sync_photos and /sync_content.
	// Env: APP_CLOUD_FUNCTIONS_URL
	CloudFunctionsURL string `env:"CLOUD_FUNCTIONS_URL"`

	// SyncInterval is the minimum age of a collection cursor before the
	// collection is synced again.
	// Env: APP_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Storage groups persistence settings.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Files Files `envPrefix:"FILES_"`
}

// DB holds database connection strings.
type DB struct {
	// DSN is the SQLite file backing the client local store.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// DatabaseURI is the PostgreSQL connection string of the catalog served
	// by the reference sync server.
	// Env: STORAGE_DB_DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI"`
}

// Files holds file-system settings.
type Files struct {
	// CacheDir receives photo assets downloaded by the cache worker.
	// Env: STORAGE_FILES_CACHE_DIR
	CacheDir string `env:"CACHE_DIR"`
}

// Server holds the reference sync server listener settings.
type Server struct {
	// HTTPAddress is "host:port". Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout bounds a single inbound request. Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound HTTP settings.
type Adapter struct {
	// RequestTimeout bounds a single sync or asset request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// SyncInterval is the tick of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
	// CacheQueueSize bounds pending cache-photo directives.
	// Env: WORKERS_CACHE_QUEUE_SIZE
	CacheQueueSize int `env:"CACHE_QUEUE_SIZE"`
}

// Log holds logging settings.
type Log struct {
	// File is the client log file. Env: LOG_FILE
	File string `env:"FILE"`
	// Level is a zerolog level name. Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig merges flags, env, the optional config file and
// defaults, in that priority order. fs may be nil when no flags are bound.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs).
		withEnv().
		withFile().
		withDefaults().
		build()
}
