package config

import "time"

// Built-in defaults applied below every other source.
const (
	DefaultCloudFunctionsURL     = "http://localhost:8080"
	DefaultAppSyncInterval       = time.Minute
	DefaultServerAddress         = "localhost:8080"
	DefaultServerRequestTimeout  = 10 * time.Second
	DefaultAdapterRequestTimeout = 15 * time.Second
	DefaultWorkersSyncInterval   = time.Minute
	DefaultCacheQueueSize        = 16
	DefaultLogLevel              = "debug"
	dataDirName                  = "ana-muslim-newtab"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			CloudFunctionsURL: DefaultCloudFunctionsURL,
			SyncInterval:      DefaultAppSyncInterval,
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultServerRequestTimeout,
		},
		Adapter: Adapter{RequestTimeout: DefaultAdapterRequestTimeout},
		Workers: Workers{
			SyncInterval:   DefaultWorkersSyncInterval,
			CacheQueueSize: DefaultCacheQueueSize,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}
