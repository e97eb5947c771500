package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by the client and server commands.
const (
	FlagConfig                = "config"
	FlagCloudFunctionsURL     = "cloud-functions-url"
	FlagAppSyncInterval       = "sync-interval"
	FlagDSN                   = "dsn"
	FlagDatabaseURI           = "database-uri"
	FlagCacheDir              = "cache-dir"
	FlagAddress               = "address"
	FlagServerRequestTimeout  = "request-timeout"
	FlagAdapterRequestTimeout = "adapter-timeout"
	FlagWorkersSyncInterval   = "workers-sync-interval"
	FlagCacheQueueSize        = "cache-queue-size"
	FlagLogFile               = "log-file"
	FlagLogLevel              = "log-level"
)

// NetAddress is a "host:port" pair usable as a pflag.Value.
type NetAddress struct {
	Host string
	Port int
}

// RegisterClientFlags binds the flags understood by the new-tab client.
func RegisterClientFlags(fs *pflag.FlagSet) {
	registerCommonFlags(fs)
	fs.String(FlagCloudFunctionsURL, "", "base URL of the sync endpoints")
	fs.Duration(FlagAppSyncInterval, 0, "minimum cursor age before a collection syncs again")
	fs.StringP(FlagDSN, "d", "", "SQLite database file of the local store")
	fs.String(FlagCacheDir, "", "directory for cached photo assets")
	fs.Duration(FlagAdapterRequestTimeout, 0, "timeout of outbound requests")
	fs.Duration(FlagWorkersSyncInterval, 0, "tick of the background sync job")
	fs.Int(FlagCacheQueueSize, 0, "pending cache-photo directives before new ones are dropped")
	fs.String(FlagLogFile, "", "client log file")
}

// RegisterServerFlags binds the flags understood by the reference server.
func RegisterServerFlags(fs *pflag.FlagSet) {
	registerCommonFlags(fs)
	fs.VarP(&NetAddress{}, FlagAddress, "a", "listen address host:port")
	fs.Duration(FlagServerRequestTimeout, 0, "timeout of inbound requests")
	fs.String(FlagDatabaseURI, "", "PostgreSQL connection string of the catalog")
}

func registerCommonFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "config file (.json or .toml)")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
}

// parseFlags reads every known flag present in fs. Flags that were not
// registered or not set keep their zero value.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	r := flagReader{fs: fs}

	cfg := &StructuredConfig{
		App: App{
			CloudFunctionsURL: r.string(FlagCloudFunctionsURL),
			SyncInterval:      r.duration(FlagAppSyncInterval),
		},
		Storage: Storage{
			DB: DB{
				DSN:         r.string(FlagDSN),
				DatabaseURI: r.string(FlagDatabaseURI),
			},
			Files: Files{CacheDir: r.string(FlagCacheDir)},
		},
		Server: Server{
			HTTPAddress:    r.string(FlagAddress),
			RequestTimeout: r.duration(FlagServerRequestTimeout),
		},
		Adapter: Adapter{RequestTimeout: r.duration(FlagAdapterRequestTimeout)},
		Workers: Workers{
			SyncInterval:   r.duration(FlagWorkersSyncInterval),
			CacheQueueSize: r.int(FlagCacheQueueSize),
		},
		Log: Log{
			File:  r.string(FlagLogFile),
			Level: r.string(FlagLogLevel),
		},
		ConfigFilePath: r.string(FlagConfig),
	}

	return cfg, r.err
}

type flagReader struct {
	fs  *pflag.FlagSet
	err error
}

func (r *flagReader) changed(name string) bool {
	f := r.fs.Lookup(name)
	return f != nil && f.Changed
}

func (r *flagReader) string(name string) string {
	if !r.changed(name) {
		return ""
	}
	return r.fs.Lookup(name).Value.String()
}

func (r *flagReader) duration(name string) time.Duration {
	if !r.changed(name) {
		return 0
	}
	d, err := r.fs.GetDuration(name)
	r.err = errors.Join(r.err, err)
	return d
}

func (r *flagReader) int(name string) int {
	if !r.changed(name) {
		return 0
	}
	n, err := r.fs.GetInt(name)
	r.err = errors.Join(r.err, err)
	return n
}

// String returns "host:port", or "" when the address is unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port". The host must be "localhost", empty or an IP.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && !strings.EqualFold(host, "localhost") && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
