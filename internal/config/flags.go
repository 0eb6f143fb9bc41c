package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags are the command-line overrides shared by every binary. Only flags
// that were set on the command line override the loaded configuration.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string

	port            int
	shutdownTimeout time.Duration
	dbDriver        string
	dbPath          string
	dbURL           string
	logLevel        string
	logFormat       string
	concurrency     int
}

// NewFlags registers the shared flags on a new flag set named name.
func NewFlags(name string) *Flags {
	d := Default()
	f := &Flags{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}

	f.fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to YAML config file (default $"+ConfigPathEnv+")")
	f.fs.IntVar(&f.port, "port", d.Server.Port, "API listen port")
	f.fs.DurationVar(&f.shutdownTimeout, "shutdown-timeout", d.Server.ShutdownTimeout, "graceful shutdown timeout")
	f.fs.StringVar(&f.dbDriver, "db-driver", d.Database.Driver, "database driver: sqlite or postgres")
	f.fs.StringVar(&f.dbPath, "db-path", d.Database.Path, "SQLite database file")
	f.fs.StringVar(&f.dbURL, "database-url", "", "PostgreSQL DSN")
	f.fs.StringVar(&f.logLevel, "log-level", d.Log.Level, "log level: debug, info, warn, error")
	f.fs.StringVar(&f.logFormat, "log-format", d.Log.Format, "log format: text or json")
	f.fs.IntVar(&f.concurrency, "concurrency", d.Reconcile.Concurrency, "clients recomputed in parallel by reconcile")
	return f
}

// FlagSet exposes the underlying set so binaries can add their own flags.
func (f *Flags) FlagSet() *pflag.FlagSet { return f.fs }

// Parse parses args (without the program name).
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// Load loads the configuration named by --config and applies the flags
// that were set, then validates the result.
func (f *Flags) Load() (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply copies explicitly set flags into cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.fs.Changed("port") {
		cfg.Server.Port = f.port
	}
	if f.fs.Changed("shutdown-timeout") {
		cfg.Server.ShutdownTimeout = f.shutdownTimeout
	}
	if f.fs.Changed("db-driver") {
		cfg.Database.Driver = f.dbDriver
	}
	if f.fs.Changed("db-path") {
		cfg.Database.Path = f.dbPath
	}
	if f.fs.Changed("database-url") {
		cfg.Database.URL = f.dbURL
	}
	if f.fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if f.fs.Changed("concurrency") {
		cfg.Reconcile.Concurrency = f.concurrency
	}
}
