// Package config loads railreport settings from a TOML file, an optional
// .env file and RAILREPORT_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/railreport/pkg/errors"
)

const appName = "railreport"

// Defaults.
const (
	DefaultAssetTimeout    = 5 * time.Second
	DefaultAssetAttempts   = 1
	DefaultAssetMaxEdge    = 512
	DefaultCacheTTL        = 24 * time.Hour
	DefaultListenAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMongoDatabase   = "railway"
	DefaultMongoCollection = "materials"

	// MaxLogos is the number of slots in the report header band.
	MaxLogos = 3
)

// Config is the complete runtime configuration.
type Config struct {
	Report  ReportConfig  `toml:"report"`
	Assets  AssetsConfig  `toml:"assets"`
	Records RecordsConfig `toml:"records"`
	Mongo   MongoConfig   `toml:"mongo"`
	Redis   RedisConfig   `toml:"redis"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
	// Unknown lists keys in the file that matched no setting.
	Unknown []string `toml:"-"`
}

// ReportConfig holds the printed texts. Empty values use the built-in text.
type ReportConfig struct {
	Title      string `toml:"title"`
	Authority  string `toml:"authority"`
	Disclaimer string `toml:"disclaimer"`
	QRCode     *bool  `toml:"qr_code"`
}

// AssetsConfig controls header logo loading.
type AssetsConfig struct {
	Logos    []string `toml:"logos"`
	Timeout  Duration `toml:"timeout"`
	Attempts int      `toml:"attempts"`
	MaxEdge  int      `toml:"max_edge"`
}

// RecordsConfig points at a directory of record files.
type RecordsConfig struct {
	Dir string `toml:"dir"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type CacheConfig struct {
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultPath returns ~/.config/railreport/config.toml, honouring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Load reads path, or the default location when path is empty. A missing
// default file is not an error; a missing explicit file is. Defaults are
// applied but environment overrides are not (see [Config.ApplyEnv]).
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		return Default(), nil
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	cfg.Path = path
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	sort.Strings(cfg.Unknown)
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills every zero setting with its default.
func (c *Config) SetDefaults() {
	if c.Assets.Timeout.Duration <= 0 {
		c.Assets.Timeout.Duration = DefaultAssetTimeout
	}
	if c.Assets.Attempts <= 0 {
		c.Assets.Attempts = DefaultAssetAttempts
	}
	if c.Assets.MaxEdge <= 0 {
		c.Assets.MaxEdge = DefaultAssetMaxEdge
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = DefaultMongoDatabase
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = DefaultMongoCollection
	}
	if c.Cache.TTL.Duration <= 0 {
		c.Cache.TTL.Duration = DefaultCacheTTL
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultListenAddr
	}
	if c.Server.ShutdownTimeout.Duration <= 0 {
		c.Server.ShutdownTimeout.Duration = DefaultShutdownTimeout
	}
}

// Validate checks settings that defaults cannot repair.
func (c *Config) Validate() error {
	if len(c.Assets.Logos) > MaxLogos {
		return errors.New(errors.ErrCodeInvalidConfig, "at most %d logos are supported, got %d", MaxLogos, len(c.Assets.Logos))
	}
	for _, src := range c.Assets.Logos {
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			if err := errors.ValidateURL(src); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "logo %q", src)
			}
		}
	}
	if c.Assets.Attempts > 10 {
		return errors.New(errors.ErrCodeInvalidConfig, "assets.attempts must be between 1 and 10")
	}
	if c.Mongo.URI != "" && c.Records.Dir != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "configure either mongo.uri or records.dir, not both")
	}
	if c.Mongo.URI != "" && !strings.HasPrefix(c.Mongo.URI, "mongodb://") && !strings.HasPrefix(c.Mongo.URI, "mongodb+srv://") {
		return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri must start with mongodb:// or mongodb+srv://")
	}
	return nil
}

// Write encodes c as TOML.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
