package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/railreport/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RAILREPORT_"

// LoadDotEnv loads the given .env files (".env" when none are named) into the
// process environment. Missing files are skipped and existing variables are
// never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", f)
		}
	}
	return nil
}

// ApplyEnv overrides settings from RAILREPORT_* variables found by lookup
// (os.LookupEnv when nil).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	strs := map[string]*string{
		"TITLE":            &c.Report.Title,
		"AUTHORITY":        &c.Report.Authority,
		"DISCLAIMER":       &c.Report.Disclaimer,
		"RECORDS_DIR":      &c.Records.Dir,
		"MONGO_URI":        &c.Mongo.URI,
		"MONGO_DATABASE":   &c.Mongo.Database,
		"MONGO_COLLECTION": &c.Mongo.Collection,
		"REDIS_ADDR":       &c.Redis.Addr,
		"REDIS_PASSWORD":   &c.Redis.Password,
		"CACHE_DIR":        &c.Cache.Dir,
		"LISTEN_ADDR":      &c.Server.Addr,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("LOGOS"); ok {
		c.Assets.Logos = nil
		for _, s := range strings.Split(v, ",") {
			c.Assets.Logos = append(c.Assets.Logos, strings.TrimSpace(s))
		}
	}

	durations := map[string]*Duration{
		"ASSET_TIMEOUT": &c.Assets.Timeout,
		"CACHE_TTL":     &c.Cache.TTL,
	}
	for name, dst := range durations {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
			}
			dst.Duration = d
		}
	}

	ints := map[string]*int{
		"ASSET_ATTEMPTS": &c.Assets.Attempts,
		"REDIS_DB":       &c.Redis.DB,
	}
	for name, dst := range ints {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
			}
			*dst = n
		}
	}

	if v, ok := get("NO_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sNO_CACHE", EnvPrefix)
		}
		c.Cache.Disabled = b
	}
	return nil
}
