// Package options holds the binder configuration: the deployment version used
// to key the external cache, the debug switch and the cache backend.
//
// Values come from built-in defaults, then an optional TOML file, then
// VIEWBIND_* environment variables, each layer overriding the previous one.
package options

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"view-binder/store"
)

const (
	DefaultNamespace = "view_bind"
	DefaultLifetime  = 24 * time.Hour
)

var ErrInvalidConfig = errors.New("invalid configuration")

var openStore = store.Open

// Config is the binder configuration.
type Config struct {
	Version string      `env:"VIEWBIND_VERSION" toml:"version"` // deployment identifier, keys the external cache
	Debug   bool        `env:"VIEWBIND_DEBUG"   toml:"debug"`   // forces a zero cache lifetime
	Cache   CacheConfig `envPrefix:"VIEWBIND_CACHE_" toml:"cache"`
}

// CacheConfig selects and scopes the external cache.
type CacheConfig struct {
	Namespace string        `env:"NAMESPACE" toml:"namespace"`
	Lifetime  time.Duration `env:"LIFETIME"  toml:"lifetime"`
	Backend   string        `env:"BACKEND"   toml:"backend"` // none, memory, disk or sqlite
	Dir       string        `env:"DIR"       toml:"dir"`     // disk backend directory
	DSN       string        `env:"DSN"       toml:"dsn"`     // sqlite path or DSN
}

// Default returns the built-in configuration: no external cache, a one day
// lifetime once one is selected.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Namespace: DefaultNamespace,
			Lifetime:  DefaultLifetime,
			Backend:   store.BackendNone,
		},
	}
}

// FromEnv returns the defaults overlaid with the environment.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// LoadFile returns the defaults overlaid with the TOML file at path and then
// with the environment. An empty path behaves like FromEnv.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return FromEnv()
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}

	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

// Validate checks the cache settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Cache.Namespace) == "" {
		return fmt.Errorf("%w: cache namespace is required", ErrInvalidConfig)
	}

	switch strings.ToLower(c.Cache.Backend) {
	case "", store.BackendNone, store.BackendMemory, store.BackendDisk:
	case store.BackendSQLite:
		if strings.TrimSpace(c.Cache.DSN) == "" {
			return fmt.Errorf("%w: sqlite cache requires a dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}

	return nil
}

// CacheLifetime returns the effective lifetime: zero in debug mode.
func (c Config) CacheLifetime() time.Duration {
	if c.Debug {
		return 0
	}

	return c.Cache.Lifetime
}

// OpenCache opens the configured backend scoped to the namespace and version.
// With no backend the returned cache is disabled.
func (c Config) OpenCache() (*store.Namespaced, error) {
	location := c.Cache.Dir
	if strings.EqualFold(c.Cache.Backend, store.BackendSQLite) {
		location = c.Cache.DSN
	}

	var backend store.Store
	if c.CacheLifetime() != 0 {
		b, err := openStore(c.Cache.Backend, location)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		backend = b
	}

	ns, err := store.NewNamespaced(backend, c.Cache.Namespace, c.Version, c.CacheLifetime())
	if err != nil {
		if backend != nil {
			_ = backend.Close()
		}

		return nil, err
	}

	return ns, nil
}
