// Package config loads the mieza configuration file.
//
// The file is TOML, read from --config or $XDG_CONFIG_HOME/mieza/config.toml.
// Defaults are applied first and the file overrides them, so a missing file
// or a partial one is fine:
//
//	[render]
//	theme = "dark"
//	style = "iec"
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mieza/pkg/cache"
	"github.com/matzehuels/mieza/pkg/errors"
)

// Config is the full configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig holds rendering defaults for the CLI and API.
type RenderConfig struct {
	Theme     string  `toml:"theme" validate:"oneof=light dark"`
	Style     string  `toml:"style" validate:"oneof=ieee iec din"`
	Format    string  `toml:"format" validate:"oneof=svg png pdf json"`
	Scale     float64 `toml:"scale" validate:"gt=0,lte=10"`
	PinDots   bool    `toml:"pin_dots"`
	NetLabels bool    `toml:"net_labels"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend    string `toml:"backend" validate:"oneof=none file redis mongo"`
	Dir        string `toml:"dir"`
	URL        string `toml:"url" validate:"omitempty,url"`
	Prefix     string `toml:"prefix"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `mieza serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `toml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" validate:"gte=0"`
	MaxBodyBytes int64         `toml:"max_body_bytes" validate:"gt=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json logfmt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Theme:   "light",
			Style:   "ieee",
			Format:  "svg",
			Scale:   1,
			PinDots: true,
		},
		Cache: CacheConfig{
			Backend: string(cache.BackendFile),
		},
		Server: ServerConfig{
			Addr:         "localhost:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mieza/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mieza", "config.toml"), nil
}

// Load reads the configuration at path. An empty path means DefaultPath, in
// which case a missing file yields the defaults; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
			}
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return cfg, nil
}

// Read decodes TOML from r over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Failures are INVALID_CONFIG.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	switch cache.Backend(c.Cache.Backend) {
	case cache.BackendRedis, cache.BackendMongo:
		if c.Cache.URL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.url is required for the %s backend", c.Cache.Backend)
		}
	}
	return nil
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:    cache.Backend(c.Cache.Backend),
		Dir:        c.Cache.Dir,
		URL:        c.Cache.URL,
		Prefix:     c.Cache.Prefix,
		Database:   c.Cache.Database,
		Collection: c.Cache.Collection,
	}
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}

	e := verrs[0]
	field := fieldPath(e.Namespace())
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidConfig, "%s is required", field)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be one of: %s (got %v)", field, strings.ReplaceAll(e.Param(), " ", ", "), e.Value())
	case "gt", "gte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be greater than %s", field, orEqual(e.Tag(), e.Param()))
	case "lte":
		return errors.New(errors.ErrCodeInvalidConfig, "%s must not exceed %s", field, e.Param())
	case "url":
		return errors.New(errors.ErrCodeInvalidConfig, "%s is not a valid URL", field)
	case "hostname_port":
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be host:port (got %v)", field, e.Value())
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
}

func orEqual(tag, param string) string {
	if tag == "gte" {
		return "or equal to " + param
	}
	return param
}

// fieldPath turns "Config.Render.Theme" into "render.theme".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
