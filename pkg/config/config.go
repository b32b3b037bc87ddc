// Package config loads cfront settings. Sources are layered from lowest
// to highest precedence: built-in defaults, a YAML file, an env file and
// the process environment. Command-line flags are applied last by the
// caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/raymyers/cfront/pkg/diag"
	"github.com/raymyers/cfront/pkg/scope"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation and conversion error
var ErrInvalid = errors.New("invalid configuration")

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variable names
const (
	EnvScopeCache     = "CFRONT_SCOPE_CACHE"
	EnvPedanticErrors = "CFRONT_PEDANTIC_ERRORS"
	EnvNoWarnings     = "CFRONT_NO_WARNINGS"
	EnvErrorLimit     = "CFRONT_ERROR_LIMIT"
	EnvColor          = "CFRONT_COLOR"
	EnvNoColor        = "NO_COLOR"
)

// Config holds every setting the CLI needs
type Config struct {
	ScopeCacheSize int      `yaml:"scope_cache_size"`
	PedanticErrors bool     `yaml:"pedantic_errors"`
	NoWarnings     bool     `yaml:"no_warnings"`
	ErrorLimit     int      `yaml:"error_limit"`
	Color          string   `yaml:"color"`
	IncludePaths   []string `yaml:"include_paths"`
	Defines        []string `yaml:"defines"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		ScopeCacheSize: scope.DefaultCacheSize,
		Color:          ColorAuto,
	}
}

// LoadFile overlays the YAML file at path onto the defaults. Unknown keys
// are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Lookup finds the value of an environment variable
type Lookup func(key string) (string, bool)

// Environ returns a Lookup over the process environment backed by the
// values in envFile. The process environment wins. An empty envFile
// means the process environment alone.
func Environ(envFile string) (Lookup, error) {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("reading env file: %w", err)
		}
		fileVals = vals
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides settings from the environment. NO_COLOR, when set to
// anything, forces color off unless CFRONT_COLOR says otherwise.
func (c *Config) ApplyEnv(lookup Lookup) error {
	if v, ok := lookup(EnvScopeCache); ok {
		n, err := parseInt(EnvScopeCache, v)
		if err != nil {
			return err
		}
		c.ScopeCacheSize = n
	}
	if v, ok := lookup(EnvErrorLimit); ok {
		n, err := parseInt(EnvErrorLimit, v)
		if err != nil {
			return err
		}
		c.ErrorLimit = n
	}
	if v, ok := lookup(EnvPedanticErrors); ok {
		b, err := parseBool(EnvPedanticErrors, v)
		if err != nil {
			return err
		}
		c.PedanticErrors = b
	}
	if v, ok := lookup(EnvNoWarnings); ok {
		b, err := parseBool(EnvNoWarnings, v)
		if err != nil {
			return err
		}
		c.NoWarnings = b
	}
	if _, ok := lookup(EnvNoColor); ok {
		c.Color = ColorNever
	}
	if v, ok := lookup(EnvColor); ok {
		c.Color = strings.ToLower(strings.TrimSpace(v))
	}
	return c.Validate()
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.ScopeCacheSize < 0 {
		return fmt.Errorf("%w: scope_cache_size must not be negative, got %d", ErrInvalid, c.ScopeCacheSize)
	}
	if c.ErrorLimit < 0 {
		return fmt.Errorf("%w: error_limit must not be negative, got %d", ErrInvalid, c.ErrorLimit)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	return nil
}

// DiagOptions returns the diagnostic policy for these settings
func (c *Config) DiagOptions() *diag.Options {
	return &diag.Options{
		PedanticErrors: c.PedanticErrors,
		NoWarnings:     c.NoWarnings,
		ErrorLimit:     c.ErrorLimit,
	}
}

func parseInt(key, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
	}
	return n, nil
}

func parseBool(key, v string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, key, v)
	}
	return b, nil
}
