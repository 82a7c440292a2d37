package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/gallery-tui/internal/app"
	"github.com/atomicstack/gallery-tui/internal/backend"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBackendURL         = "GALLERY_BACKEND_URL"
	envBackendURLFallback = "BACKEND_URL"
	envSkipBrowserWarning = "GALLERY_SKIP_BROWSER_WARNING"
	envTimeout            = "GALLERY_TIMEOUT"
	envLimit              = "GALLERY_LIMIT"
	envRefresh            = "GALLERY_REFRESH"
	envWidth              = "GALLERY_WIDTH"
	envHeight             = "GALLERY_HEIGHT"
	envShowFooter         = "GALLERY_FOOTER"
	envTrace              = "GALLERY_TRACE"
	envLogFile            = "GALLERY_LOG_FILE"
	envConfig             = "GALLERY_CONFIG"
)

// Flag names.
const (
	FlagBackendURL         = "backend-url"
	FlagSkipBrowserWarning = "skip-browser-warning"
	FlagTimeout            = "timeout"
	FlagLimit              = "limit"
	FlagRefresh            = "refresh"
	FlagWidth              = "width"
	FlagHeight             = "height"
	FlagFooter             = "footer"
	FlagTrace              = "trace"
	FlagLogFile            = "log-file"
	FlagConfig             = "config"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		App: app.Config{
			SkipBrowserWarning: true,
			Timeout:            backend.DefaultTimeout,
			Limit:              uistate.DefaultLimit,
		},
	}
}

// RegisterFlags declares every configuration flag on fs. Flag defaults are
// only used for help output; unset flags never override file or
// environment values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String(FlagBackendURL, "", "base URL of the caption search backend")
	fs.Bool(FlagSkipBrowserWarning, d.App.SkipBrowserWarning, "send the ngrok-skip-browser-warning header")
	fs.Duration(FlagTimeout, d.App.Timeout, "timeout for a single backend request")
	fs.Int(FlagLimit, d.App.Limit, "number of search results to request")
	fs.Duration(FlagRefresh, 0, "re-fetch the catalog at this interval (0 disables)")
	fs.Int(FlagWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(FlagHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(FlagFooter, false, "show the key help footer")
	fs.Bool(FlagTrace, false, "enable verbose JSON trace logging")
	fs.String(FlagLogFile, "", "path to the log file")
	fs.String(FlagConfig, "", "path to a TOML config file")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("gallery", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve layers defaults, the TOML file, the environment and the flags
// that were set on fs, in that order.
func Resolve(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	cfg := Defaults()

	path, explicit := configPath(fs, env)
	if path != "" {
		if err := applyFile(&cfg, path, explicit); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	if err := applyFlags(&cfg, fs); err != nil {
		return Config{}, err
	}
	cfg.App.Limit = uistate.ClampLimit(cfg.App.Limit)
	cfg.Flags = flagValues(fs)
	return cfg, nil
}

func configPath(fs *pflag.FlagSet, env map[string]string) (string, bool) {
	if fs != nil && fs.Changed(FlagConfig) {
		v, _ := fs.GetString(FlagConfig)
		return v, true
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "gallery", "config.toml"), false
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "gallery", "config.toml"), false
	}
	return "", false
}

type fileConfig struct {
	Backend struct {
		URL                string `toml:"url"`
		SkipBrowserWarning *bool  `toml:"skip_browser_warning"`
		Timeout            string `toml:"timeout"`
	} `toml:"backend"`
	Search struct {
		Limit *int `toml:"limit"`
	} `toml:"search"`
	Catalog struct {
		Refresh string `toml:"refresh"`
	} `toml:"catalog"`
	UI struct {
		Width  *int  `toml:"width"`
		Height *int  `toml:"height"`
		Footer *bool `toml:"footer"`
	} `toml:"ui"`
	Log struct {
		File  string `toml:"file"`
		Trace *bool  `toml:"trace"`
	} `toml:"log"`
}

func applyFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.File = path
	if fc.Backend.URL != "" {
		cfg.App.BackendURL = fc.Backend.URL
	}
	if fc.Backend.SkipBrowserWarning != nil {
		cfg.App.SkipBrowserWarning = *fc.Backend.SkipBrowserWarning
	}
	if fc.Backend.Timeout != "" {
		d, err := time.ParseDuration(fc.Backend.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: backend.timeout: %w", path, err)
		}
		cfg.App.Timeout = d
	}
	if fc.Search.Limit != nil {
		cfg.App.Limit = *fc.Search.Limit
	}
	if fc.Catalog.Refresh != "" {
		d, err := time.ParseDuration(fc.Catalog.Refresh)
		if err != nil {
			return fmt.Errorf("config %s: catalog.refresh: %w", path, err)
		}
		cfg.App.Refresh = d
	}
	if fc.UI.Width != nil {
		cfg.App.Width = *fc.UI.Width
	}
	if fc.UI.Height != nil {
		cfg.App.Height = *fc.UI.Height
	}
	if fc.UI.Footer != nil {
		cfg.App.ShowFooter = *fc.UI.Footer
	}
	if fc.Log.File != "" {
		cfg.Logging.FilePath = fc.Log.File
	}
	if fc.Log.Trace != nil {
		cfg.Logging.Trace = *fc.Log.Trace
	}
	return nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v := envOrDefault(env, envBackendURLFallback, ""); v != "" {
		cfg.App.BackendURL = v
	}
	cfg.App.BackendURL = envOrDefault(env, envBackendURL, cfg.App.BackendURL)
	cfg.App.SkipBrowserWarning = envOrBool(env, envSkipBrowserWarning, cfg.App.SkipBrowserWarning)
	cfg.App.Limit = envOrInt(env, envLimit, cfg.App.Limit)
	cfg.App.Width = envOrInt(env, envWidth, cfg.App.Width)
	cfg.App.Height = envOrInt(env, envHeight, cfg.App.Height)
	cfg.App.ShowFooter = envOrBool(env, envShowFooter, cfg.App.ShowFooter)
	cfg.Logging.Trace = envOrBool(env, envTrace, cfg.Logging.Trace)
	cfg.Logging.FilePath = envOrDefault(env, envLogFile, cfg.Logging.FilePath)
	var err error
	if cfg.App.Timeout, err = envOrDuration(env, envTimeout, cfg.App.Timeout); err != nil {
		return err
	}
	if cfg.App.Refresh, err = envOrDuration(env, envRefresh, cfg.App.Refresh); err != nil {
		return err
	}
	return nil
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagBackendURL:
			cfg.App.BackendURL, err = fs.GetString(f.Name)
		case FlagSkipBrowserWarning:
			cfg.App.SkipBrowserWarning, err = fs.GetBool(f.Name)
		case FlagTimeout:
			cfg.App.Timeout, err = fs.GetDuration(f.Name)
		case FlagLimit:
			cfg.App.Limit, err = fs.GetInt(f.Name)
		case FlagRefresh:
			cfg.App.Refresh, err = fs.GetDuration(f.Name)
		case FlagWidth:
			cfg.App.Width, err = fs.GetInt(f.Name)
		case FlagHeight:
			cfg.App.Height, err = fs.GetInt(f.Name)
		case FlagFooter:
			cfg.App.ShowFooter, err = fs.GetBool(f.Name)
		case FlagTrace:
			cfg.Logging.Trace, err = fs.GetBool(f.Name)
		case FlagLogFile:
			cfg.Logging.FilePath, err = fs.GetString(f.Name)
		}
	})
	return err
}

func flagValues(fs *pflag.FlagSet) map[string]string {
	values := make(map[string]string)
	if fs == nil {
		return values
	}
	fs.VisitAll(func(f *pflag.Flag) {
		values[f.Name] = f.Value.String()
	})
	return values
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) (time.Duration, error) {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if _, err := backend.ParseBaseURL(cfg.App.BackendURL); err != nil {
		return fmt.Errorf("%w (set --%s or %s)", err, FlagBackendURL, envBackendURL)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout)
	}
	if cfg.App.Refresh < 0 {
		return fmt.Errorf("refresh must be >= 0 (got %s)", cfg.App.Refresh)
	}
	return nil
}
