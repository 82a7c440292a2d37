package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.True(t, cfg.App.SkipBrowserWarning)
	assert.Equal(t, 30*time.Second, cfg.App.Timeout)
	assert.Equal(t, 3, cfg.App.Limit)
	assert.Zero(t, cfg.App.Refresh)
	assert.Empty(t, cfg.App.BackendURL)
	assert.Empty(t, cfg.File)
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{
		"--backend-url", "https://abc.ngrok.app",
		"--limit", "7",
		"--timeout", "5s",
		"--refresh", "1m",
		"--skip-browser-warning=false",
		"--width", "80",
		"--height", "24",
		"--footer",
		"--trace",
		"--log-file", "trace.log",
	}
	cfg, err := LoadArgs(args, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://abc.ngrok.app", cfg.App.BackendURL)
	assert.Equal(t, 7, cfg.App.Limit)
	assert.Equal(t, 5*time.Second, cfg.App.Timeout)
	assert.Equal(t, time.Minute, cfg.App.Refresh)
	assert.False(t, cfg.App.SkipBrowserWarning)
	assert.Equal(t, 80, cfg.App.Width)
	assert.Equal(t, 24, cfg.App.Height)
	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "trace.log", cfg.Logging.FilePath)
	assert.Equal(t, "7", cfg.Flags["limit"])
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		"BACKEND_URL=http://fallback:8000",
		"GALLERY_LIMIT=9",
		"GALLERY_TIMEOUT=2s",
		"GALLERY_FOOTER=true",
		"GALLERY_TRACE=1",
		"GALLERY_LOG_FILE=/tmp/g.log",
		"GALLERY_WIDTH=not-a-number",
	}
	cfg, err := LoadArgs(nil, env)
	require.NoError(t, err)
	assert.Equal(t, "http://fallback:8000", cfg.App.BackendURL)
	assert.Equal(t, 9, cfg.App.Limit)
	assert.Equal(t, 2*time.Second, cfg.App.Timeout)
	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "/tmp/g.log", cfg.Logging.FilePath)
	assert.Zero(t, cfg.App.Width, "invalid numbers fall back")

	cfg, err = LoadArgs(nil, append(env, "GALLERY_BACKEND_URL=https://primary"))
	require.NoError(t, err)
	assert.Equal(t, "https://primary", cfg.App.BackendURL)
}

func TestLoadArgsInvalidDurationEnv(t *testing.T) {
	_, err := LoadArgs(nil, []string{"GALLERY_REFRESH=soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GALLERY_REFRESH")
}

func TestConfigFileLayering(t *testing.T) {
	path := writeConfig(t, `
[backend]
url = "http://file:8000"
skip_browser_warning = false
timeout = "10s"

[search]
limit = 5

[catalog]
refresh = "30s"

[ui]
footer = true
`)
	cfg, err := LoadArgs([]string{"--config", path}, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "http://file:8000", cfg.App.BackendURL)
	assert.False(t, cfg.App.SkipBrowserWarning)
	assert.Equal(t, 10*time.Second, cfg.App.Timeout)
	assert.Equal(t, 5, cfg.App.Limit)
	assert.Equal(t, 30*time.Second, cfg.App.Refresh)
	assert.True(t, cfg.App.ShowFooter)

	cfg, err = LoadArgs([]string{"--limit", "8"}, []string{"GALLERY_CONFIG=" + path, "GALLERY_LIMIT=6"})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.App.Limit, "flags override env and file")
	assert.Equal(t, "http://file:8000", cfg.App.BackendURL)

	cfg, err = LoadArgs(nil, []string{"GALLERY_CONFIG=" + path, "GALLERY_LIMIT=6"})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.App.Limit, "env overrides file")
}

func TestDefaultConfigLocation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gallery"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery", "config.toml"), []byte("[search]\nlimit = 4\n"), 0o644))
	cfg, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + dir})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.App.Limit)

	cfg, err = LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + t.TempDir()})
	require.NoError(t, err, "a missing default file is fine")
	assert.Equal(t, 3, cfg.App.Limit)
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}, nil)
	require.Error(t, err)
}

func TestMalformedConfigFails(t *testing.T) {
	path := writeConfig(t, "[backend\nurl = ")
	_, err := LoadArgs([]string{"--config", path}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLimitClampedToOne(t *testing.T) {
	cfg, err := LoadArgs([]string{"--limit", "0"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.App.Limit)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.Error(t, Validate(cfg), "backend url is required")

	cfg.App.BackendURL = "https://abc.ngrok.app"
	require.NoError(t, Validate(cfg))

	bad := cfg
	bad.App.Width = -1
	assert.Error(t, Validate(bad))

	bad = cfg
	bad.App.Timeout = 0
	assert.Error(t, Validate(bad))

	bad = cfg
	bad.App.Refresh = -time.Second
	assert.Error(t, Validate(bad))

	bad = cfg
	bad.App.BackendURL = "ftp://host"
	assert.Error(t, Validate(bad))
}

func TestUnknownFlagFails(t *testing.T) {
	_, err := LoadArgs([]string{"--socket", "x"}, nil)
	require.Error(t, err)
}
