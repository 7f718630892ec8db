package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/responder"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := Default()
	cfg.Specs.Root = t.TempDir()
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.True(t, cfg.CascadeEnabled)
	assert.Equal(t, responder.DefaultExampleFolder, cfg.ExampleGeneration.Folder)
	assert.Equal(t, ":8443", cfg.Addr())
	assert.Equal(t, SourceDefault, cfg.Source("server.port"))
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "armmock.yaml", `
server:
  port: 9000
  readTimeout: 5
specs:
  root: /specs
cascadeEnabled: false
profiles:
  default:
    stateful: true
  broken:
    alwaysError: 503
`)

	cfg := Default()
	require.NoError(t, LoadFile(path, cfg))

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout, "absent keys keep defaults")
	assert.Equal(t, "/specs", cfg.Specs.Root)
	assert.NotEmpty(t, cfg.Specs.Patterns)
	assert.False(t, cfg.CascadeEnabled)
	assert.Equal(t, map[string]responder.Profile{
		"default": {Stateful: true},
		"broken":  {AlwaysError: 503},
	}, cfg.Profiles)
	assert.Equal(t, SourceFile, cfg.Source("server"))
	assert.Equal(t, SourceDefault, cfg.Source("logging"))
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "armmock.json", `{"validateRequest": true, "logging": {"level": "debug", "format": "json"}}`)

	cfg := Default()
	require.NoError(t, LoadFile(path, cfg))
	assert.True(t, cfg.ValidateRequest)
	assert.Equal(t, "debug", cfg.Logging.Level)

	lc := cfg.LoggingConfig(os.Stderr)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want error
	}{
		{name: "missing", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }, want: ErrFileNotFound},
		{name: "empty", path: func(t *testing.T) string { return writeFile(t, "empty.yaml", "  \n") }, want: ErrEmptyFile},
		{name: "bad yaml", path: func(t *testing.T) string { return writeFile(t, "bad.yaml", "server: [") }, want: ErrInvalidYAML},
		{name: "bad json", path: func(t *testing.T) string { return writeFile(t, "bad.json", `{"server":`) }, want: ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LoadFile(tt.path(t), Default())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("directory", func(t *testing.T) {
		assert.Error(t, LoadFile(t.TempDir(), Default()))
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvPort, "9443")
	t.Setenv(EnvReadTimeout, "not-a-number")
	t.Setenv(EnvSpecRoot, "/env/specs")
	t.Setenv(EnvSpecPatterns, "a/**/*.json, b/*.json,")
	t.Setenv(EnvCascade, "0")
	t.Setenv(EnvValidateRequest, "yes")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "/var/log/armmock.json")

	path := writeFile(t, "armmock.yaml", "server:\n  port: 9000\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9443, cfg.Server.Port, "env overrides file")
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, "/env/specs", cfg.Specs.Root)
	assert.Equal(t, []string{"a/**/*.json", "b/*.json"}, cfg.Specs.Patterns)
	assert.False(t, cfg.CascadeEnabled)
	assert.True(t, cfg.ValidateRequest)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/var/log/armmock.json", cfg.Logging.File)
	assert.Equal(t, SourceEnv, cfg.Source("server.port"))
	assert.Equal(t, SourceDefault, cfg.Source("server.readTimeout"))
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig(t).Validate())
	})

	tests := []struct {
		name   string
		mutate func(c *Config)
		fields []string
	}{
		{name: "port", mutate: func(c *Config) { c.Server.Port = 70000 }, fields: []string{"server.port"}},
		{name: "timeouts", mutate: func(c *Config) { c.Server.ReadTimeout, c.Server.WriteTimeout = -1, -1 }, fields: []string{"server.readTimeout", "server.writeTimeout"}},
		{name: "missing root", mutate: func(c *Config) { c.Specs.Root = "" }, fields: []string{"specs.root"}},
		{name: "nonexistent root", mutate: func(c *Config) { c.Specs.Root = filepath.Join(c.Specs.Root, "none") }, fields: []string{"specs.root"}},
		{name: "no patterns", mutate: func(c *Config) { c.Specs.Patterns = nil }, fields: []string{"specs.patterns"}},
		{name: "bad pattern", mutate: func(c *Config) { c.Specs.Exclude = []string{"[a"} }, fields: []string{"specs.exclude[0]"}},
		{name: "folder", mutate: func(c *Config) { c.ExampleGeneration.Folder = "a/b" }, fields: []string{"exampleGeneration.folder"}},
		{name: "logging", mutate: func(c *Config) { c.Logging.Level, c.Logging.Format = "loud", "xml" }, fields: []string{"logging.level", "logging.format"}},
		{name: "profile status", mutate: func(c *Config) { c.Profiles["bad"] = responder.Profile{AlwaysError: 200} }, fields: []string{"profiles.bad.alwaysError"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var fields []string
			for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
				var ve *ValidationError
				require.True(t, errors.As(e, &ve))
				fields = append(fields, ve.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.ExampleGeneration.Enabled = true
	cfg.ValidateRequest = true
	cfg.Profiles["default"] = responder.Profile{Stateful: true}

	assert.Equal(t, "127.0.0.1:8443", cfg.ServerConfig().Addr)
	assert.Equal(t, 30*time.Second, cfg.ServerConfig().ReadTimeout)
	assert.Equal(t, cfg.Specs.Root, cfg.IndexConfig().Root)
	assert.Equal(t, cfg.Specs.Patterns, cfg.IndexConfig().Patterns)

	rc := cfg.ResponderConfig()
	assert.True(t, rc.CascadeEnabled)
	assert.True(t, rc.ExampleGeneration)
	assert.Equal(t, responder.DefaultExampleFolder, rc.ExampleFolder)

	cc := cfg.CoordinatorConfig()
	assert.True(t, cc.ValidateRequest)
	assert.Equal(t, responder.Profile{Stateful: true}, cc.Profiles["default"])
}
