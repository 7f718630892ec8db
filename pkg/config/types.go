package config

import (
	"fmt"
	"io"
	"time"

	"github.com/getmockd/armmock/pkg/coordinator"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/responder"
	"github.com/getmockd/armmock/pkg/server"
	"github.com/getmockd/armmock/pkg/specindex"
)

// Value sources, recorded per key in Config.Sources.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Default values.
const (
	DefaultPort         = 8443
	DefaultReadTimeout  = 30
	DefaultWriteTimeout = 30
	DefaultSpecRoot     = "specification"
)

// Config is the complete server configuration.
type Config struct {
	Server            ServerConfig                 `yaml:"server" json:"server"`
	Specs             SpecsConfig                  `yaml:"specs" json:"specs"`
	CascadeEnabled    bool                         `yaml:"cascadeEnabled" json:"cascadeEnabled"`
	ValidateRequest   bool                         `yaml:"validateRequest" json:"validateRequest"`
	ExampleGeneration ExampleGenerationConfig      `yaml:"exampleGeneration" json:"exampleGeneration"`
	Logging           LoggingConfig                `yaml:"logging" json:"logging"`
	Profiles          map[string]responder.Profile `yaml:"profiles" json:"profiles"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`
}

// ServerConfig configures the HTTP listener. Timeouts are in seconds.
type ServerConfig struct {
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	ReadTimeout  int    `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout" json:"writeTimeout"`
}

// SpecsConfig selects the spec documents to index.
type SpecsConfig struct {
	Root     string   `yaml:"root" json:"root"`
	Patterns []string `yaml:"patterns" json:"patterns"`
	Exclude  []string `yaml:"exclude" json:"exclude"`
}

// ExampleGenerationConfig controls persisting synthesized exchanges.
type ExampleGenerationConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Folder  string `yaml:"folder" json:"folder"`
}

// LoggingConfig selects the log level and format.
// File, when set, also receives every record as JSON.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Specs: SpecsConfig{
			Root:     DefaultSpecRoot,
			Patterns: append([]string(nil), specindex.DefaultPatterns...),
			Exclude:  append([]string(nil), specindex.DefaultExclude...),
		},
		CascadeEnabled: true,
		ExampleGeneration: ExampleGenerationConfig{
			Folder: responder.DefaultExampleFolder,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Profiles: map[string]responder.Profile{},
		Sources:  map[string]string{},
	}
}

// SetSource records where key got its value.
func (c *Config) SetSource(key, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = source
}

// Source returns where key got its value.
func (c *Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IndexConfig returns the spec index configuration.
func (c *Config) IndexConfig() specindex.Config {
	return specindex.Config{Root: c.Specs.Root, Patterns: c.Specs.Patterns, Exclude: c.Specs.Exclude}
}

// ResponderConfig returns the responder configuration.
func (c *Config) ResponderConfig() responder.Config {
	return responder.Config{
		CascadeEnabled:    c.CascadeEnabled,
		ExampleGeneration: c.ExampleGeneration.Enabled,
		ExampleFolder:     c.ExampleGeneration.Folder,
	}
}

// CoordinatorConfig returns the coordinator configuration.
func (c *Config) CoordinatorConfig() coordinator.Config {
	return coordinator.Config{ValidateRequest: c.ValidateRequest, Profiles: c.Profiles}
}

// ServerConfig returns the HTTP listener configuration.
func (c *Config) ServerConfig() server.Config {
	return server.Config{
		Addr:         c.Addr(),
		ReadTimeout:  time.Duration(c.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(c.Server.WriteTimeout) * time.Second,
	}
}

// LoggingConfig returns the logger configuration writing to out.
func (c *Config) LoggingConfig(out io.Writer) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Logging.Level)
	cfg.Format = logging.ParseFormat(c.Logging.Format)
	cfg.Output = out
	return cfg
}
