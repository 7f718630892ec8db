package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names
const (
	EnvConfig            = "ARMMOCK_CONFIG"
	EnvHost              = "ARMMOCK_HOST"
	EnvPort              = "ARMMOCK_PORT"
	EnvReadTimeout       = "ARMMOCK_READ_TIMEOUT"
	EnvWriteTimeout      = "ARMMOCK_WRITE_TIMEOUT"
	EnvSpecRoot          = "ARMMOCK_SPEC_ROOT"
	EnvSpecPatterns      = "ARMMOCK_SPEC_PATTERNS"
	EnvCascade           = "ARMMOCK_CASCADE"
	EnvValidateRequest   = "ARMMOCK_VALIDATE_REQUEST"
	EnvExampleGeneration = "ARMMOCK_EXAMPLE_GENERATION"
	EnvExampleFolder     = "ARMMOCK_EXAMPLE_FOLDER"
	EnvLogLevel          = "ARMMOCK_LOG_LEVEL"
	EnvLogFormat         = "ARMMOCK_LOG_FORMAT"
	EnvLogFile           = "ARMMOCK_LOG_FILE"
)

// LoadEnv applies environment variables over cfg. It only sets values that
// are present in the environment, and skips numbers that do not parse.
func LoadEnv(cfg *Config) {
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
		cfg.SetSource("server.host", SourceEnv)
	}

	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
			cfg.SetSource("server.port", SourceEnv)
		}
	}

	if v := os.Getenv(EnvReadTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Server.ReadTimeout = timeout
			cfg.SetSource("server.readTimeout", SourceEnv)
		}
	}

	if v := os.Getenv(EnvWriteTimeout); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Server.WriteTimeout = timeout
			cfg.SetSource("server.writeTimeout", SourceEnv)
		}
	}

	if v := os.Getenv(EnvSpecRoot); v != "" {
		cfg.Specs.Root = v
		cfg.SetSource("specs.root", SourceEnv)
	}

	// Comma separated.
	if v := os.Getenv(EnvSpecPatterns); v != "" {
		cfg.Specs.Patterns = splitList(v)
		cfg.SetSource("specs.patterns", SourceEnv)
	}

	if v := os.Getenv(EnvCascade); v != "" {
		cfg.CascadeEnabled = parseBool(v)
		cfg.SetSource("cascadeEnabled", SourceEnv)
	}

	if v := os.Getenv(EnvValidateRequest); v != "" {
		cfg.ValidateRequest = parseBool(v)
		cfg.SetSource("validateRequest", SourceEnv)
	}

	if v := os.Getenv(EnvExampleGeneration); v != "" {
		cfg.ExampleGeneration.Enabled = parseBool(v)
		cfg.SetSource("exampleGeneration.enabled", SourceEnv)
	}

	if v := os.Getenv(EnvExampleFolder); v != "" {
		cfg.ExampleGeneration.Folder = v
		cfg.SetSource("exampleGeneration.folder", SourceEnv)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
		cfg.SetSource("logging.level", SourceEnv)
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
		cfg.SetSource("logging.format", SourceEnv)
	}

	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
		cfg.SetSource("logging.file", SourceEnv)
	}
}

// ConfigPathFromEnv returns the config file path from the environment.
// Returns empty string if not set.
func ConfigPathFromEnv() string {
	return os.Getenv(EnvConfig)
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes"
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
