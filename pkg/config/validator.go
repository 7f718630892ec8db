package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks every field and returns all failures joined, or nil.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, format string, a ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, a...)})
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		add("server.readTimeout", "must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		add("server.writeTimeout", "must not be negative")
	}

	if c.Specs.Root == "" {
		add("specs.root", "is required")
	} else if info, err := os.Stat(c.Specs.Root); err != nil {
		add("specs.root", "cannot access directory: %v", err)
	} else if !info.IsDir() {
		add("specs.root", "is not a directory: %s", c.Specs.Root)
	}
	if len(c.Specs.Patterns) == 0 {
		add("specs.patterns", "at least one pattern is required")
	}
	for i, p := range c.Specs.Patterns {
		if !doublestar.ValidatePattern(p) {
			add(fmt.Sprintf("specs.patterns[%d]", i), "invalid pattern %q", p)
		}
	}
	for i, p := range c.Specs.Exclude {
		if !doublestar.ValidatePattern(p) {
			add(fmt.Sprintf("specs.exclude[%d]", i), "invalid pattern %q", p)
		}
	}

	if c.ExampleGeneration.Folder == "" || strings.ContainsAny(c.ExampleGeneration.Folder, `/\`) {
		add("exampleGeneration.folder", "must be a single directory name, got %q", c.ExampleGeneration.Folder)
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		add("logging.level", "must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		add("logging.format", "must be text or json, got %q", c.Logging.Format)
	}

	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := c.Profiles[name]
		if strings.TrimSpace(name) == "" {
			add("profiles", "profile name must not be empty")
		}
		if p.AlwaysError != 0 && (p.AlwaysError < 400 || p.AlwaysError > 599) {
			add("profiles."+name+".alwaysError", "must be an HTTP error status (400-599), got %d", p.AlwaysError)
		}
	}

	return errors.Join(errs...)
}
