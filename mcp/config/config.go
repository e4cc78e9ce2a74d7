package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

// Seed kinds.
const (
	KindMap  = "map"
	KindList = "list"
)

// Group holds items inline or the URL of a YAML document listing them.
type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"url"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty" short:"i" long:"items" description:"items"`
}

// Seed describes a named host container created at start-up. Its content
// comes from Data or from the YAML/JSON document at URL.
type Seed struct {
	Name string      `yaml:"name" json:"name"`
	Kind string      `yaml:"kind,omitempty" json:"kind,omitempty"`
	URL  string      `yaml:"url,omitempty" json:"url,omitempty"`
	Data interface{} `yaml:"data,omitempty" json:"data,omitempty"`
}

// Limits bounds the resources remote clients may hold.
type Limits struct {
	MaxHandles int `yaml:"maxHandles,omitempty" json:"maxHandles,omitempty"`
}

type Config struct {
	Server   *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	Seeds    *Group[*Seed]      `yaml:"seeds,omitempty" json:"seeds,omitempty"`
	Limits   Limits             `yaml:"limits,omitempty" json:"limits,omitempty"`
	LogLevel string             `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks limits, the log level and inline seeds. Seeds listed
// behind a group URL are validated once fetched.
func (c *Config) Validate() error {
	if c.Limits.MaxHandles < 0 {
		return fmt.Errorf("limits.maxHandles must not be negative: %d", c.Limits.MaxHandles)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Seeds == nil {
		return nil
	}
	return ValidateSeeds(c.Seeds.Items)
}

// Level returns the configured slog level, info by default.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid logLevel %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// ValidateSeeds checks that seeds are named, unique and of a known kind.
func ValidateSeeds(seeds []*Seed) error {
	names := make(map[string]bool, len(seeds))
	for i, seed := range seeds {
		if seed == nil || strings.TrimSpace(seed.Name) == "" {
			return fmt.Errorf("seed[%d]: name is required", i)
		}
		if names[seed.Name] {
			return fmt.Errorf("seed %q: duplicate name", seed.Name)
		}
		names[seed.Name] = true
		switch seed.Kind {
		case "", KindMap, KindList:
		default:
			return fmt.Errorf("seed %q: unsupported kind %q", seed.Name, seed.Kind)
		}
		if seed.URL != "" && seed.Data != nil {
			return fmt.Errorf("seed %q: url and data are mutually exclusive", seed.Name)
		}
	}
	return nil
}

// IsList reports whether the seed describes a sequence.
func (s *Seed) IsList() bool { return s.Kind == KindList }
