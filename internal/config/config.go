package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonsynth/internal/naming"
)

// Config represents the on-disk configuration for jsonsynth
type Config struct {
	Target    string       `yaml:"target"`
	RootName  string       `yaml:"root_name"`
	Namespace string       `yaml:"namespace"`
	Naming    NamingConfig `yaml:"naming"`
	Types     TypesConfig  `yaml:"types"`
	Limits    LimitsConfig `yaml:"limits"`
	Dev       DevConfig    `yaml:"dev"`
}

// NamingConfig controls type and field naming
type NamingConfig struct {
	Casing      string `yaml:"casing"`
	Aliases     string `yaml:"aliases"`
	Singularize bool   `yaml:"singularize"`
}

// TypesConfig controls type inference
type TypesConfig struct {
	Nullable      string `yaml:"nullable"`
	DetectFormats bool   `yaml:"detect_formats"`
	Merge         string `yaml:"merge"`
}

// LimitsConfig bounds the work done for one document
type LimitsConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	d := DefaultOptions()
	return &Config{
		Target:   string(d.Target),
		RootName: d.RootName,
		Naming: NamingConfig{
			Casing:      string(d.Casing),
			Aliases:     string(d.Aliases),
			Singularize: d.Singularize,
		},
		Types: TypesConfig{
			Nullable:      string(d.Nullable),
			DetectFormats: d.DetectFormats,
			Merge:         string(d.Merge),
		},
		Limits: LimitsConfig{
			MaxDepth: d.MaxDepth,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults so missing keys keep them
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".jsonsynth.yml", ".jsonsynth.yaml", "jsonsynth.yml", "jsonsynth.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}

	return ""
}

// Options converts the file configuration into generation options. The
// result still needs Resolve.
func (c *Config) Options() Options {
	return Options{
		Target:        Target(c.Target),
		RootName:      c.RootName,
		Casing:        naming.Casing(c.Naming.Casing),
		Nullable:      NullablePolicy(c.Types.Nullable),
		DetectFormats: c.Types.DetectFormats,
		Aliases:       AliasStyle(c.Naming.Aliases),
		Namespace:     c.Namespace,
		Merge:         MergeMode(c.Types.Merge),
		Singularize:   c.Naming.Singularize,
		MaxDepth:      c.Limits.MaxDepth,
	}
}

// Overrides holds values given on the command line. Empty strings, zero
// numbers and nil switches leave the configured value alone.
type Overrides struct {
	Target        string
	RootName      string
	Namespace     string
	Casing        string
	Aliases       string
	Nullable      string
	Merge         string
	MaxDepth      int
	Formats       *bool
	Singularize   *bool
	Debug         bool
}

// MergeOverrides applies CLI overrides on top of a base config
func MergeOverrides(base *Config, o Overrides) *Config {
	merged := *base

	if o.Target != "" {
		merged.Target = o.Target
	}
	if o.RootName != "" {
		merged.RootName = o.RootName
	}
	if o.Namespace != "" {
		merged.Namespace = o.Namespace
	}
	if o.Casing != "" {
		merged.Naming.Casing = o.Casing
	}
	if o.Aliases != "" {
		merged.Naming.Aliases = o.Aliases
	}
	if o.Nullable != "" {
		merged.Types.Nullable = o.Nullable
	}
	if o.Merge != "" {
		merged.Types.Merge = o.Merge
	}
	if o.MaxDepth != 0 {
		merged.Limits.MaxDepth = o.MaxDepth
	}
	if o.Formats != nil {
		merged.Types.DetectFormats = *o.Formats
	}
	if o.Singularize != nil {
		merged.Naming.Singularize = *o.Singularize
	}
	if o.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	return MergeOverrides(cfg, o), nil
}
