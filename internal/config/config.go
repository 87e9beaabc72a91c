// Package config loads woql CLI settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/woql/internal/printer"
	"github.com/roach88/woql/internal/vocab"
)

// Config holds CLI settings. Flags override every field.
type Config struct {
	// Dialect is the default pretty-printer dialect (js, python or dsl)
	Dialect string `yaml:"dialect"`
	// Catalog is the path of the named-query SQLite database
	Catalog string `yaml:"catalog"`
	// Strict makes commands that load documents require schema validity
	Strict bool `yaml:"strict"`
	// Vocabulary adds short names to the predicate expansion table
	Vocabulary map[string]string `yaml:"vocabulary"`
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() *Config {
	return &Config{
		Dialect: "js",
		Catalog: "woql.db",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := printer.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("dialect: %w", err)
	}
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	for short, iri := range c.Vocabulary {
		if short == "" || iri == "" {
			return fmt.Errorf("vocabulary entries need a name and an IRI, got %q: %q", short, iri)
		}
	}
	return nil
}

// PrinterDialect returns the parsed dialect. Call after Validate.
func (c *Config) PrinterDialect() printer.Dialect {
	d, _ := printer.ParseDialect(c.Dialect)
	return d
}

// VocabularyTable returns the default expansion table extended with the
// configured entries.
func (c *Config) VocabularyTable() vocab.Table {
	return vocab.Default().Merge(c.Vocabulary)
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	file, err := readFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	config.Merge(file)
	return config, nil
}

// readFile decodes path into a zero Config, so only the keys present in the
// file are set and layering does not reapply defaults.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one. Non-zero values in other win;
// vocabulary entries are combined.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Dialect != "" {
		c.Dialect = other.Dialect
	}
	if other.Catalog != "" {
		c.Catalog = other.Catalog
	}
	if other.Strict {
		c.Strict = true
	}
	if len(other.Vocabulary) > 0 {
		merged := make(map[string]string, len(c.Vocabulary)+len(other.Vocabulary))
		for k, v := range c.Vocabulary {
			merged[k] = v
		}
		for k, v := range other.Vocabulary {
			merged[k] = v
		}
		c.Vocabulary = merged
	}
}
