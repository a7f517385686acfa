// Package config provides configuration loading and validation for the annotator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/error-annotator/internal/reference"
	"github.com/jonathan/error-annotator/internal/schemas"
	"gopkg.in/yaml.v3"
)

// Config is the annotator configuration. Values come from Default, then an
// optional YAML file, then ANNOTATOR_* environment variables.
type Config struct {
	Port           int               `yaml:"port" validate:"min=1,max=65535"`
	ScratchDir     string            `yaml:"scratch_dir" validate:"required"`
	ReferenceDir   string            `yaml:"reference_dir" validate:"required"`
	OutputPrefix   string            `yaml:"output_prefix" validate:"required"`
	LogLevel       string            `yaml:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat      string            `yaml:"log_format" validate:"oneof=console json"`
	MaxUploadBytes int64             `yaml:"max_upload_bytes" validate:"gt=0"`
	ReferenceDocs  map[string]string `yaml:"reference_docs" validate:"required,min=1,dive,keys,required,endkeys,required"`
	SecondaryDocs  SecondaryDocs     `yaml:"secondary_docs"`
	RateLimit      RateLimit         `yaml:"rate_limit"`
}

// SecondaryDocs names the documents detail paragraphs are copied from.
type SecondaryDocs struct {
	Windows16 string `yaml:"windows16" validate:"required"`
	Windows19 string `yaml:"windows19" validate:"required"`
	Default   string `yaml:"default" validate:"required"`
}

// RateLimit configures the per-client limit on upload endpoints.
type RateLimit struct {
	Enabled bool          `yaml:"enabled"`
	Limit   int           `yaml:"limit" validate:"gte=0"`
	Window  time.Duration `yaml:"window" validate:"required_if=Enabled true"`
	Burst   int           `yaml:"burst" validate:"gte=0"`
}

// Default returns the stock configuration: uploads/ for scratch space, docs/ for
// the three Windows reference documents.
func Default() *Config {
	secondary := reference.DefaultSecondaryDocs()
	return &Config{
		Port:           8080,
		ScratchDir:     "uploads",
		ReferenceDir:   "docs",
		OutputPrefix:   "Harding",
		LogLevel:       "info",
		LogFormat:      "console",
		MaxUploadBytes: 32 << 20,
		ReferenceDocs:  reference.DefaultPrimaryDocs(),
		SecondaryDocs: SecondaryDocs{
			Windows16: secondary.Windows16,
			Windows19: secondary.Windows19,
			Default:   secondary.Default,
		},
		RateLimit: RateLimit{
			Enabled: true,
			Limit:   30,
			Window:  time.Minute,
			Burst:   5,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := schemas.ValidateDocument(schemas.ConfigSchema, raw); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	// A file that names reference documents replaces the stock set instead of extending it.
	if _, ok := raw["reference_docs"]; ok {
		c.ReferenceDocs = nil
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	for key, dst := range map[string]*string{
		"ANNOTATOR_SCRATCH_DIR":   &c.ScratchDir,
		"ANNOTATOR_REFERENCE_DIR": &c.ReferenceDir,
		"ANNOTATOR_OUTPUT_PREFIX": &c.OutputPrefix,
		"ANNOTATOR_LOG_LEVEL":     &c.LogLevel,
		"ANNOTATOR_LOG_FORMAT":    &c.LogFormat,
	} {
		if value := os.Getenv(key); value != "" {
			*dst = value
		}
	}

	if value := os.Getenv("ANNOTATOR_PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid ANNOTATOR_PORT: %w", err)
		}
		c.Port = port
	}

	if value := os.Getenv("ANNOTATOR_MAX_UPLOAD_BYTES"); value != "" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ANNOTATOR_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}

	if value := os.Getenv("ANNOTATOR_RATE_LIMIT_ENABLED"); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ANNOTATOR_RATE_LIMIT_ENABLED: %w", err)
		}
		c.RateLimit.Enabled = enabled
	}

	return nil
}

// Validate checks field values with the struct tags above.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			ve := validationErrors[0]
			return fmt.Errorf("config error: %s failed %q validation", ve.Namespace(), ve.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Catalog builds the reference catalog described by c.
func (c *Config) Catalog() *reference.Catalog {
	return reference.NewCatalog(c.ReferenceDir, c.ReferenceDocs, reference.SecondaryDocs{
		Windows16: c.SecondaryDocs.Windows16,
		Windows19: c.SecondaryDocs.Windows19,
		Default:   c.SecondaryDocs.Default,
	})
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
