// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the fixed User-Agent header sent with every registry request
	// (e.g. "doi-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
}

// RegistryConfig holds settings for the CrossRef retrieval client.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the registry API root (default https://api.crossref.org).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// MaxRetries bounds retries after the first attempt (default 2, three attempts total).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// Mailto is sent as the mailto query parameter for the polite pool.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto" validate:"omitempty,email"`

	// PlusToken is an optional Metadata Plus API token.
	PlusToken string `json:"-" yaml:"-" mapstructure:"plus_token"`
}

// ResolveConfig holds settings for normalization and batch resolution.
type ResolveConfig struct {
	// RelationConcurrency bounds parallel lookups of related records (default 4).
	RelationConcurrency int `json:"relation_concurrency" yaml:"relation_concurrency" mapstructure:"relation_concurrency" validate:"gte=1,lte=32"`

	// Delay is the pause between consecutive identifiers in a batch (default 0).
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay" validate:"gte=0"`
}

// OutputFormat selects how resolved records are rendered.
type OutputFormat string

const (
	OutputYAML OutputFormat = "yaml"
	OutputJSON OutputFormat = "json"
	OutputCSL  OutputFormat = "csl"
)

// OutputConfig holds settings for rendering records.
type OutputConfig struct {
	// Format selects the output format: yaml, json, or csl.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=yaml json csl"`
}

// Config groups all doi-fetch settings.
type Config struct {
	Registry RegistryConfig `json:"registry" yaml:"registry" mapstructure:"registry"`
	Resolve  ResolveConfig  `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
	Output   OutputConfig   `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the configuration used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		Registry: RegistryConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "doi-fetch/0.1",
			},
			BaseURL:    "https://api.crossref.org",
			MaxRetries: 2,
		},
		Resolve: ResolveConfig{
			RelationConcurrency: 4,
		},
		Output: OutputConfig{
			Format: OutputYAML,
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first failing field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
