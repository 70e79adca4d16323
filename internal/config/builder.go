package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	src.Identities.All.MergeTo(&dst.Identities.All)
	src.Identities.Author.MergeTo(&dst.Identities.Author)
	src.Identities.Committer.MergeTo(&dst.Identities.Committer)
	src.Identities.Tagger.MergeTo(&dst.Identities.Tagger)

	if src.Epoch != nil {
		dst.Epoch = src.Epoch
	}
	if src.Step != nil {
		dst.Step = src.Step
	}
	if src.TagMessage != nil {
		dst.TagMessage = src.TagMessage
	}
}

// validate checks the configuration for errors. Every problem is reported.
func validate(cfg *Config) error {
	var errs error

	roles := []struct {
		name string
		id   IdentityConfig
	}{
		{"all", cfg.Identities.All},
		{"author", cfg.Identities.Author},
		{"committer", cfg.Identities.Committer},
		{"tagger", cfg.Identities.Tagger},
	}
	for _, role := range roles {
		if role.id.Name != nil && *role.id.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("identities.%s.name must not be empty", role.name))
		}
		if role.id.Email != nil && *role.id.Email == "" {
			errs = multierr.Append(errs, fmt.Errorf("identities.%s.email must not be empty", role.name))
		}
	}

	if cfg.Step != nil && *cfg.Step <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("step must be positive, got %s", *cfg.Step))
	}

	return errs
}
