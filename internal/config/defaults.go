package config

import (
	"github.com/MyCarrier-DevOps/go-genrepo/internal/clock"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/command"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
)

// CreateDefaultConfiguration returns a Config with all default values
// populated. The built-in identity is set on All so that a role configured
// by a later layer still wins over it. Epoch stays unset: signatures use the
// wall clock unless a layer pins it.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Identities: IdentitiesConfig{
			All: IdentityConfig{
				Name:  stringPtr(state.DefaultName),
				Email: stringPtr(state.DefaultEmail),
			},
		},
		Step:       durationPtr(clock.DefaultStep),
		TagMessage: stringPtr(command.DefaultTagMessage),
	}
}
