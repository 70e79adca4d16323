package config

import (
	"time"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/clock"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/command"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
)

// EffectiveConfiguration is a fully resolved configuration with all fields
// guaranteed to have values.
type EffectiveConfiguration struct {
	Identities state.Identities

	// Epoch is nil when signatures should use the wall clock.
	Epoch      *time.Time
	Step       time.Duration
	TagMessage string
}

// NewEffectiveConfiguration resolves all pointer fields of cfg to concrete
// values. Each role starts from the built-in identity, then takes All, then
// its own fields.
func NewEffectiveConfiguration(cfg *Config) EffectiveConfiguration {
	return EffectiveConfiguration{
		Identities: state.Identities{
			Author:    resolveIdentity(cfg.Identities.All, cfg.Identities.Author),
			Committer: resolveIdentity(cfg.Identities.All, cfg.Identities.Committer),
			Tagger:    resolveIdentity(cfg.Identities.All, cfg.Identities.Tagger),
		},
		Epoch:      cfg.Epoch,
		Step:       derefDuration(cfg.Step, clock.DefaultStep),
		TagMessage: derefString(cfg.TagMessage, command.DefaultTagMessage),
	}
}

// Clock returns a fixed clock when an epoch is configured, the system clock
// otherwise.
func (ec EffectiveConfiguration) Clock() clock.Clock {
	if ec.Epoch == nil {
		return clock.System()
	}
	return clock.Fixed(*ec.Epoch, ec.Step)
}

func resolveIdentity(all, role IdentityConfig) git.Identity {
	merged := IdentityConfig{}
	all.MergeTo(&merged)
	role.MergeTo(&merged)
	return git.Identity{
		Name:  derefString(merged.Name, state.DefaultName),
		Email: derefString(merged.Email, state.DefaultEmail),
	}
}

func derefString(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}

func derefDuration(p *time.Duration, fallback time.Duration) time.Duration {
	if p != nil {
		return *p
	}
	return fallback
}
