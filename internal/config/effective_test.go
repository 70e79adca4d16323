package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/clock"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/command"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
)

func TestNewEffectiveConfiguration_Defaults(t *testing.T) {
	ec := NewEffectiveConfiguration(CreateDefaultConfiguration())

	require.Equal(t, state.DefaultIdentities(), ec.Identities)
	require.Nil(t, ec.Epoch)
	require.Equal(t, clock.DefaultStep, ec.Step)
	require.Equal(t, command.DefaultTagMessage, ec.TagMessage)
}

func TestNewEffectiveConfiguration_Empty(t *testing.T) {
	ec := NewEffectiveConfiguration(&Config{})

	require.Equal(t, state.DefaultIdentities(), ec.Identities)
	require.Equal(t, clock.DefaultStep, ec.Step)
	require.Equal(t, command.DefaultTagMessage, ec.TagMessage)
}

func TestNewEffectiveConfiguration_RoleBeatsAll(t *testing.T) {
	cfg, err := NewBuilder().Add(&Config{Identities: IdentitiesConfig{
		All:       IdentityConfig{Name: stringPtr("Team"), Email: stringPtr("team@example.org")},
		Committer: IdentityConfig{Name: stringPtr("CI")},
		Tagger:    IdentityConfig{Email: stringPtr("release@example.org")},
	}}).Build()
	require.NoError(t, err)

	ec := NewEffectiveConfiguration(cfg)
	require.Equal(t, git.Identity{Name: "Team", Email: "team@example.org"}, ec.Identities.Author)
	require.Equal(t, git.Identity{Name: "CI", Email: "team@example.org"}, ec.Identities.Committer)
	require.Equal(t, git.Identity{Name: "Team", Email: "release@example.org"}, ec.Identities.Tagger)
}

func TestEffectiveConfiguration_Clock(t *testing.T) {
	epoch := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg, err := NewBuilder().Add(&Config{
		Epoch: timePtr(epoch),
		Step:  durationPtr(time.Hour),
	}).Build()
	require.NoError(t, err)

	c := NewEffectiveConfiguration(cfg).Clock()
	require.Equal(t, epoch, c.Now())
	require.Equal(t, epoch.Add(time.Hour), c.Now())
}

func TestEffectiveConfiguration_SystemClock(t *testing.T) {
	before := time.Now()
	now := NewEffectiveConfiguration(CreateDefaultConfiguration()).Clock().Now()
	require.False(t, now.Before(before))
}
