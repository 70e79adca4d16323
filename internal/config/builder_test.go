package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/clock"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
)

func TestBuilder_NoOverrides(t *testing.T) {
	cfg, err := NewBuilder().Build()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, state.DefaultName, *cfg.Identities.All.Name)
	require.Equal(t, clock.DefaultStep, *cfg.Step)
}

func TestBuilder_GlobalOverrides(t *testing.T) {
	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	override := &Config{
		Epoch:      timePtr(epoch),
		TagMessage: stringPtr("Release"),
	}

	cfg, err := NewBuilder().Add(override).Build()
	require.NoError(t, err)
	require.Equal(t, epoch, *cfg.Epoch)
	require.Equal(t, "Release", *cfg.TagMessage)
	// Defaults still present for unoverridden fields
	require.Equal(t, clock.DefaultStep, *cfg.Step)
	require.Equal(t, state.DefaultEmail, *cfg.Identities.All.Email)
}

func TestBuilder_IdentityOverridesMergePerField(t *testing.T) {
	file := &Config{Identities: IdentitiesConfig{
		All:    IdentityConfig{Name: stringPtr("File")},
		Author: IdentityConfig{Email: stringPtr("author@example.org")},
	}}
	flags := &Config{Identities: IdentitiesConfig{
		Author: IdentityConfig{Name: stringPtr("Flag Author")},
	}}

	cfg, err := NewBuilder().Add(file).Add(flags).Build()
	require.NoError(t, err)

	require.Equal(t, "File", *cfg.Identities.All.Name)
	require.Equal(t, state.DefaultEmail, *cfg.Identities.All.Email)
	require.Equal(t, "Flag Author", *cfg.Identities.Author.Name)
	require.Equal(t, "author@example.org", *cfg.Identities.Author.Email)
}

func TestBuilder_LaterOverridesWin(t *testing.T) {
	cfg, err := NewBuilder().
		Add(&Config{Step: durationPtr(time.Second)}).
		Add(&Config{Step: durationPtr(time.Hour)}).
		Build()
	require.NoError(t, err)
	require.Equal(t, time.Hour, *cfg.Step)
}

func TestBuilder_NilOverrideIgnored(t *testing.T) {
	cfg, err := NewBuilder().Add(nil).Build()
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		override *Config
		message  string
	}{
		{
			name:     "zero step",
			override: &Config{Step: durationPtr(0)},
			message:  "step must be positive",
		},
		{
			name:     "negative step",
			override: &Config{Step: durationPtr(-time.Second)},
			message:  "step must be positive",
		},
		{
			name:     "empty all name",
			override: &Config{Identities: IdentitiesConfig{All: IdentityConfig{Name: stringPtr("")}}},
			message:  "identities.all.name must not be empty",
		},
		{
			name:     "empty tagger email",
			override: &Config{Identities: IdentitiesConfig{Tagger: IdentityConfig{Email: stringPtr("")}}},
			message:  "identities.tagger.email must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().Add(tt.override).Build()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuilder_ValidationReportsEveryProblem(t *testing.T) {
	_, err := NewBuilder().Add(&Config{
		Identities: IdentitiesConfig{
			Author:    IdentityConfig{Name: stringPtr("")},
			Committer: IdentityConfig{Email: stringPtr("")},
		},
		Step: durationPtr(0),
	}).Build()
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 3)
}

func timePtr(t time.Time) *time.Time { return &t }
