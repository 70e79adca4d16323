package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromBytes_Full(t *testing.T) {
	data := []byte(`
identities:
  all:
    name: Fixture Bot
    email: bot@example.org
  author:
    name: Alice
  committer:
    email: ci@example.org
  tagger:
    name: Releaser
    email: release@example.org
epoch: 2023-12-31T23:59:00Z
step: 1h
tag-message: Cut release
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	require.Equal(t, "Fixture Bot", *cfg.Identities.All.Name)
	require.Equal(t, "Alice", *cfg.Identities.Author.Name)
	require.Nil(t, cfg.Identities.Author.Email)
	require.Equal(t, "ci@example.org", *cfg.Identities.Committer.Email)
	require.Equal(t, "release@example.org", *cfg.Identities.Tagger.Email)
	require.True(t, time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC).Equal(*cfg.Epoch))
	require.Equal(t, time.Hour, *cfg.Step)
	require.Equal(t, "Cut release", *cfg.TagMessage)
}

func TestLoadFromBytes_Minimal(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Nil(t, cfg.Epoch)
	require.True(t, cfg.Identities.All.IsZero())
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "identities: [unclosed"},
		{"unknown key", "tag-prefix: v"},
		{"unknown nested key", "identities:\n  reviewer:\n    name: x"},
		{"bad duration", "step: soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data))
			require.Error(t, err)
			require.Contains(t, err.Error(), "parsing config")
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genrepo.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag-message: From file\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "From file", *cfg.TagMessage)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config file")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.Empty(t, Discover(dir))

	plain := filepath.Join(dir, "genrepo.yml")
	require.NoError(t, os.WriteFile(plain, nil, 0o644))
	require.Equal(t, plain, Discover(dir))

	hidden := filepath.Join(dir, ".genrepo.yml")
	require.NoError(t, os.WriteFile(hidden, nil, 0o644))
	require.Equal(t, hidden, Discover(dir))
}

func TestDiscover_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".genrepo.yml"), 0o755))
	require.Empty(t, Discover(dir))
}
