package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/testutil"
	"github.com/MyCarrier-DevOps/go-genrepo/pkg/sdk"
)

const commands = `[
  {"type": "commit", "id": "a", "tree": {"README.md": "hello"}, "branches": ["main"]},
  {"type": "commit", "id": "b", "parents": ["a"]},
  {"type": "tag", "name": "v1", "on": "b"}
]`

// resetFlags restores every flag to its default after a test.
func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		flagInput = ""
		flagBare = false
		flagConfig = ""
		flagEpoch = ""
		flagStep = 0
		flagOutput = ""
		flagShowID = ""
		flagShowConfig = false
		flagDryRun = false
		flagVerbosity = "quiet"
	})
	flagVerbosity = "quiet"
}

func runGenerate(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	err := generateRunE(c, args)
	return out.String(), err
}

func TestGenerate_FromStdin(t *testing.T) {
	resetFlags(t)
	dir := filepath.Join(t.TempDir(), "repo")

	out, err := runGenerate(t, commands, dir)
	require.NoError(t, err)
	require.Empty(t, out)

	repo := testutil.Open(t, dir)
	require.Equal(t, repo.Branch("main"), repo.Parents(repo.Tag("v1"))[0])
	require.Equal(t, "hello", repo.Files(repo.Branch("main"))["README.md"])
}

func TestGenerate_FromFileBare(t *testing.T) {
	resetFlags(t)
	input := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(input, []byte(commands), 0o644))
	dir := t.TempDir()

	flagInput = input
	flagBare = true
	_, err := runGenerate(t, "", dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "HEAD"))
}

func TestGenerate_RequiresPath(t *testing.T) {
	resetFlags(t)
	_, err := runGenerate(t, commands)
	require.Error(t, err)
	require.Contains(t, err.Error(), "REPO_PATH is required")
}

func TestGenerate_DryRunListsBindings(t *testing.T) {
	resetFlags(t)
	flagDryRun = true

	out, err := runGenerate(t, commands)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "a="))
	require.True(t, strings.HasPrefix(lines[1], "b="))
}

func TestGenerate_JSONOutputMatchesEpochRun(t *testing.T) {
	resetFlags(t)
	flagEpoch = "2024-03-01T09:00:00Z"
	flagOutput = "json"

	out, err := runGenerate(t, commands, t.TempDir())
	require.NoError(t, err)

	var bindings map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &bindings))

	epoch := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	expected, err := sdk.Generate(sdk.Options{InMemory: true, Input: []byte(commands), Epoch: &epoch})
	require.NoError(t, err)
	require.Equal(t, expected.Bindings, bindings)
}

func TestGenerate_ShowID(t *testing.T) {
	resetFlags(t)
	flagDryRun = true
	flagShowID = "b"

	out, err := runGenerate(t, commands)
	require.NoError(t, err)
	require.Len(t, strings.TrimSpace(out), 40)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		input string
		msg   string
	}{
		{"bad epoch", func() { flagEpoch = "yesterday" }, commands, "invalid --epoch"},
		{"bad verbosity", func() { flagVerbosity = "loud" }, commands, "unknown verbosity"},
		{"bad output", func() { flagOutput = "xml" }, commands, "unknown output format"},
		{"unknown id", func() { flagShowID = "zzz" }, commands, "unknown identifier"},
		{"missing input file", func() { flagInput = "/nonexistent/commands.json" }, "", "reading command file"},
		{"malformed", func() {}, `[{"type": "commit"}]`, "id: required field missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			flagDryRun = true
			tt.setup()

			_, err := runGenerate(t, tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestGenerate_ShowConfig(t *testing.T) {
	resetFlags(t)
	configPath := filepath.Join(t.TempDir(), "defaults.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("identities:\n  all:\n    name: Fixture Bot\n"), 0o644))

	flagConfig = configPath
	flagShowConfig = true
	flagDryRun = true

	out, err := runGenerate(t, "")
	require.NoError(t, err)

	var settings sdk.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &settings))
	require.Equal(t, "Fixture Bot", settings.Author.Name)
	require.Equal(t, "1m0s", settings.Step)
}

func TestBuildOptions_DiscoversConfig(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genrepo.yml"), []byte("tag-message: x\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	opts, err := buildOptions([]string{"repo"})
	require.NoError(t, err)
	require.Equal(t, "genrepo.yml", opts.ConfigPath)
	require.Equal(t, "repo", opts.Path)
}

func TestWriteOutput_Default(t *testing.T) {
	resetFlags(t)
	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, map[string]string{"a": "1"}))
	require.Empty(t, buf.String())

	flagOutput = "text"
	require.NoError(t, writeOutput(&buf, map[string]string{"a": "1"}))
	require.Equal(t, "a=1\n", buf.String())
}
