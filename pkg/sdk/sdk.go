// Package sdk provides a public Go API for generating git repositories from
// a declarative list of commands, for use as test fixtures.
//
// Basic usage:
//
//	result, err := sdk.Generate(sdk.Options{
//	    Path:  "/tmp/fixture",
//	    Input: []byte(`[{"type": "commit", "id": "a", "branches": ["main"]}]`),
//	})
//	fmt.Println(result.Bindings["a"]) // commit SHA
//
// Commands are JSON or YAML. Identifiers that are referenced before they are
// defined are skipped with a warning on Logger rather than failing the run.
package sdk

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/command"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/config"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/interpreter"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/output"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

// Errors returned by Generate can be matched with errors.Is.
var (
	// ErrMalformed reports a command list that failed decoding or validation.
	ErrMalformed = command.ErrMalformed

	// ErrPathConflict reports a declared tree with two entries at one location.
	ErrPathConflict = tree.ErrPathConflict

	// ErrInvalidPath reports a declared tree path with an empty, "." or ".."
	// segment.
	ErrInvalidPath = tree.ErrInvalidPath

	// ErrObjectStore reports a failure writing objects or references.
	ErrObjectStore = interpreter.ErrObjectStore
)

// Identity is a signature name and email. Empty fields are left to the
// lower configuration layers.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Options configures a generation run.
type Options struct {
	// Path is the repository directory. It is created if missing, and an
	// existing repository there is reused. Required unless InMemory is set.
	Path string

	// Bare creates a bare repository.
	Bare bool

	// InMemory generates into a throwaway in-memory repository. Useful to
	// compute the resulting SHAs without touching disk.
	InMemory bool

	// Input is the command list, JSON or YAML.
	Input []byte

	// ConfigPath is the path to a defaults file. Empty means none.
	ConfigPath string

	// Identity overrides, applied on top of the defaults file. All applies to
	// every role; a role's own fields win over it.
	All       Identity
	Author    Identity
	Committer Identity
	Tagger    Identity

	// Epoch pins signature timestamps, advancing by Step per signature, so
	// that repeated runs produce identical SHAs. Nil uses the wall clock
	// unless the defaults file sets an epoch.
	Epoch *time.Time
	Step  time.Duration

	// TagMessage is the message of annotated tags that declare none.
	TagMessage string

	// Logger receives warnings about unresolved identifiers. Defaults to a
	// no-op logger.
	Logger *zap.Logger
}

// Result holds the outcome of a generation run.
type Result struct {
	// Bindings maps every defined identifier to its commit SHA.
	Bindings map[string]string

	// Path is the repository directory, empty for in-memory runs.
	Path string

	// Commands is the number of commands interpreted.
	Commands int
}

// Settings is the resolved configuration a run would use.
type Settings struct {
	Author     Identity   `json:"author"`
	Committer  Identity   `json:"committer"`
	Tagger     Identity   `json:"tagger"`
	Epoch      *time.Time `json:"epoch,omitempty"`
	Step       string     `json:"step"`
	TagMessage string     `json:"tag-message"`
}

// Generate decodes opts.Input and interprets it against the repository.
// Commands applied before a failure stay in the repository.
func Generate(opts Options) (*Result, error) {
	cmds, err := command.Parse(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("decoding commands: %w", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	ec := config.NewEffectiveConfiguration(cfg)

	store, err := openStore(opts)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in, err := interpreter.New(store, interpreter.Options{
		Defaults:   ec.Identities,
		Clock:      ec.Clock(),
		TagMessage: ec.TagMessage,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	if err := in.Interpret(cmds); err != nil {
		return nil, fmt.Errorf("generating repository: %w", err)
	}

	logger.Debug("repository generated",
		zap.String("path", store.Path()),
		zap.Int("commands", len(cmds)),
		zap.Int("ids", len(in.Bindings())))

	return &Result{
		Bindings: output.Shas(in.Bindings(), 0),
		Path:     store.Path(),
		Commands: len(cmds),
	}, nil
}

// GenerateFromReader is Generate with the command list read from r.
func GenerateFromReader(r io.Reader, opts Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	opts.Input = data
	return Generate(opts)
}

// Validate decodes and validates a command list without generating anything.
// It returns the number of commands.
func Validate(input []byte) (int, error) {
	cmds, err := command.Parse(input)
	if err != nil {
		return 0, err
	}
	return len(cmds), nil
}

// Configuration resolves the settings a run with opts would use.
func Configuration(opts Options) (*Settings, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	ec := config.NewEffectiveConfiguration(cfg)

	return &Settings{
		Author:     toIdentity(ec.Identities.Author),
		Committer:  toIdentity(ec.Identities.Committer),
		Tagger:     toIdentity(ec.Identities.Tagger),
		Epoch:      ec.Epoch,
		Step:       ec.Step.String(),
		TagMessage: ec.TagMessage,
	}, nil
}

// loadConfig layers the defaults file and then the option overrides.
func loadConfig(opts Options) (*config.Config, error) {
	builder := config.NewBuilder()

	if opts.ConfigPath != "" {
		fileCfg, err := config.LoadFromFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		builder.Add(fileCfg)
	}

	return builder.Add(overrides(opts)).Build()
}

func overrides(opts Options) *config.Config {
	cfg := &config.Config{
		Identities: config.IdentitiesConfig{
			All:       identityConfig(opts.All),
			Author:    identityConfig(opts.Author),
			Committer: identityConfig(opts.Committer),
			Tagger:    identityConfig(opts.Tagger),
		},
		Epoch: opts.Epoch,
	}
	if opts.Step != 0 {
		step := opts.Step
		cfg.Step = &step
	}
	if opts.TagMessage != "" {
		msg := opts.TagMessage
		cfg.TagMessage = &msg
	}
	return cfg
}

func identityConfig(id Identity) config.IdentityConfig {
	var ic config.IdentityConfig
	if id.Name != "" {
		name := id.Name
		ic.Name = &name
	}
	if id.Email != "" {
		email := id.Email
		ic.Email = &email
	}
	return ic
}

func toIdentity(id git.Identity) Identity {
	return Identity{Name: id.Name, Email: id.Email}
}

func openStore(opts Options) (*git.GoGitStore, error) {
	if opts.InMemory {
		return git.NewMemoryStore()
	}
	if opts.Path == "" {
		return nil, errors.New("path is required")
	}
	return git.Init(opts.Path, opts.Bare)
}
