// Package interpreter applies declarative commands, in order, against an
// object store to build a commit graph.
//
// One Interpreter is one session: it owns the identifier registry and the
// configuration state, and is not safe for concurrent use.
package interpreter

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/ancestry"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/clock"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/command"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/registry"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

// ErrObjectStore matches every failure reported by the object store.
var ErrObjectStore = errors.New("object store failure")

// StoreError wraps an object store failure with the operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrObjectStore, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrObjectStore.
func (e *StoreError) Is(target error) bool {
	return target == ErrObjectStore
}

// Options configures a session.
type Options struct {
	// Defaults seeds the configuration state. Empty names or emails fall
	// back to the built-in identity.
	Defaults state.Identities

	// Clock stamps signatures. Defaults to the system clock.
	Clock clock.Clock

	// TagMessage is the message of annotated tags that declare none.
	TagMessage string

	// Logger receives warnings about unresolved identifiers.
	Logger *zap.Logger
}

// Interpreter is one command interpretation session.
type Interpreter struct {
	store      git.ObjectStore
	registry   *registry.Registry
	state      *state.State
	clock      clock.Clock
	tagMessage string
	logger     *zap.Logger

	// step is the index of the command being applied.
	step int
}

// New starts a session. The empty tree is written up front and becomes the
// default tree until a config command replaces it.
func New(store git.ObjectStore, opts Options) (*Interpreter, error) {
	in := &Interpreter{
		store:      store,
		registry:   registry.New(),
		clock:      opts.Clock,
		tagMessage: opts.TagMessage,
		logger:     opts.Logger,
	}
	if in.clock == nil {
		in.clock = clock.System()
	}
	if in.tagMessage == "" {
		in.tagMessage = command.DefaultTagMessage
	}
	if in.logger == nil {
		in.logger = zap.NewNop()
	}

	emptyTree, err := in.buildTree(map[string]tree.Node{})
	if err != nil {
		return nil, err
	}
	in.state = state.New(withDefaults(opts.Defaults), emptyTree)

	return in, nil
}

// Interpret applies cmds in order and stops at the first failure. Commands
// applied before the failure are not undone.
func (in *Interpreter) Interpret(cmds []command.Command) error {
	for _, cmd := range cmds {
		if err := in.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Apply interprets a single command.
func (in *Interpreter) Apply(cmd command.Command) error {
	defer func() { in.step++ }()

	var err error
	switch c := cmd.(type) {
	case command.Commit:
		err = in.commit(c)
	case command.Merge:
		err = in.merge(c)
	case command.Branch:
		err = in.branch(c)
	case command.Tag:
		err = in.tag(c)
	case command.Config:
		err = in.state.Apply(c.Patch(), in.buildTree)
	default:
		err = fmt.Errorf("unsupported command %T", cmd)
	}
	if err != nil {
		return fmt.Errorf("command #%d (%s): %w", in.step, cmd.Kind(), err)
	}
	return nil
}

// Bindings returns a snapshot of identifier → commit bindings.
func (in *Interpreter) Bindings() map[string]git.ObjectRef {
	return in.registry.Bindings()
}

// Resolve returns the ref bound to id.
func (in *Interpreter) Resolve(id string) (git.ObjectRef, bool) {
	return in.registry.Resolve(id)
}

// State exposes the session's configuration state for inspection.
func (in *Interpreter) State() *state.State {
	return in.state
}

func (in *Interpreter) commit(c command.Commit) error {
	treeRef, err := in.treeFor(c.Tree)
	if err != nil {
		return err
	}
	parents := in.resolveAll("parents", c.Parents)

	ref, err := in.writeCommit(c.MessageOr(c.ID), treeRef, parents)
	if err != nil {
		return err
	}
	in.registry.Bind(c.ID, ref)
	in.logger.Debug("commit created",
		zap.String("id", c.ID),
		zap.String("sha", ref.Sha),
		zap.Int("parents", len(parents)))

	return in.label(ref, c.Branches, c.Tags)
}

func (in *Interpreter) merge(m command.Merge) error {
	heads := dedupe(in.resolveAll("commits", m.Commits))

	if !m.NoFF {
		target, ok, err := in.fastForwardTarget(heads)
		if err != nil {
			return err
		}
		if ok {
			in.registry.Bind(m.ID, target)
			in.logger.Debug("merge fast-forwarded",
				zap.String("id", m.ID),
				zap.String("sha", target.Sha))
			return in.label(target, m.Branches, m.Tags)
		}
	}

	treeRef, err := in.treeFor(m.Tree)
	if err != nil {
		return err
	}
	ref, err := in.writeCommit(m.MessageOr(m.ID), treeRef, heads)
	if err != nil {
		return err
	}
	in.registry.Bind(m.ID, ref)
	in.logger.Debug("merge commit created",
		zap.String("id", m.ID),
		zap.String("sha", ref.Sha),
		zap.Int("parents", len(heads)))

	return in.label(ref, m.Branches, m.Tags)
}

func (in *Interpreter) branch(b command.Branch) error {
	target, ok := in.resolve("on", b.On)
	if !ok {
		return nil
	}
	if err := in.store.CreateBranch(b.Name, target, true); err != nil {
		return &StoreError{Op: "create branch " + b.Name, Err: err}
	}
	return nil
}

func (in *Interpreter) tag(t command.Tag) error {
	target, ok := in.resolve("on", t.On)
	if !ok {
		return nil
	}

	if t.Lightweight {
		if err := in.store.CreateLightweightTag(t.Name, target, true); err != nil {
			return &StoreError{Op: "create tag " + t.Name, Err: err}
		}
		return nil
	}

	tagger := git.Signature{Identity: in.state.Tagger(), When: in.clock.Now()}
	if _, err := in.store.CreateAnnotatedTag(t.Name, target, tagger, t.MessageOr(in.tagMessage), true); err != nil {
		return &StoreError{Op: "create annotated tag " + t.Name, Err: err}
	}
	return nil
}

// fastForwardTarget returns the most-descendant of heads when they form a
// single line of history.
func (in *Interpreter) fastForwardTarget(heads []git.ObjectRef) (git.ObjectRef, bool, error) {
	var lookupErr error
	isAncestor := func(a, b git.ObjectRef) bool {
		if lookupErr != nil {
			return false
		}
		ok, err := in.store.IsAncestor(a, b)
		if err != nil {
			lookupErr = err
			return false
		}
		return ok
	}

	target, ok := ancestry.CanFastForward(heads, isAncestor)
	if lookupErr != nil {
		return git.ObjectRef{}, false, &StoreError{Op: "check ancestry", Err: lookupErr}
	}
	return target, ok, nil
}

func (in *Interpreter) writeCommit(message string, treeRef git.ObjectRef, parents []git.ObjectRef) (git.ObjectRef, error) {
	now := in.clock.Now()
	author := git.Signature{Identity: in.state.Author(), When: now}
	committer := git.Signature{Identity: in.state.Committer(), When: now}

	ref, err := in.store.WriteCommit(author, committer, message, treeRef, parents)
	if err != nil {
		return git.ObjectRef{}, &StoreError{Op: "write commit", Err: err}
	}
	return ref, nil
}

// label points every named branch and lightweight tag at ref.
func (in *Interpreter) label(ref git.ObjectRef, branches, tags []string) error {
	for _, name := range branches {
		if err := in.store.CreateBranch(name, ref, true); err != nil {
			return &StoreError{Op: "create branch " + name, Err: err}
		}
	}
	for _, name := range tags {
		if err := in.store.CreateLightweightTag(name, ref, true); err != nil {
			return &StoreError{Op: "create tag " + name, Err: err}
		}
	}
	return nil
}

// treeFor builds the declared tree, or returns the default tree when the
// command declares none.
func (in *Interpreter) treeFor(declared map[string]tree.Node) (git.ObjectRef, error) {
	if declared == nil {
		return in.state.DefaultTree(), nil
	}
	return in.buildTree(declared)
}

func (in *Interpreter) buildTree(declared map[string]tree.Node) (git.ObjectRef, error) {
	staged, err := tree.MaterializeDeclared(declared)
	if err != nil {
		return git.ObjectRef{}, err
	}
	ref, err := tree.Write(in.store, staged)
	if err != nil {
		return git.ObjectRef{}, &StoreError{Op: "write tree", Err: err}
	}
	return ref, nil
}

// resolve looks up id, warning when it has not been defined yet.
func (in *Interpreter) resolve(field, id string) (git.ObjectRef, bool) {
	ref, ok := in.registry.Resolve(id)
	if !ok {
		in.logger.Warn("identifier not defined, skipping",
			zap.String("id", id),
			zap.String("field", field),
			zap.Int("command", in.step))
	}
	return ref, ok
}

// resolveAll resolves ids in order, dropping the ones that are not defined.
func (in *Interpreter) resolveAll(field string, ids []string) []git.ObjectRef {
	refs := make([]git.ObjectRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := in.resolve(field, id); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// dedupe drops repeated refs, keeping the first occurrence.
func dedupe(refs []git.ObjectRef) []git.ObjectRef {
	seen := make(map[git.ObjectRef]struct{}, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func withDefaults(ids state.Identities) state.Identities {
	def := state.DefaultIdentity()
	fill := func(id *git.Identity) {
		if id.Name == "" {
			id.Name = def.Name
		}
		if id.Email == "" {
			id.Email = def.Email
		}
	}
	fill(&ids.Author)
	fill(&ids.Committer)
	fill(&ids.Tagger)
	return ids
}
