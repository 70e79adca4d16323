// Package state holds the session-scoped defaults that commit, merge and tag
// commands inherit: author, committer and tagger identities and the tree
// used when a command declares none.
package state

import (
	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

// Built-in identity used until a config command or defaults file says otherwise.
const (
	DefaultName  = "generate-git-repo"
	DefaultEmail = "generate-git-repo@example.org"
)

// DefaultIdentity returns the built-in identity.
func DefaultIdentity() git.Identity {
	return git.Identity{Name: DefaultName, Email: DefaultEmail}
}

// Identities groups the three signature roles.
type Identities struct {
	Author    git.Identity
	Committer git.Identity
	Tagger    git.Identity
}

// DefaultIdentities returns the built-in identity for every role.
func DefaultIdentities() Identities {
	id := DefaultIdentity()
	return Identities{Author: id, Committer: id, Tagger: id}
}

// Patch is a partial update. Nil fields are left unchanged. The All fields
// apply to every role before the per-role fields, so a per-role field wins
// when both are present.
type Patch struct {
	AllName        *string
	AllEmail       *string
	AuthorName     *string
	AuthorEmail    *string
	CommitterName  *string
	CommitterEmail *string
	TaggerName     *string
	TaggerEmail    *string

	// Tree replaces the default tree when non-nil. An empty map selects the
	// empty tree.
	Tree map[string]tree.Node
}

// TreeBuilder materializes and persists a declared tree.
type TreeBuilder func(declared map[string]tree.Node) (git.ObjectRef, error)

// State is the mutable configuration of one interpretation session.
type State struct {
	ids         Identities
	defaultTree git.ObjectRef
}

// New creates a State seeded with the given identities and default tree.
func New(ids Identities, defaultTree git.ObjectRef) *State {
	return &State{ids: ids, defaultTree: defaultTree}
}

// Apply merges p into the state. A tree patch is built before anything is
// changed, so a failing build leaves the state untouched.
func (s *State) Apply(p Patch, build TreeBuilder) error {
	if p.Tree != nil {
		ref, err := build(p.Tree)
		if err != nil {
			return err
		}
		s.defaultTree = ref
	}

	if p.AllName != nil {
		s.ids.Author.Name = *p.AllName
		s.ids.Committer.Name = *p.AllName
		s.ids.Tagger.Name = *p.AllName
	}
	if p.AllEmail != nil {
		s.ids.Author.Email = *p.AllEmail
		s.ids.Committer.Email = *p.AllEmail
		s.ids.Tagger.Email = *p.AllEmail
	}

	setIfPresent(&s.ids.Author.Name, p.AuthorName)
	setIfPresent(&s.ids.Author.Email, p.AuthorEmail)
	setIfPresent(&s.ids.Committer.Name, p.CommitterName)
	setIfPresent(&s.ids.Committer.Email, p.CommitterEmail)
	setIfPresent(&s.ids.Tagger.Name, p.TaggerName)
	setIfPresent(&s.ids.Tagger.Email, p.TaggerEmail)

	return nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// DefaultTree is the tree used by commits and merges that declare none.
func (s *State) DefaultTree() git.ObjectRef { return s.defaultTree }

// Author is the identity stamped as author on new commits.
func (s *State) Author() git.Identity { return s.ids.Author }

// Committer is the identity stamped as committer on new commits.
func (s *State) Committer() git.Identity { return s.ids.Committer }

// Tagger is the identity stamped on annotated tags.
func (s *State) Tagger() git.Identity { return s.ids.Tagger }
