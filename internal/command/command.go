// Package command defines the declarative commands that describe a commit
// graph, and decodes them from JSON or YAML.
package command

import (
	"github.com/MyCarrier-DevOps/go-genrepo/internal/state"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

// Kind names a command type as it appears in the "type" field.
type Kind string

const (
	KindCommit Kind = "commit"
	KindMerge  Kind = "merge"
	KindBranch Kind = "branch"
	KindTag    Kind = "tag"
	KindConfig Kind = "config"
)

// DefaultTagMessage is the message of an annotated tag that declares none.
const DefaultTagMessage = "Tag message"

// Command is one of Commit, Merge, Branch, Tag or Config.
type Command interface {
	Kind() Kind
}

// Commit creates a commit and binds it to ID.
type Commit struct {
	ID      string               `yaml:"id"`
	Message *string              `yaml:"message"`
	Parents []string             `yaml:"parents"`
	Tree    map[string]tree.Node `yaml:"tree"`

	// Branches and Tags are created (or moved) to point at the new commit.
	Branches []string `yaml:"branches"`
	Tags     []string `yaml:"tags"`
}

// Merge joins Commits, either by fast-forwarding ID to the most recent of them
// or by writing a merge commit.
type Merge struct {
	ID       string               `yaml:"id"`
	Commits  []string             `yaml:"commits"`
	Message  *string              `yaml:"message"`
	Tree     map[string]tree.Node `yaml:"tree"`
	Branches []string             `yaml:"branches"`
	Tags     []string             `yaml:"tags"`
	NoFF     bool                 `yaml:"no_ff"`
}

// Branch force-creates a branch on an existing commit.
type Branch struct {
	Name string `yaml:"name"`
	On   string `yaml:"on"`
}

// Tag force-creates a lightweight or annotated tag on an existing commit.
type Tag struct {
	Name        string  `yaml:"name"`
	On          string  `yaml:"on"`
	Lightweight bool    `yaml:"lightweight"`
	Message     *string `yaml:"message"`
}

// Config changes the defaults inherited by later commands.
type Config struct {
	AllName        *string              `yaml:"all_name"`
	AllEmail       *string              `yaml:"all_email"`
	AuthorName     *string              `yaml:"author_name"`
	AuthorEmail    *string              `yaml:"author_email"`
	CommitterName  *string              `yaml:"committer_name"`
	CommitterEmail *string              `yaml:"committer_email"`
	TaggerName     *string              `yaml:"tagger_name"`
	TaggerEmail    *string              `yaml:"tagger_email"`
	Tree           map[string]tree.Node `yaml:"tree"`
}

func (Commit) Kind() Kind { return KindCommit }
func (Merge) Kind() Kind  { return KindMerge }
func (Branch) Kind() Kind { return KindBranch }
func (Tag) Kind() Kind    { return KindTag }
func (Config) Kind() Kind { return KindConfig }

// MessageOr returns the commit message, or fallback when none was declared.
func (c Commit) MessageOr(fallback string) string {
	return valueOr(c.Message, fallback)
}

// MessageOr returns the merge message, or fallback when none was declared.
func (m Merge) MessageOr(fallback string) string {
	return valueOr(m.Message, fallback)
}

// MessageOr returns the tag message, or fallback when none was declared.
func (t Tag) MessageOr(fallback string) string {
	return valueOr(t.Message, fallback)
}

// Patch converts the command into a configuration state patch.
func (c Config) Patch() state.Patch {
	return state.Patch{
		AllName:        c.AllName,
		AllEmail:       c.AllEmail,
		AuthorName:     c.AuthorName,
		AuthorEmail:    c.AuthorEmail,
		CommitterName:  c.CommitterName,
		CommitterEmail: c.CommitterEmail,
		TaggerName:     c.TaggerName,
		TaggerEmail:    c.TaggerEmail,
		Tree:           c.Tree,
	}
}

func valueOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
