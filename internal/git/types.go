// Package git provides the object store boundary used to build commit graphs.
// It defines the entity types (ObjectRef, Identity, TreeEntry, Commit), the
// ObjectStore interface, and a go-git backed implementation.
package git

import (
	"strings"
	"time"
)

const (
	localBranchPrefix = "refs/heads/"
	tagRefPrefix      = "refs/tags/"
)

// File modes written into tree entries.
const (
	ModeRegular uint32 = 0o100644
	ModeDir     uint32 = 0o040000
)

// ObjectRef identifies a persisted blob, tree, commit or tag object.
type ObjectRef struct {
	Sha string
}

// NewObjectRef wraps a hex SHA.
func NewObjectRef(sha string) ObjectRef {
	return ObjectRef{Sha: sha}
}

// ShortSha returns the first n characters of the SHA.
func (r ObjectRef) ShortSha(n int) string {
	if n >= len(r.Sha) {
		return r.Sha
	}
	return r.Sha[:n]
}

// String returns the full SHA.
func (r ObjectRef) String() string {
	return r.Sha
}

// IsZero returns true if the ref has no SHA (zero value).
func (r ObjectRef) IsZero() bool {
	return r.Sha == ""
}

// Identity is a name/email pair used for author, committer and tagger.
type Identity struct {
	Name  string
	Email string
}

// String formats the identity the way git prints it.
func (id Identity) String() string {
	return id.Name + " <" + id.Email + ">"
}

// Signature is an identity stamped with a time.
type Signature struct {
	Identity
	When time.Time
}

// EntryKind distinguishes file entries from directory entries in a tree.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
)

// Mode returns the git file mode for the entry kind.
func (k EntryKind) Mode() uint32 {
	if k == EntryDirectory {
		return ModeDir
	}
	return ModeRegular
}

func (k EntryKind) String() string {
	if k == EntryDirectory {
		return "directory"
	}
	return "file"
}

// TreeEntry is one named child of a tree object.
type TreeEntry struct {
	Name string
	Ref  ObjectRef
	Kind EntryKind
}

// Commit is the metadata of a persisted commit.
type Commit struct {
	Ref       ObjectRef
	Tree      ObjectRef
	Parents   []ObjectRef // len > 1 means merge commit
	Author    Signature
	Committer Signature
	Message   string
}

// ReferenceName is a branch or tag reference. Canonical is the full ref path
// written to the store; Friendly is the name used in messages.
type ReferenceName struct {
	Canonical string // e.g., "refs/heads/main"
	Friendly  string // e.g., "main"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical

	switch {
	case strings.HasPrefix(canonical, localBranchPrefix):
		friendly = canonical[len(localBranchPrefix):]
	case strings.HasPrefix(canonical, tagRefPrefix):
		friendly = canonical[len(tagRefPrefix):]
	}

	return ReferenceName{
		Canonical: canonical,
		Friendly:  friendly,
	}
}

// NewBranchReferenceName creates a ReferenceName for a local branch.
func NewBranchReferenceName(name string) ReferenceName {
	return NewReferenceName(localBranchPrefix + name)
}

// NewTagReferenceName creates a ReferenceName for a tag.
func NewTagReferenceName(name string) ReferenceName {
	return NewReferenceName(tagRefPrefix + name)
}
