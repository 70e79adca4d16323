package git

import "errors"

// ErrReferenceExists is returned when a non-forced ref write finds the ref
// already present.
var ErrReferenceExists = errors.New("reference already exists")

// ObjectStore persists git objects and writes named refs.
// This is the key abstraction point for testing and backend swapping.
type ObjectStore interface {
	// WriteBlob stores raw file content.
	WriteBlob(content []byte) (ObjectRef, error)

	// WriteTree stores a single directory level. Entries may be given in any
	// order; implementations sort them the way git requires.
	WriteTree(entries []TreeEntry) (ObjectRef, error)

	// WriteCommit stores a commit object. It does not move any ref.
	WriteCommit(author, committer Signature, message string, tree ObjectRef, parents []ObjectRef) (ObjectRef, error)

	// CreateBranch points refs/heads/<name> at target, which must be a commit.
	CreateBranch(name string, target ObjectRef, force bool) error

	// CreateLightweightTag points refs/tags/<name> directly at target.
	CreateLightweightTag(name string, target ObjectRef, force bool) error

	// CreateAnnotatedTag writes a tag object for target and points
	// refs/tags/<name> at it. It returns the tag object's ref.
	CreateAnnotatedTag(name string, target ObjectRef, tagger Signature, message string, force bool) (ObjectRef, error)

	// LookupCommit returns the metadata of a persisted commit.
	LookupCommit(ref ObjectRef) (Commit, error)

	// IsAncestor reports whether ancestor is reachable from descendant by
	// following parent links. Every commit is its own ancestor.
	IsAncestor(ancestor, descendant ObjectRef) (bool, error)
}
