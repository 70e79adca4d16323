package git

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Compile-time check that GoGitStore implements ObjectStore.
var _ ObjectStore = (*GoGitStore)(nil)

// GoGitStore implements ObjectStore on top of a go-git repository.
type GoGitStore struct {
	repo   *gogit.Repository
	storer storage.Storer
	path   string
	cache  *commitCache
}

// Init creates a git repository at path, or opens it if one already exists.
// A bare repository keeps its object database directly under path; otherwise
// it lives in path/.git and path is left as an empty working directory.
func Init(path string, bare bool) (*GoGitStore, error) {
	var (
		worktree billy.Filesystem
		dot      billy.Filesystem
	)

	if bare {
		dot = osfs.New(path)
	} else {
		worktree = osfs.New(path)
		d, err := worktree.Chroot(gogit.GitDirName)
		if err != nil {
			return nil, fmt.Errorf("preparing %s: %w", gogit.GitDirName, err)
		}
		dot = d
	}

	s := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())

	r, err := gogit.Init(s, worktree)
	if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
		r, err = gogit.Open(s, worktree)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing git repository at %s: %w", path, err)
	}

	return &GoGitStore{repo: r, storer: s, path: path, cache: newCommitCache()}, nil
}

// NewMemoryStore returns a store backed by an in-memory bare repository.
func NewMemoryStore() (*GoGitStore, error) {
	s := memory.NewStorage()
	r, err := gogit.Init(s, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing in-memory repository: %w", err)
	}
	return &GoGitStore{repo: r, storer: s, cache: newCommitCache()}, nil
}

// Path returns the directory the repository was created in. It is empty for
// in-memory stores.
func (s *GoGitStore) Path() string {
	return s.path
}

// Repository exposes the underlying go-git repository for read-back.
func (s *GoGitStore) Repository() *gogit.Repository {
	return s.repo
}

func (s *GoGitStore) WriteBlob(content []byte) (ObjectRef, error) {
	obj := s.storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(content)))

	w, err := obj.Writer()
	if err != nil {
		return ObjectRef{}, fmt.Errorf("opening blob writer: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return ObjectRef{}, fmt.Errorf("writing blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return ObjectRef{}, fmt.Errorf("closing blob writer: %w", err)
	}

	return s.store(obj, "blob")
}

func (s *GoGitStore) WriteTree(entries []TreeEntry) (ObjectRef, error) {
	tree := &object.Tree{Entries: make([]object.TreeEntry, 0, len(entries))}
	for _, e := range entries {
		tree.Entries = append(tree.Entries, object.TreeEntry{
			Name: e.Name,
			Mode: filemode.FileMode(e.Kind.Mode()),
			Hash: plumbing.NewHash(e.Ref.Sha),
		})
	}
	sortTreeEntries(tree.Entries)

	obj := s.storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return ObjectRef{}, fmt.Errorf("encoding tree: %w", err)
	}
	return s.store(obj, "tree")
}

func (s *GoGitStore) WriteCommit(author, committer Signature, message string, tree ObjectRef, parents []ObjectRef) (ObjectRef, error) {
	commit := &object.Commit{
		Author:       toGoGitSignature(author),
		Committer:    toGoGitSignature(committer),
		Message:      message,
		TreeHash:     plumbing.NewHash(tree.Sha),
		ParentHashes: make([]plumbing.Hash, 0, len(parents)),
	}
	for _, p := range parents {
		commit.ParentHashes = append(commit.ParentHashes, plumbing.NewHash(p.Sha))
	}

	obj := s.storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return ObjectRef{}, fmt.Errorf("encoding commit: %w", err)
	}
	return s.store(obj, "commit")
}

func (s *GoGitStore) CreateBranch(name string, target ObjectRef, force bool) error {
	hash := plumbing.NewHash(target.Sha)
	if _, err := s.repo.CommitObject(hash); err != nil {
		return fmt.Errorf("branch %s target %s is not a commit: %w", name, target.ShortSha(7), err)
	}
	return s.setReference(NewBranchReferenceName(name), hash, force)
}

func (s *GoGitStore) CreateLightweightTag(name string, target ObjectRef, force bool) error {
	hash := plumbing.NewHash(target.Sha)
	if _, err := s.storer.EncodedObject(plumbing.AnyObject, hash); err != nil {
		return fmt.Errorf("tag %s target %s: %w", name, target.ShortSha(7), err)
	}
	return s.setReference(NewTagReferenceName(name), hash, force)
}

func (s *GoGitStore) CreateAnnotatedTag(name string, target ObjectRef, tagger Signature, message string, force bool) (ObjectRef, error) {
	refName := NewTagReferenceName(name)
	if !force {
		if err := s.ensureAbsent(refName); err != nil {
			return ObjectRef{}, err
		}
	}

	hash := plumbing.NewHash(target.Sha)
	targetObj, err := s.storer.EncodedObject(plumbing.AnyObject, hash)
	if err != nil {
		return ObjectRef{}, fmt.Errorf("tag %s target %s: %w", name, target.ShortSha(7), err)
	}

	tag := &object.Tag{
		Name:       name,
		Tagger:     toGoGitSignature(tagger),
		Message:    message,
		TargetType: targetObj.Type(),
		Target:     hash,
	}

	obj := s.storer.NewEncodedObject()
	if err := tag.Encode(obj); err != nil {
		return ObjectRef{}, fmt.Errorf("encoding tag %s: %w", name, err)
	}
	ref, err := s.store(obj, "tag")
	if err != nil {
		return ObjectRef{}, err
	}

	if err := s.setReference(refName, plumbing.NewHash(ref.Sha), true); err != nil {
		return ObjectRef{}, err
	}
	return ref, nil
}

func (s *GoGitStore) LookupCommit(ref ObjectRef) (Commit, error) {
	if c, ok := s.cache.getCommit(ref); ok {
		return c, nil
	}
	c, err := s.repo.CommitObject(plumbing.NewHash(ref.Sha))
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", ref.Sha, err)
	}
	commit := convertCommit(c)
	s.cache.putCommit(commit)
	return commit, nil
}

// IsAncestor reports whether ancestorRef is reachable from descendant,
// descendant included. Answers are memoized.
func (s *GoGitStore) IsAncestor(ancestorRef, descendant ObjectRef) (bool, error) {
	if ok, found := s.cache.getAncestry(ancestorRef, descendant); found {
		return ok, nil
	}
	a, err := s.repo.CommitObject(plumbing.NewHash(ancestorRef.Sha))
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", ancestorRef.Sha, err)
	}
	d, err := s.repo.CommitObject(plumbing.NewHash(descendant.Sha))
	if err != nil {
		return false, fmt.Errorf("loading commit %s: %w", descendant.Sha, err)
	}
	ok, err := a.IsAncestor(d)
	if err != nil {
		return false, fmt.Errorf("walking history of %s: %w", descendant.ShortSha(7), err)
	}
	s.cache.putAncestry(ancestorRef, descendant, ok)
	return ok, nil
}

// store persists an encoded object and returns its ref.
func (s *GoGitStore) store(obj plumbing.EncodedObject, kind string) (ObjectRef, error) {
	hash, err := s.storer.SetEncodedObject(obj)
	if err != nil {
		return ObjectRef{}, fmt.Errorf("storing %s: %w", kind, err)
	}
	return NewObjectRef(hash.String()), nil
}

func (s *GoGitStore) setReference(name ReferenceName, hash plumbing.Hash, force bool) error {
	if !force {
		if err := s.ensureAbsent(name); err != nil {
			return err
		}
	}
	ref := plumbing.NewHashReference(plumbing.ReferenceName(name.Canonical), hash)
	if err := s.storer.SetReference(ref); err != nil {
		return fmt.Errorf("writing %s: %w", name.Canonical, err)
	}
	return nil
}

func (s *GoGitStore) ensureAbsent(name ReferenceName) error {
	_, err := s.storer.Reference(plumbing.ReferenceName(name.Canonical))
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", name.Friendly, ErrReferenceExists)
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		return nil
	default:
		return fmt.Errorf("reading %s: %w", name.Canonical, err)
	}
}

// sortTreeEntries orders entries the way git does: byte order of the name,
// with directories compared as if their name ended in "/".
func sortTreeEntries(entries []object.TreeEntry) {
	key := func(e object.TreeEntry) string {
		if uint32(e.Mode) == ModeDir {
			return e.Name + "/"
		}
		return e.Name
	}
	sort.Slice(entries, func(i, j int) bool {
		return key(entries[i]) < key(entries[j])
	})
}

func toGoGitSignature(sig Signature) object.Signature {
	return object.Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]ObjectRef, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, NewObjectRef(p.String()))
	}

	return Commit{
		Ref:     NewObjectRef(c.Hash.String()),
		Tree:    NewObjectRef(c.TreeHash.String()),
		Parents: parents,
		Author: Signature{
			Identity: Identity{Name: c.Author.Name, Email: c.Author.Email},
			When:     c.Author.When,
		},
		Committer: Signature{
			Identity: Identity{Name: c.Committer.Name, Email: c.Committer.Email},
			When:     c.Committer.When,
		},
		Message: c.Message,
	}
}
