// Package testutil provides helpers for inspecting generated git repositories
// and for seeding repositories with pre-existing history in end-to-end tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// TestRepo wraps a go-git repository with fatal-on-error accessors.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewTestRepo creates and initializes a new git repository in a temporary
// directory.
func NewTestRepo(t testing.TB, bare bool) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, bare)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Open opens the repository at path, bare or not.
func Open(t testing.TB, path string) *TestRepo {
	t.Helper()
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		t.Fatalf("opening repo at %s: %v", path, err)
	}
	return &TestRepo{t: t, path: path, repo: repo}
}

// Wrap wraps an already opened repository, such as an in-memory one.
func Wrap(t testing.TB, repo *gogit.Repository) *TestRepo {
	return &TestRepo{t: t, repo: repo}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string {
	return r.path
}

// Repository returns the underlying go-git repository.
func (r *TestRepo) Repository() *gogit.Repository {
	return r.repo
}

// AddCommit writes a commit through the worktree, on top of HEAD when it
// exists, and returns its SHA.
func (r *TestRepo) AddCommit(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := fmt.Sprintf("file-%d.txt", r.time.Unix())
	if err := os.WriteFile(filepath.Join(r.path, filename), []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}
	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}

	return hash.String()
}

// Commit returns the commit with the given SHA.
func (r *TestRepo) Commit(sha string) *object.Commit {
	r.t.Helper()
	c, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		r.t.Fatalf("reading commit %s: %v", sha, err)
	}
	return c
}

// Parents returns the parent SHAs of a commit, in order.
func (r *TestRepo) Parents(sha string) []string {
	r.t.Helper()
	c := r.Commit(sha)
	out := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		out = append(out, h.String())
	}
	return out
}

// Files returns the path → content mapping of a commit's tree.
func (r *TestRepo) Files(sha string) map[string]string {
	r.t.Helper()
	tree, err := r.Commit(sha).Tree()
	if err != nil {
		r.t.Fatalf("reading tree of %s: %v", sha, err)
	}

	out := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		content, err := f.Contents()
		if err != nil {
			return err
		}
		out[f.Name] = content
		return nil
	})
	if err != nil {
		r.t.Fatalf("walking tree of %s: %v", sha, err)
	}
	return out
}

// Branch returns the SHA a branch points at.
func (r *TestRepo) Branch(name string) string {
	r.t.Helper()
	return r.reference(plumbing.NewBranchReferenceName(name)).Hash().String()
}

// Branches returns the names of all branches, sorted.
func (r *TestRepo) Branches() []string {
	r.t.Helper()
	iter, err := r.repo.Branches()
	if err != nil {
		r.t.Fatalf("listing branches: %v", err)
	}
	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	sort.Strings(names)
	return names
}

// HasReference reports whether the fully qualified reference exists.
func (r *TestRepo) HasReference(name string) bool {
	r.t.Helper()
	_, err := r.repo.Reference(plumbing.ReferenceName(name), false)
	return err == nil
}

// Tag returns the commit SHA a tag resolves to, peeling annotated tags.
func (r *TestRepo) Tag(name string) string {
	r.t.Helper()
	ref := r.reference(plumbing.NewTagReferenceName(name))
	tag, err := r.repo.TagObject(ref.Hash())
	if err == nil {
		c, err := tag.Commit()
		if err != nil {
			r.t.Fatalf("peeling tag %s: %v", name, err)
		}
		return c.Hash.String()
	}
	return ref.Hash().String()
}

// AnnotatedTag returns the tag object behind an annotated tag.
func (r *TestRepo) AnnotatedTag(name string) *object.Tag {
	r.t.Helper()
	ref := r.reference(plumbing.NewTagReferenceName(name))
	tag, err := r.repo.TagObject(ref.Hash())
	if err != nil {
		r.t.Fatalf("tag %s is not annotated: %v", name, err)
	}
	return tag
}

// CommitCount returns the number of commit objects in the repository.
func (r *TestRepo) CommitCount() int {
	r.t.Helper()
	iter, err := r.repo.CommitObjects()
	if err != nil {
		r.t.Fatalf("listing commits: %v", err)
	}
	n := 0
	_ = iter.ForEach(func(*object.Commit) error {
		n++
		return nil
	})
	return n
}

// HeadSha returns the current HEAD commit SHA.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}

func (r *TestRepo) reference(name plumbing.ReferenceName) *plumbing.Reference {
	r.t.Helper()
	ref, err := r.repo.Reference(name, false)
	if err != nil {
		r.t.Fatalf("reading %s: %v", name, err)
	}
	return ref
}
