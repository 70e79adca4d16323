package tree

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
)

// Staged is a directory in the materialized tree. Each child is either a
// file (Content set) or a nested directory (Dir set), keyed by a single
// path segment.
type Staged struct {
	Entries map[string]*StagedEntry
}

// StagedEntry is one named child of a Staged directory.
type StagedEntry struct {
	Content []byte
	Dir     *Staged
}

// IsDir returns true if the entry is a directory.
func (e *StagedEntry) IsDir() bool {
	return e.Dir != nil
}

func newStaged() *Staged {
	return &Staged{Entries: make(map[string]*StagedEntry)}
}

// Materialize converts a flat path → content mapping into a nested directory
// structure. Paths are inserted in sorted order, so a conflicting input
// always reports the same path regardless of map iteration order.
func Materialize(files map[string][]byte) (*Staged, error) {
	root := newStaged()
	for _, path := range sortedKeys(files) {
		if err := ValidatePath(path); err != nil {
			return nil, err
		}
		if err := root.insert(path, strings.Split(path, Separator), files[path]); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// MaterializeDeclared flattens and materializes a declared tree.
func MaterializeDeclared(declared map[string]Node) (*Staged, error) {
	files, err := Flatten(declared)
	if err != nil {
		return nil, err
	}
	return Materialize(files)
}

func (s *Staged) insert(full string, segments []string, content []byte) error {
	name := segments[0]
	existing, ok := s.Entries[name]

	if len(segments) == 1 {
		if ok {
			kind := "file"
			if existing.IsDir() {
				kind = "directory"
			}
			return &PathError{Path: full, Reason: "a " + kind + " already exists there", Err: ErrPathConflict}
		}
		s.Entries[name] = &StagedEntry{Content: content}
		return nil
	}

	if !ok {
		existing = &StagedEntry{Dir: newStaged()}
		s.Entries[name] = existing
	}
	if !existing.IsDir() {
		return &PathError{Path: full, Reason: fmt.Sprintf("%q is already a file", name), Err: ErrPathConflict}
	}
	return existing.Dir.insert(full, segments[1:], content)
}

// Files flattens the staged tree back into a path → content mapping.
func (s *Staged) Files() map[string][]byte {
	out := make(map[string][]byte)
	s.collect(out, "")
	return out
}

func (s *Staged) collect(out map[string][]byte, prefix string) {
	for name, e := range s.Entries {
		full := name
		if prefix != "" {
			full = prefix + Separator + name
		}
		if e.IsDir() {
			e.Dir.collect(out, full)
			continue
		}
		out[full] = e.Content
	}
}

// ObjectWriter is the subset of the object store needed to persist trees.
type ObjectWriter interface {
	WriteBlob(content []byte) (git.ObjectRef, error)
	WriteTree(entries []git.TreeEntry) (git.ObjectRef, error)
}

// Write persists the staged tree and returns the root tree ref. Children are
// written before their parent since a tree's hash depends on theirs.
func Write(w ObjectWriter, s *Staged) (git.ObjectRef, error) {
	entries := make([]git.TreeEntry, 0, len(s.Entries))

	for _, name := range sortedKeys(s.Entries) {
		e := s.Entries[name]
		if e.IsDir() {
			ref, err := Write(w, e.Dir)
			if err != nil {
				return git.ObjectRef{}, err
			}
			entries = append(entries, git.TreeEntry{Name: name, Ref: ref, Kind: git.EntryDirectory})
			continue
		}

		ref, err := w.WriteBlob(e.Content)
		if err != nil {
			return git.ObjectRef{}, fmt.Errorf("writing blob %s: %w", name, err)
		}
		entries = append(entries, git.TreeEntry{Name: name, Ref: ref, Kind: git.EntryFile})
	}

	ref, err := w.WriteTree(entries)
	if err != nil {
		return git.ObjectRef{}, fmt.Errorf("writing tree: %w", err)
	}
	return ref, nil
}

// Build materializes a declared tree and writes it in one step.
func Build(w ObjectWriter, declared map[string]Node) (git.ObjectRef, error) {
	staged, err := MaterializeDeclared(declared)
	if err != nil {
		return git.ObjectRef{}, err
	}
	return Write(w, staged)
}
