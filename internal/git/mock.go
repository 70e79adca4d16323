package git

import "github.com/MyCarrier-DevOps/go-genrepo/internal/ancestry"

// Compile-time check that MockObjectStore implements ObjectStore.
var _ ObjectStore = (*MockObjectStore)(nil)

// MockObjectStore is a configurable mock implementation of ObjectStore for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockObjectStore struct {
	WriteBlobFunc            func([]byte) (ObjectRef, error)
	WriteTreeFunc            func([]TreeEntry) (ObjectRef, error)
	WriteCommitFunc          func(Signature, Signature, string, ObjectRef, []ObjectRef) (ObjectRef, error)
	CreateBranchFunc         func(string, ObjectRef, bool) error
	CreateLightweightTagFunc func(string, ObjectRef, bool) error
	CreateAnnotatedTagFunc   func(string, ObjectRef, Signature, string, bool) (ObjectRef, error)
	LookupCommitFunc         func(ObjectRef) (Commit, error)
	IsAncestorFunc           func(ObjectRef, ObjectRef) (bool, error)
}

func (m *MockObjectStore) WriteBlob(content []byte) (ObjectRef, error) {
	if m.WriteBlobFunc != nil {
		return m.WriteBlobFunc(content)
	}
	return ObjectRef{}, nil
}

func (m *MockObjectStore) WriteTree(entries []TreeEntry) (ObjectRef, error) {
	if m.WriteTreeFunc != nil {
		return m.WriteTreeFunc(entries)
	}
	return ObjectRef{}, nil
}

func (m *MockObjectStore) WriteCommit(author, committer Signature, message string, tree ObjectRef, parents []ObjectRef) (ObjectRef, error) {
	if m.WriteCommitFunc != nil {
		return m.WriteCommitFunc(author, committer, message, tree, parents)
	}
	return ObjectRef{}, nil
}

func (m *MockObjectStore) CreateBranch(name string, target ObjectRef, force bool) error {
	if m.CreateBranchFunc != nil {
		return m.CreateBranchFunc(name, target, force)
	}
	return nil
}

func (m *MockObjectStore) CreateLightweightTag(name string, target ObjectRef, force bool) error {
	if m.CreateLightweightTagFunc != nil {
		return m.CreateLightweightTagFunc(name, target, force)
	}
	return nil
}

func (m *MockObjectStore) CreateAnnotatedTag(name string, target ObjectRef, tagger Signature, message string, force bool) (ObjectRef, error) {
	if m.CreateAnnotatedTagFunc != nil {
		return m.CreateAnnotatedTagFunc(name, target, tagger, message, force)
	}
	return ObjectRef{}, nil
}

func (m *MockObjectStore) LookupCommit(ref ObjectRef) (Commit, error) {
	if m.LookupCommitFunc != nil {
		return m.LookupCommitFunc(ref)
	}
	return Commit{}, nil
}

func (m *MockObjectStore) IsAncestor(ancestor, descendant ObjectRef) (bool, error) {
	if m.IsAncestorFunc != nil {
		return m.IsAncestorFunc(ancestor, descendant)
	}
	if m.LookupCommitFunc != nil {
		// Walk the parent links LookupCommitFunc describes.
		return ancestry.IsAncestor(ancestor, descendant, func(r ObjectRef) ([]ObjectRef, error) {
			c, err := m.LookupCommitFunc(r)
			if err != nil {
				return nil, err
			}
			return c.Parents, nil
		})
	}
	return false, nil
}
