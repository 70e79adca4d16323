package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/git"
	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

func strPtr(s string) *string { return &s }

func noTree(t *testing.T) TreeBuilder {
	return func(map[string]tree.Node) (git.ObjectRef, error) {
		t.Fatal("tree builder should not be called")
		return git.ObjectRef{}, nil
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(DefaultIdentities(), git.NewObjectRef("empty"))

	require.Equal(t, DefaultIdentity(), s.Author())
	require.Equal(t, DefaultIdentity(), s.Committer())
	require.Equal(t, DefaultIdentity(), s.Tagger())
	require.Equal(t, "generate-git-repo", s.Author().Name)
	require.Equal(t, "generate-git-repo@example.org", s.Tagger().Email)
	require.Equal(t, "empty", s.DefaultTree().Sha)
}

func TestApply_AllFields(t *testing.T) {
	s := New(DefaultIdentities(), git.ObjectRef{})
	require.NoError(t, s.Apply(Patch{
		AllName:  strPtr("Everyone"),
		AllEmail: strPtr("all@example.org"),
	}, noTree(t)))

	want := git.Identity{Name: "Everyone", Email: "all@example.org"}
	require.Equal(t, want, s.Author())
	require.Equal(t, want, s.Committer())
	require.Equal(t, want, s.Tagger())
}

func TestApply_PerRoleOverridesAll(t *testing.T) {
	s := New(DefaultIdentities(), git.ObjectRef{})
	require.NoError(t, s.Apply(Patch{
		AllName:       strPtr("Everyone"),
		AuthorName:    strPtr("Alice"),
		TaggerEmail:   strPtr("tagger@example.org"),
		CommitterName: strPtr("Carol"),
	}, noTree(t)))

	require.Equal(t, "Alice", s.Author().Name)
	require.Equal(t, "Carol", s.Committer().Name)
	require.Equal(t, "Everyone", s.Tagger().Name)
	require.Equal(t, "tagger@example.org", s.Tagger().Email)
	require.Equal(t, DefaultEmail, s.Author().Email)
}

func TestApply_AllNameWithAuthorName(t *testing.T) {
	s := New(DefaultIdentities(), git.ObjectRef{})
	require.NoError(t, s.Apply(Patch{
		AllName:    strPtr("all"),
		AuthorName: strPtr("author"),
	}, noTree(t)))

	require.Equal(t, "author", s.Author().Name)
	require.Equal(t, "all", s.Committer().Name)
	require.Equal(t, "all", s.Tagger().Name)
}

func TestApply_PatchesAccumulate(t *testing.T) {
	s := New(DefaultIdentities(), git.ObjectRef{})
	require.NoError(t, s.Apply(Patch{AuthorName: strPtr("first")}, noTree(t)))
	require.NoError(t, s.Apply(Patch{AuthorEmail: strPtr("first@example.org")}, noTree(t)))

	require.Equal(t, git.Identity{Name: "first", Email: "first@example.org"}, s.Author())
}

func TestApply_TreeReplacesDefault(t *testing.T) {
	s := New(DefaultIdentities(), git.NewObjectRef("old"))

	var got map[string]tree.Node
	err := s.Apply(Patch{Tree: map[string]tree.Node{"a.txt": tree.File("a")}}, func(d map[string]tree.Node) (git.ObjectRef, error) {
		got = d
		return git.NewObjectRef("new"), nil
	})
	require.NoError(t, err)
	require.Equal(t, "new", s.DefaultTree().Sha)
	require.Contains(t, got, "a.txt")
}

func TestApply_FailingTreeLeavesStateUntouched(t *testing.T) {
	s := New(DefaultIdentities(), git.NewObjectRef("old"))
	boom := errors.New("boom")

	err := s.Apply(Patch{
		AllName: strPtr("changed"),
		Tree:    map[string]tree.Node{},
	}, func(map[string]tree.Node) (git.ObjectRef, error) {
		return git.ObjectRef{}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, "old", s.DefaultTree().Sha)
	require.Equal(t, DefaultName, s.Author().Name)
}
