package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitCache(t *testing.T) {
	c := newCommitCache()
	a := ObjectRef{Sha: "aaaa"}
	b := ObjectRef{Sha: "bbbb"}

	_, ok := c.getCommit(a)
	require.False(t, ok)

	c.putCommit(Commit{Ref: b, Parents: []ObjectRef{a}})
	got, ok := c.getCommit(b)
	require.True(t, ok)
	require.Equal(t, []ObjectRef{a}, got.Parents)

	_, found := c.getAncestry(a, b)
	require.False(t, found)

	c.putAncestry(a, b, true)
	isAncestor, found := c.getAncestry(a, b)
	require.True(t, found)
	require.True(t, isAncestor)

	// Direction matters.
	_, found = c.getAncestry(b, a)
	require.False(t, found)
}

func TestGoGitStore_CachesLookups(t *testing.T) {
	s := newMemoryStore(t)
	a := writeCommit(t, s, "a")
	b := writeCommit(t, s, "b", a)

	first, err := s.LookupCommit(b)
	require.NoError(t, err)
	cached, ok := s.cache.getCommit(b)
	require.True(t, ok)
	require.Equal(t, first, cached)

	ok, err = s.IsAncestor(a, b)
	require.NoError(t, err)
	require.True(t, ok)

	memo, found := s.cache.getAncestry(a, b)
	require.True(t, found)
	require.True(t, memo)
}

func TestGoGitStore_LookupUnknownCommitNotCached(t *testing.T) {
	s := newMemoryStore(t)
	missing := ObjectRef{Sha: "0123456789012345678901234567890123456789"}

	_, err := s.LookupCommit(missing)
	require.Error(t, err)
	_, ok := s.cache.getCommit(missing)
	require.False(t, ok)
}
