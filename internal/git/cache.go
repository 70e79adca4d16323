package git

import "sync"

// commitCache memoizes commit lookups and ancestry answers. Commits are
// immutable once written, so entries never go stale. Caches have a
// single-store lifetime (not persisted).
type commitCache struct {
	mu sync.RWMutex

	commits   map[ObjectRef]Commit
	ancestors map[ancestryKey]bool
}

// ancestryKey is ordered: (a, b) asks whether a is an ancestor of b.
type ancestryKey struct {
	ancestor   ObjectRef
	descendant ObjectRef
}

func newCommitCache() *commitCache {
	return &commitCache{
		commits:   make(map[ObjectRef]Commit),
		ancestors: make(map[ancestryKey]bool),
	}
}

// Commit cache.

func (c *commitCache) getCommit(ref ObjectRef) (Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	commit, ok := c.commits[ref]
	return commit, ok
}

func (c *commitCache) putCommit(commit Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commits[commit.Ref] = commit
}

// Ancestry cache.

func (c *commitCache) getAncestry(ancestor, descendant ObjectRef) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ok, found := c.ancestors[ancestryKey{ancestor, descendant}]
	return ok, found
}

func (c *commitCache) putAncestry(ancestor, descendant ObjectRef, isAncestor bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ancestors[ancestryKey{ancestor, descendant}] = isAncestor
}
