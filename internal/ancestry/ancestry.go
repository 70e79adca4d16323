// Package ancestry decides whether a set of commits can be fast-forwarded,
// given an ancestor predicate supplied by the caller.
package ancestry

// CanFastForward reports whether every node in nodes is related to every
// other node by isAncestor and, if so, returns the most-descendant node.
//
// Every unordered pair is compared exactly once, n*(n-1)/2 comparisons:
//
//	2 nodes: 1 comparison
//	3 nodes: 3 comparisons
//	4 nodes: 6 comparisons
//
// isAncestor(a, b) must report true when a is reachable from b by parent
// links, including a == b. A single node fast-forwards to itself; an empty
// slice never fast-forwards.
func CanFastForward[T comparable](nodes []T, isAncestor func(a, b T) bool) (T, bool) {
	var zero T

	if len(nodes) == 1 {
		return nodes[0], true
	}

	var mostRecent T
	found := false

	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]

			var older, newer T
			switch {
			case isAncestor(a, b):
				older, newer = a, b
			case isAncestor(b, a):
				older, newer = b, a
			default:
				// Divergent: no total order connects a and b.
				return zero, false
			}

			if !found {
				mostRecent = newer
				found = true
			} else if mostRecent == older {
				mostRecent = newer
			}
		}
	}

	if !found {
		return zero, false
	}
	return mostRecent, true
}

// IsAncestor walks parent links breadth-first from descendant and reports
// whether ancestor is reached. A node is its own ancestor.
func IsAncestor[T comparable](ancestor, descendant T, parents func(T) ([]T, error)) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}

	seen := map[T]struct{}{descendant: {}}
	queue := []T{descendant}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ps, err := parents(current)
		if err != nil {
			return false, err
		}
		for _, p := range ps {
			if p == ancestor {
				return true, nil
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			queue = append(queue, p)
		}
	}

	return false, nil
}
