package trie

// Height returns the number of branch levels on the longest root-to-leaf path.
// An empty trie and a trie holding a single leaf both have height 0.
func (t *Trie[T]) Height() int {
	if t.root == nil {
		return 0
	}
	return height(t.root) - 1
}

// counts nodes on the longest path below and including n.
func height[T Payload[T]](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.Children[ZERO]), height(n.Children[ONE]))
}

// LeafCount returns the number of stored payloads.
func (t *Trie[T]) LeafCount() int {
	return count(t.root, true)
}

// BranchCount returns the number of internal (routing) nodes.
func (t *Trie[T]) BranchCount() int {
	return count(t.root, false)
}

func count[T Payload[T]](n *node[T], leaves bool) int {
	if n == nil {
		return 0
	}
	total := 0
	if n.leaf == leaves {
		total++
	}
	return total + count(n.Children[ZERO], leaves) + count(n.Children[ONE], leaves)
}

// Update recomputes every statistic with a full traversal and caches the result.
func (t *Trie[T]) Update() Stats {
	t.stats = Stats{
		Height:   t.Height(),
		Leaves:   t.LeafCount(),
		Branches: t.BranchCount(),
	}
	return t.stats
}

// Stats returns the snapshot taken by the last Update, zero if Update was never called.
func (t *Trie[T]) Stats() Stats {
	return t.stats
}
