package dht

// node is one node of the routing tree. A node is a leaf iff both left
// and right are nil, in which case leaf holds the live bucket storage;
// otherwise the node is internal and leaf is nil (spec.md §3, invariant
// 5: "internal nodes have both children present; leaves have neither").
type node struct {
	leaf        *bucket
	left, right *node
}

// newLeaf returns a fresh empty leaf node with the given bucket capacity.
func newLeaf(capacity int) *node {
	return &node{leaf: newBucket(capacity)}
}

// isLeaf reports whether n is a leaf.
func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// descend walks from n (expected to be the tree root) to the leaf that
// would hold id, consulting bitAt at each internal node: 0 chooses left,
// 1 chooses right. It returns the leaf reached and the depth (number of
// bits consumed) — spec.md §4.3.
func descend(root *node, id Identifier) (*node, int) {
	cur := root
	depth := 0
	for !cur.isLeaf() {
		if bitAt(id, depth) == 0 {
			cur = cur.left
		} else {
			cur = cur.right
		}
		depth++
	}
	return cur, depth
}

// split turns the leaf at depth into an internal node with two fresh
// leaf children, redistributing its contacts by their bit at depth.
// Order within each child is preserved relative to the parent's order.
// The child covering localID keeps may-split (doNotSplit stays false);
// its sibling is marked doNotSplit = true, per spec.md §4.3 step 4 and
// invariant 4.
func split(leaf *node, depth int, localID Identifier, capacity int) {
	left := newLeaf(capacity)
	right := newLeaf(capacity)

	for _, c := range leaf.leaf.contacts {
		if bitAt(c.ID(), depth) == 0 {
			left.leaf.append(c)
		} else {
			right.leaf.append(c)
		}
	}

	if bitAt(localID, depth) == 0 {
		right.leaf.doNotSplit = true
	} else {
		left.leaf.doNotSplit = true
	}

	leaf.left = left
	leaf.right = right
	leaf.leaf = nil
}

// deepCount returns the total number of contacts held across every leaf
// reachable from n.
func deepCount(n *node) int {
	if n.isLeaf() {
		return n.leaf.count()
	}
	return deepCount(n.left) + deepCount(n.right)
}

// allContacts performs a left-first, in-order traversal collecting every
// contact from every leaf exactly once.
func allContacts(n *node) []*Contact {
	if n.isLeaf() {
		return n.leaf.iterate()
	}
	out := allContacts(n.left)
	out = append(out, allContacts(n.right)...)
	return out
}
