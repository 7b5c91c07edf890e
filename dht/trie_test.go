package dht

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescendOnEmptyRootReturnsItself(t *testing.T) {
	root := newLeaf(2)

	leaf, depth := descend(root, Identifier{0x00, 0x00, 0x00, 0x01})

	assert.Same(t, root, leaf)
	assert.Equal(t, 0, depth)
}

// TestSplit exercises spec.md §4.3's split algorithm against scenario S3:
// K=2, local_id = 00 00 00 00, contacts 00 00 00 01, 00 00 00 02,
// 80 00 00 00. The far contact (0x80...) ends up alone on the side away
// from the local identifier, which must be marked doNotSplit.
func TestSplit(t *testing.T) {
	localID := Identifier{0x00, 0x00, 0x00, 0x00}
	leaf := newLeaf(2)

	near1 := NewContact(Identifier{0x00, 0x00, 0x00, 0x01}, nil)
	near2 := NewContact(Identifier{0x00, 0x00, 0x00, 0x02}, nil)
	far := NewContact(Identifier{0x80, 0x00, 0x00, 0x00}, nil)
	leaf.leaf.append(near1)
	leaf.leaf.append(near2)
	leaf.leaf.append(far)

	split(leaf, 0, localID, 2)

	require.False(t, leaf.isLeaf(), "split leaf must become internal")
	require.Nil(t, leaf.leaf, "internal node must not retain live bucket storage")

	// localID's bit 0 is 0, so it routes left: the left child may split
	// further, the right child (covering 0x80...) must not.
	assert.False(t, leaf.left.leaf.doNotSplit)
	assert.True(t, leaf.right.leaf.doNotSplit)

	assert.Equal(t, 2, leaf.left.leaf.count())
	assert.Equal(t, 1, leaf.right.leaf.count())
	assert.Equal(t, far, leaf.right.leaf.contacts[0])
}

func TestSplitPreservesOrderWithinEachChild(t *testing.T) {
	localID := Identifier{0x00}
	leaf := newLeaf(4)

	a := NewContact(Identifier{0x00}, nil) // bit0 = 0
	b := NewContact(Identifier{0x40}, nil) // bit0 = 0
	c := NewContact(Identifier{0x80}, nil) // bit0 = 1
	d := NewContact(Identifier{0xC0}, nil) // bit0 = 1
	leaf.leaf.append(a)
	leaf.leaf.append(b)
	leaf.leaf.append(c)
	leaf.leaf.append(d)

	split(leaf, 0, localID, 4)

	require.Equal(t, []*Contact{a, b}, leaf.left.leaf.contacts)
	require.Equal(t, []*Contact{c, d}, leaf.right.leaf.contacts)
}

func TestDeepCountAndAllContactsAfterSplit(t *testing.T) {
	localID := Identifier{0x00}
	leaf := newLeaf(2)
	leaf.leaf.append(NewContact(Identifier{0x00}, nil))
	leaf.leaf.append(NewContact(Identifier{0x40}, nil))
	leaf.leaf.append(NewContact(Identifier{0x80}, nil))

	split(leaf, 0, localID, 2)

	assert.Equal(t, 3, deepCount(leaf))
	assert.Len(t, allContacts(leaf), 3)
}

func TestDescendRoutesThroughMultipleLevels(t *testing.T) {
	localID := Identifier{0x00}
	root := newLeaf(1)
	root.leaf.append(NewContact(Identifier{0x00}, nil))
	root.leaf.append(NewContact(Identifier{0x80}, nil))

	split(root, 0, localID, 1)
	// Force the left (local-covering) child to split again at depth 1.
	root.left.leaf.append(NewContact(Identifier{0x00}, nil))
	root.left.leaf.append(NewContact(Identifier{0x20}, nil))
	split(root.left, 1, localID, 1)

	leaf, depth := descend(root, Identifier{0x20})
	assert.Equal(t, 2, depth)
	assert.True(t, leaf.isLeaf())
}
