package dht

// bucket is a leaf of the routing tree: a bounded, insertion-ordered
// sequence of contacts, plus the sticky doNotSplit flag spec.md §3/§4.3
// require. The oldest contact sits at index 0; the most recently
// touched/appended contact sits at the tail.
//
// bucket is not safe for concurrent use on its own — callers hold
// RoutingTable's lock for the duration of any bucket mutation or read
// that must be consistent with a mutation.
type bucket struct {
	contacts   []*Contact
	capacity   int
	doNotSplit bool
}

// newBucket returns an empty leaf with the given capacity.
func newBucket(capacity int) *bucket {
	return &bucket{
		contacts: make([]*Contact, 0, capacity),
		capacity: capacity,
	}
}

// indexOf returns the position of the contact with the given identifier,
// or -1 if none is present.
func (b *bucket) indexOf(id Identifier) int {
	for i, c := range b.contacts {
		if c.ID().Equal(id) {
			return i
		}
	}
	return -1
}

// get returns the contact with the given identifier, or nil if absent.
func (b *bucket) get(id Identifier) *Contact {
	if i := b.indexOf(id); i >= 0 {
		return b.contacts[i]
	}
	return nil
}

// append adds c to the tail of the bucket. The caller must have already
// verified len(contacts) < capacity and that no contact with c's
// identifier is present — append does not re-check either.
func (b *bucket) append(c *Contact) {
	b.contacts = append(b.contacts, c)
}

// removeAt removes the contact at position i, preserving the order of
// the remaining contacts.
func (b *bucket) removeAt(i int) {
	b.contacts = append(b.contacts[:i], b.contacts[i+1:]...)
}

// iterate returns the bucket's contacts in insertion order. The returned
// slice is a fresh copy; mutating it does not affect the bucket.
func (b *bucket) iterate() []*Contact {
	out := make([]*Contact, len(b.contacts))
	copy(out, b.contacts)
	return out
}

// count returns the number of contacts currently held.
func (b *bucket) count() int {
	return len(b.contacts)
}

// full reports whether the bucket has reached capacity.
func (b *bucket) full() bool {
	return len(b.contacts) >= b.capacity
}

// oldest returns up to n contacts from the head of the bucket (the least
// recently touched), for the review notification's "oldest" field.
func (b *bucket) oldest(n int) []*Contact {
	if n > len(b.contacts) {
		n = len(b.contacts)
	}
	out := make([]*Contact, n)
	copy(out, b.contacts[:n])
	return out
}
