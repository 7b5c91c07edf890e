package dht

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// RoutingTable is the public façade wiring the identifier algebra,
// bucket, tree, and arbiter together under a single readers-writer lock.
// The zero value is not usable; construct with NewRoutingTable.
type RoutingTable struct {
	mu   sync.RWMutex
	root *node

	localIDOnce sync.Once
	localID     Identifier
	localIDErr  error

	cfg      Config
	notifier reviewNotifier
}

// NewRoutingTable creates a routing table configured by cfg. Zero-valued
// fields of cfg fall back to their documented defaults (see Config).
func NewRoutingTable(cfg Config) *RoutingTable {
	cfg = cfg.withDefaults()
	rt := &RoutingTable{
		cfg: cfg,
	}
	rt.root = newLeaf(cfg.ContactsPerBucket)
	if len(cfg.LocalID) > 0 {
		rt.localID = cfg.LocalID
		rt.localIDOnce.Do(func() {})
	}
	return rt
}

// localIdentifier returns the table's local identifier, generating and
// caching a random one on first use if none was supplied at
// construction. The generated value is immutable for the table's
// lifetime thereafter. The error return surfaces a crypto/rand failure
// on that first use; generation is not retried, so after a failure every
// subsequent call returns the same error.
func (rt *RoutingTable) localIdentifier() (Identifier, error) {
	rt.localIDOnce.Do(func() {
		id, err := randomIdentifier()
		rt.localID, rt.localIDErr = id, err
	})
	return rt.localID, rt.localIDErr
}

// OnReview registers h to be invoked whenever Add concludes "not added,
// full, cannot split." Handlers run synchronously on the calling
// goroutine's stack, after the write lock has been released, and may
// safely call back into the table (e.g. Remove then Add again). A
// registered handler cannot be unregistered.
func (rt *RoutingTable) OnReview(h ReviewHandler) {
	rt.notifier.subscribe(h)
}

// Add admits or refreshes c, applying the arbiter/split/review policy
// described in spec.md §4.5. It returns whether a contact with c's
// identifier ends up admitted to the table (when the arbiter keeps the
// incumbent, that is the incumbent); a false return with a nil error is the
// documented "capacity exhausted, cannot split" outcome, not a failure —
// it is accompanied by a review notification dispatched after Add
// returns to any OnReview subscribers.
func (rt *RoutingTable) Add(c *Contact) (bool, error) {
	if c == nil {
		logrus.WithFields(logrus.Fields{
			"function": "Add",
		}).Warn("rejected nil contact")
		return false, ErrNilContact
	}
	if len(c.ID()) == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Add",
		}).Warn("rejected contact with empty identifier")
		return false, ErrInvalidIdentifier
	}

	localID, err := rt.localIdentifier()
	if err != nil {
		return false, fmt.Errorf("derive local identifier: %w", err)
	}

	rt.mu.Lock()
	var event *ReviewEvent
	added := false

	for {
		leaf, depth := descend(rt.root, c.ID())

		if i := leaf.leaf.indexOf(c.ID()); i >= 0 {
			incumbent := leaf.leaf.contacts[i]
			chosen := rt.cfg.Arbiter(incumbent, c)
			if chosen == incumbent && incumbent != c {
				// The candidate is dropped; the incumbent stays admitted.
				added = true
			} else {
				leaf.leaf.removeAt(i)
				leaf.leaf.append(chosen)
				added = true
			}
			break
		}

		if !leaf.leaf.full() {
			leaf.leaf.append(c)
			added = true
			break
		}

		if leaf.leaf.doNotSplit {
			toPing := rt.cfg.ContactsToPing
			if toPing > rt.cfg.ContactsPerBucket {
				toPing = rt.cfg.ContactsPerBucket
			}
			event = &ReviewEvent{
				Oldest: leaf.leaf.oldest(toPing),
				Newest: c,
			}
			added = false
			break
		}

		logrus.WithFields(logrus.Fields{
			"function": "Add",
			"depth":    depth,
			"id":       c.ID().String(),
		}).Debug("splitting full bucket")
		split(leaf, depth, localID, rt.cfg.ContactsPerBucket)
	}
	rt.mu.Unlock()

	if event != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Add",
			"id":       c.ID().String(),
			"oldest":   len(event.Oldest),
		}).Debug("bucket full and cannot split, requesting review")
		rt.notifier.emit(*event)
	}

	return added, nil
}

// Remove deletes the contact with the given identifier, if present, and
// reports whether a removal occurred. It does not merge empty siblings —
// an emptied branch simply remains (spec.md §9).
func (rt *RoutingTable) Remove(id Identifier) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	leaf, _ := descend(rt.root, id)
	i := leaf.leaf.indexOf(id)
	if i < 0 {
		return false
	}
	leaf.leaf.removeAt(i)
	return true
}

// Contains reports whether a contact with the given identifier is
// currently admitted.
func (rt *RoutingTable) Contains(id Identifier) bool {
	_, ok := rt.Get(id)
	return ok
}

// ContainsContact is Contains(c.ID()), for callers that already hold a
// Contact handle.
func (rt *RoutingTable) ContainsContact(c *Contact) bool {
	return rt.Contains(c.ID())
}

// RemoveContact is Remove(c.ID()), for callers that already hold a
// Contact handle.
func (rt *RoutingTable) RemoveContact(c *Contact) bool {
	return rt.Remove(c.ID())
}

// Get returns the contact with the given identifier and true, or nil and
// false if no such contact is admitted.
func (rt *RoutingTable) Get(id Identifier) (*Contact, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	leaf, _ := descend(rt.root, id)
	c := leaf.leaf.get(id)
	return c, c != nil
}

// Closest returns the admitted contacts ordered by ascending XOR
// distance to id, most preferred first. The result is a materialized
// snapshot: subsequent mutations to the table do not affect an
// already-returned slice. Ties are broken by the snapshot's iteration
// order, which is stable but otherwise unspecified.
func (rt *RoutingTable) Closest(id Identifier) []*Contact {
	snapshot := rt.snapshot()

	sort.SliceStable(snapshot, func(i, j int) bool {
		di := distance(snapshot[i].ID(), id)
		dj := distance(snapshot[j].ID(), id)
		return lessDistance(di, dj)
	})
	return snapshot
}

// ClosestToContact is Closest(c.ID()), for callers that already hold a
// Contact handle for the query target.
func (rt *RoutingTable) ClosestToContact(c *Contact) []*Contact {
	return rt.Closest(c.ID())
}

// Iterate returns every admitted contact as a point-in-time snapshot;
// the iteration itself does not hold the table's lock.
func (rt *RoutingTable) Iterate() []*Contact {
	return rt.snapshot()
}

func (rt *RoutingTable) snapshot() []*Contact {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return allContacts(rt.root)
}

// Count returns the total number of contacts currently admitted.
func (rt *RoutingTable) Count() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return deepCount(rt.root)
}

// Clear replaces the root with a fresh empty leaf; every prior contact
// is released.
func (rt *RoutingTable) Clear() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.root = newLeaf(rt.cfg.ContactsPerBucket)
}

// Distance computes the XOR distance between two identifiers, per
// spec.md §4.1.
func (rt *RoutingTable) Distance(a, b Identifier) []byte {
	return distance(a, b)
}
