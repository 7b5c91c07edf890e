// Package dht implements a Kademlia k-bucket routing table: an
// in-memory, concurrency-safe data structure that organizes a bounded
// population of remote peer contacts by their XOR distance to a fixed
// local identifier, supports fast nearest-neighbor lookup, and applies
// Kademlia's eviction/split policy when buckets fill.
//
// # Architecture
//
// Contacts live in buckets of up to K entries, organized into a binary
// tree keyed by identifier bit-prefix. When a bucket would overflow, the
// table either splits it — if the bucket covers the local identifier —
// or emits a review notification inviting a liveness check of its oldest
// contacts, if it does not.
//
// Key components:
//
//   - Identifier / Distance / bitAt (identifier.go): the XOR-distance
//     algebra bucket placement and nearest-neighbor ordering are built on.
//   - bucket (bucket.go): a leaf's bounded, insertion-ordered contact list.
//   - node (trie.go): the binary tree of buckets and its split operation.
//   - Arbiter (arbiter.go): the pluggable tie-break policy for
//     duplicate-identifier admission.
//   - RoutingTable (table.go): the public façade wiring the above
//     together under a readers-writer lock.
//
// # Non-goals
//
// This package performs no network I/O, does not itself probe peer
// liveness, does not persist anything, and does not perform iterative
// find-node traversal. Add's review notification is advisory: ignoring
// it leaves the table unchanged for that admission attempt. A caller
// building a find-node lookup on top of this package supplies all of
// the above; RoutingTable.Closest is the primitive such a lookup
// consumes.
//
// # Routing Table
//
// The routing table organizes contacts by XOR distance from the local
// identifier:
//
//	table := dht.NewRoutingTable(dht.Config{ContactsPerBucket: 20})
//	added, err := table.Add(dht.NewContact(peerID, peerAddr))
//	closest := table.Closest(targetID)
//
// # Review Notifications
//
// When a bucket is full and cannot split, Add requests an external
// liveness check instead of silently dropping the new contact:
//
//	table.OnReview(func(ev dht.ReviewEvent) {
//	    // probe ev.Oldest; Remove whichever is unresponsive, then
//	    // retry Add(ev.Newest).
//	})
//
// # Thread Safety
//
// RoutingTable guards its tree with a sync.RWMutex; review notifications
// are dispatched after that lock is released, so a handler may safely
// call back into the table.
package dht
