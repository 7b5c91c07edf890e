package dht

// Arbiter resolves a duplicate-identifier admission: it is called with
// the incumbent contact already in the table and the candidate that was
// just submitted, both sharing the same identifier, and must return
// exactly one of the two — returning anything else is undefined
// (spec.md §4.4).
type Arbiter func(incumbent, candidate *Contact) *Contact

// DefaultArbiter implements Kademlia's "prefer old, live contacts"
// policy: it always keeps the incumbent.
func DefaultArbiter(incumbent, candidate *Contact) *Contact {
	return incumbent
}
