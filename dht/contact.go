package dht

import (
	"net"
	"time"
)

// Contact is a remote peer record the routing table organizes by XOR
// distance to the table's local identifier. Identity for all table
// purposes is defined solely by ID byte-equality (see Identifier.Equal);
// Address, LastSeen, and Payload are forwarded unchanged and never
// consulted by the table's own add/remove/closest logic.
//
// A Contact is owned by the table once admitted via RoutingTable.Add, and
// released on removal, replacement, or Clear.
type Contact struct {
	id       Identifier
	Address  net.Addr
	LastSeen time.Time
	Payload  any
}

// NewContact creates a contact with the given identifier and address.
// The identifier is copied so later mutation of the caller's slice does
// not affect the contact the table holds.
func NewContact(id Identifier, addr net.Addr) *Contact {
	cp := make(Identifier, len(id))
	copy(cp, id)
	return &Contact{
		id:       cp,
		Address:  addr,
		LastSeen: time.Now(),
	}
}

// ID returns the contact's identifier.
func (c *Contact) ID() Identifier {
	return c.id
}

// Touch updates LastSeen to now, marking the contact as recently active.
func (c *Contact) Touch() {
	c.LastSeen = time.Now()
}
