package dht

import "errors"

// ErrNilContact is returned by Add when the candidate contact is nil.
var ErrNilContact = errors.New("dht: contact is nil")

// ErrInvalidIdentifier is returned by Add when the candidate contact's
// identifier is empty.
var ErrInvalidIdentifier = errors.New("dht: identifier is empty")
