package store

import (
	mathrand "math/rand"

	"github.com/google/uuid"
)

var newUUID = uuid.NewRandom

// newID returns a fresh opaque identifier. Identifier generation cannot fail:
// when secure randomness is unavailable it degrades silently to a
// pseudo-random value with the same UUID shape.
func newID() string {
	if id, err := newUUID(); err == nil {
		return id.String()
	}
	return pseudoID()
}

func pseudoID() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(mathrand.Intn(256))
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant
	return uuid.UUID(b).String()
}
