package prox

import (
	"bytes"

	"github.com/google/uuid"
)

// ObjectID uniquely identifies an object. IDs are opaque 16-byte values,
// totally ordered by lexicographic byte comparison.
type ObjectID = uuid.UUID

// idLess reports whether a sorts before b in byte order.
func idLess(a, b ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

type QueryEventType int

const (
	// Added means the object newly satisfies the query.
	Added QueryEventType = iota
	// Removed means the object no longer satisfies the query.
	Removed
)

func (t QueryEventType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// QueryEvent is one element of the delta stream a query produces each tick.
type QueryEvent struct {
	Type QueryEventType
	ID   ObjectID
}
