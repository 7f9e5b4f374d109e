// Package peer defines the data model shared across the room runtime: peer
// and room identifiers, ICE server configuration, the signalling wire
// union, and the internal command/event unions that cross actor
// boundaries.
package peer

import "github.com/google/uuid"

// ID is a peer's 128-bit identifier, supplied by the client and echoed
// back rather than minted by the server. Equality is by the full 128
// bits.
type ID uuid.UUID

// ParseID validates s as a UUID string and returns the corresponding ID.
// The server accepts any well-formed UUID; malformed values are the
// caller's cue to terminate the session immediately.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// RoomID is a free-form string key chosen by the client in its Join
// message.
type RoomID string
