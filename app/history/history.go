// Package history keeps the ordered list of words successfully looked up in a session.
package history

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Storage defines methods provided by history backends
type Storage interface {
	// Append adds word to the end of session history
	Append(session string, word string) error
	// List returns session history in insertion order
	List(session string) ([]string, error)
}

// NewSessionID generates new uuid and encodes it to base64
func NewSessionID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// History is an append-only word list owned by a single session
type History struct {
	storage Storage
	session string
}

// Append adds word to history. Words are never deduplicated or removed.
func (h History) Append(word string) error {
	return h.storage.Append(h.session, word)
}

// All returns every word appended so far, oldest first
func (h History) All() ([]string, error) {
	return h.storage.List(h.session)
}

// Session returns session ID the history belongs to
func (h History) Session() string {
	return h.session
}

// New binds storage to a session
func New(storage Storage, session string) History {
	return History{storage: storage, session: session}
}
