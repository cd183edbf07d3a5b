package model

import (
	"time"

	"github.com/rs/xid"
)

type NoteID string

func NewNoteID() NoteID {
	return NoteID(xid.New().String())
}

// Note is a user-authored text entry. A note may be pinned to the top of
// listings, attached to a single category and shared publicly through an
// opaque share token.
//
// Invariant: a note is public if and only if it carries a non-nil share
// token. The token is regenerated on every publication and cleared as soon
// as the note becomes private again, so previously distributed links go
// stale on re-share.
type Note interface {
	WithID[NoteID]

	Title() string
	Content() string
	Pinned() bool

	Public() bool
	// ShareToken returns the current public share token, or nil if the
	// note is private.
	ShareToken() *string

	Category() Category
}

type PersistedNote interface {
	Note
	WithLifecycle

	// TrashedAt returns the soft-deletion timestamp, or nil if the note
	// is not in the trash.
	TrashedAt() *time.Time
}
