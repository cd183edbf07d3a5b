package port

import (
	"context"

	"github.com/de-scientist/notely-new/internal/core/model"
)

// NoteFields carries the mutable attributes of a note. Nil pointers leave
// the corresponding attribute untouched.
type NoteFields struct {
	Title    *string
	Content  *string
	Pinned   *bool
	Category *model.CategoryID
}

// ShareState is the public-visibility half of a note update. Public and
// ShareToken always change together: either both set, or both cleared.
type ShareState struct {
	Public     bool
	ShareToken *string
}

type QueryNotesOptions struct {
	Page  *int
	Limit *int

	// Category restricts results to a single category.
	Category *model.CategoryID

	// Trashed selects soft-deleted notes instead of live ones.
	Trashed bool
}

type ShareTokenChecker interface {
	// ShareTokenExists reports whether any note is currently bound to the
	// given share token.
	ShareTokenExists(ctx context.Context, token string) (bool, error)
}

type NoteStore interface {
	ShareTokenChecker

	// CreateNote creates a new note with the given fields
	CreateNote(ctx context.Context, fields NoteFields) (model.PersistedNote, error)

	// UpdateNote applies the given field changes to an existing note, or
	// returns port.ErrNotFound
	UpdateNote(ctx context.Context, id model.NoteID, fields NoteFields) (model.PersistedNote, error)

	// UpdateNoteShareState updates the public flag and share token of a
	// note as a single write
	UpdateNoteShareState(ctx context.Context, id model.NoteID, state ShareState) (model.PersistedNote, error)

	// GetNoteByID returns a live note by its id, or port.ErrNotFound
	GetNoteByID(ctx context.Context, id model.NoteID) (model.PersistedNote, error)

	// FindNoteByShareToken returns the public note bound to the given
	// token, or port.ErrNotFound
	FindNoteByShareToken(ctx context.Context, token string) (model.PersistedNote, error)

	// QueryNotes lists notes, pinned first then most recently updated,
	// with the total count of matching notes
	QueryNotes(ctx context.Context, opts QueryNotesOptions) ([]model.PersistedNote, int64, error)

	// TrashNote soft-deletes a note, clearing its public share state in
	// the same transaction so no public link serves trashed content
	TrashNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error)

	// RestoreNote brings a trashed note back to the live set
	RestoreNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error)

	// PurgeNote permanently deletes a note, trashed or not
	PurgeNote(ctx context.Context, id model.NoteID) error

	// CountNotes returns the total number of live notes
	CountNotes(ctx context.Context) (int64, error)

	// CreateCategory creates a category with the given unique label
	CreateCategory(ctx context.Context, label string) (model.PersistedCategory, error)

	// QueryCategories lists all categories
	QueryCategories(ctx context.Context) ([]model.PersistedCategory, error)

	// DeleteCategory deletes a category and detaches its notes
	DeleteCategory(ctx context.Context, id model.CategoryID) error
}
