package gorm

import (
	"time"

	"github.com/de-scientist/notely-new/internal/core/model"
	"gorm.io/gorm"
)

type Note struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Title   string
	Content string

	Pinned bool

	Public bool
	// ShareToken is nullable so private notes hold no token at all, the
	// unique index is the authoritative backstop against concurrent
	// allocations racing on the same candidate.
	ShareToken *string `gorm:"uniqueIndex"`

	Category   *Category
	CategoryID *string
}

type Category struct {
	ID string `gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Label string `gorm:"unique"`
}

type wrappedNote struct {
	n *Note
}

// ID implements [model.Note].
func (w *wrappedNote) ID() model.NoteID {
	return model.NoteID(w.n.ID)
}

// Title implements [model.Note].
func (w *wrappedNote) Title() string {
	return w.n.Title
}

// Content implements [model.Note].
func (w *wrappedNote) Content() string {
	return w.n.Content
}

// Pinned implements [model.Note].
func (w *wrappedNote) Pinned() bool {
	return w.n.Pinned
}

// Public implements [model.Note].
func (w *wrappedNote) Public() bool {
	return w.n.Public
}

// ShareToken implements [model.Note].
func (w *wrappedNote) ShareToken() *string {
	if w.n.ShareToken == nil {
		return nil
	}

	token := *w.n.ShareToken

	return &token
}

// Category implements [model.Note].
func (w *wrappedNote) Category() model.Category {
	if w.n.Category == nil {
		return nil
	}

	return &wrappedCategory{w.n.Category}
}

// CreatedAt implements [model.PersistedNote].
func (w *wrappedNote) CreatedAt() time.Time {
	return w.n.CreatedAt
}

// UpdatedAt implements [model.PersistedNote].
func (w *wrappedNote) UpdatedAt() time.Time {
	return w.n.UpdatedAt
}

// TrashedAt implements [model.PersistedNote].
func (w *wrappedNote) TrashedAt() *time.Time {
	if !w.n.DeletedAt.Valid {
		return nil
	}

	trashedAt := w.n.DeletedAt.Time

	return &trashedAt
}

var _ model.PersistedNote = &wrappedNote{}

type wrappedCategory struct {
	c *Category
}

// ID implements [model.Category].
func (w *wrappedCategory) ID() model.CategoryID {
	return model.CategoryID(w.c.ID)
}

// Label implements [model.Category].
func (w *wrappedCategory) Label() string {
	return w.c.Label
}

// CreatedAt implements [model.PersistedCategory].
func (w *wrappedCategory) CreatedAt() time.Time {
	return w.c.CreatedAt
}

// UpdatedAt implements [model.PersistedCategory].
func (w *wrappedCategory) UpdatedAt() time.Time {
	return w.c.UpdatedAt
}

var _ model.PersistedCategory = &wrappedCategory{}
