package port

import (
	"context"

	"github.com/de-scientist/notely-new/internal/core/model"
)

type Index interface {
	Index(ctx context.Context, note model.PersistedNote) error
	Delete(ctx context.Context, id model.NoteID) error
	Search(ctx context.Context, query string, opts IndexSearchOptions) ([]*IndexSearchResult, error)
}

type IndexSearchOptions struct {
	MaxResults int

	// Category restricts matches to notes of a single category.
	Category *model.CategoryID
}

type IndexSearchResult struct {
	NoteID model.NoteID
	Score  float64
}
