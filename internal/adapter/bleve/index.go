package bleve

import (
	"context"
	"os"

	"github.com/blevesearch/bleve/v2"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

type Index struct {
	index bleve.Index
}

// Index implements [port.Index].
func (i *Index) Index(ctx context.Context, note model.PersistedNote) error {
	data := map[string]any{
		"_type":   "note",
		"title":   note.Title(),
		"content": note.Content(),
	}

	if category := note.Category(); category != nil {
		data["category"] = string(category.ID())
	}

	if err := i.index.Index(string(note.ID()), data); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete implements [port.Index].
func (i *Index) Delete(ctx context.Context, id model.NoteID) error {
	if err := i.index.Delete(string(id)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Search implements [port.Index].
func (i *Index) Search(ctx context.Context, query string, opts port.IndexSearchOptions) ([]*port.IndexSearchResult, error) {
	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(2)

	contentQuery := bleve.NewMatchQuery(query)
	contentQuery.SetField("content")

	queries := []bleveQuery.Query{
		bleve.NewDisjunctionQuery(titleQuery, contentQuery),
	}

	if opts.Category != nil {
		categoryQuery := bleve.NewTermQuery(string(*opts.Category))
		categoryQuery.SetField("category")
		queries = append(queries, categoryQuery)
	}

	req := bleve.NewSearchRequest(bleve.NewConjunctionQuery(queries...))

	req.From = 0

	if opts.MaxResults > 0 {
		req.Size = opts.MaxResults
	}

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	results := make([]*port.IndexSearchResult, 0, len(result.Hits))
	for _, r := range result.Hits {
		results = append(results, &port.IndexSearchResult{
			NoteID: model.NoteID(r.ID),
			Score:  r.Score,
		})
	}

	return results, nil
}

func (i *Index) Close() error {
	if err := i.index.Close(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewIndex(index bleve.Index) *Index {
	return &Index{index: index}
}

// Open opens the index at the given path, creating it with the note
// mapping if it does not exist yet.
func Open(dsn string) (*Index, error) {
	index, err := bleve.Open(dsn)
	if err != nil {
		if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithStack(err)
		}

		index, err = bleve.New(dsn, IndexMapping())
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return NewIndex(index), nil
}

var _ port.Index = &Index{}
