package service

import (
	"context"
	"testing"
	"time"

	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

func TestNoteManagerPublishNote(t *testing.T) {
	store := newFakeNoteStore()
	manager := NewNoteManager(store, &fakeIndex{}, nil)

	ctx := context.Background()

	title := "First note"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if note.Public() || note.ShareToken() != nil {
		t.Fatalf("new note should be private, got public=%v token=%v", note.Public(), note.ShareToken())
	}

	published, err := manager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !published.Public() {
		t.Errorf("published note should be public")
	}

	token := published.ShareToken()
	if token == nil {
		t.Fatal("published note should carry a share token")
	}

	if e, g := 16, len(*token); e != g {
		t.Errorf("token length: expected %d, got %d", e, g)
	}
}

func TestNoteManagerRepublishRotatesToken(t *testing.T) {
	store := newFakeNoteStore()
	manager := NewNoteManager(store, &fakeIndex{}, nil)

	ctx := context.Background()

	title := "Rotated"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	first, err := manager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	firstToken := *first.ShareToken()

	second, err := manager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	secondToken := *second.ShareToken()

	if firstToken == secondToken {
		t.Errorf("republishing should rotate the token, got %q twice", firstToken)
	}

	// The stale link must not resolve anymore
	if _, err := manager.GetSharedNote(ctx, firstToken); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound for the previous token, got %+v", err)
	}

	if _, err := manager.GetSharedNote(ctx, secondToken); err != nil {
		t.Errorf("current token should resolve, got %+v", err)
	}
}

func TestNoteManagerUnpublishNote(t *testing.T) {
	store := newFakeNoteStore()
	manager := NewNoteManager(store, &fakeIndex{}, nil)

	ctx := context.Background()

	title := "Ephemeral"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	published, err := manager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	token := *published.ShareToken()

	unpublished, err := manager.UnpublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if unpublished.Public() || unpublished.ShareToken() != nil {
		t.Errorf("unpublished note should be private without a token")
	}

	if _, err := manager.GetSharedNote(ctx, token); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound after unpublish, got %+v", err)
	}
}

func TestNoteManagerPublishExhaustionLeavesNoteUntouched(t *testing.T) {
	store := newFakeNoteStore()
	store.shareTokenAlwaysTaken = true

	manager := NewNoteManager(store, &fakeIndex{}, nil)

	ctx := context.Background()

	title := "Unlucky"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := manager.PublishNote(ctx, note.ID()); !errors.Is(err, port.ErrShareTokenExhausted) {
		t.Fatalf("expected port.ErrShareTokenExhausted, got %+v", err)
	}

	reloaded, err := manager.GetNoteByID(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if reloaded.Public() || reloaded.ShareToken() != nil {
		t.Errorf("failed publication should not mutate the note")
	}
}

func TestNoteManagerPublishUnknownNote(t *testing.T) {
	store := newFakeNoteStore()
	manager := NewNoteManager(store, &fakeIndex{}, nil)

	if _, err := manager.PublishNote(context.Background(), model.NewNoteID()); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound, got %+v", err)
	}
}

func TestNoteManagerTrashRemovesFromIndex(t *testing.T) {
	store := newFakeNoteStore()
	index := &fakeIndex{}
	manager := NewNoteManager(store, index, nil)

	ctx := context.Background()

	title := "Indexed"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(index.indexed); e != g {
		t.Fatalf("indexed notes: expected %d, got %d", e, g)
	}

	if _, err := manager.TrashNote(ctx, note.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(index.deleted); e != g {
		t.Errorf("deleted index entries: expected %d, got %d", e, g)
	}
}

func TestNoteManagerSearchSkipsStaleHits(t *testing.T) {
	store := newFakeNoteStore()
	index := &fakeIndex{}
	manager := NewNoteManager(store, index, nil)

	ctx := context.Background()

	title := "Kept"
	note, err := manager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	index.results = []*port.IndexSearchResult{
		{NoteID: model.NewNoteID(), Score: 2},
		{NoteID: note.ID(), Score: 1},
	}

	notes, err := manager.SearchNotes(ctx, "kept")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(notes); e != g {
		t.Fatalf("results: expected %d, got %d", e, g)
	}

	if e, g := note.ID(), notes[0].ID(); e != g {
		t.Errorf("result id: expected %s, got %s", e, g)
	}
}

func TestNoteManagerGenerateWithoutClient(t *testing.T) {
	manager := NewNoteManager(newFakeNoteStore(), &fakeIndex{}, nil)

	if _, err := manager.GenerateNote(context.Background(), "a note about tea", ""); !errors.Is(err, ErrGenerateUnavailable) {
		t.Errorf("expected ErrGenerateUnavailable, got %+v", err)
	}
}

func TestParseNoteDraft(t *testing.T) {
	cases := []struct {
		raw     string
		title   string
		content string
	}{
		{"# Shopping list\n\n- milk\n- bread", "Shopping list", "- milk\n- bread"},
		{"Plain title\nbody", "Plain title", "body"},
		{"single line only", "", "single line only"},
	}

	for _, tc := range cases {
		draft := parseNoteDraft(tc.raw)
		if e, g := tc.title, draft.Title; e != g {
			t.Errorf("title: expected %q, got %q", e, g)
		}
		if e, g := tc.content, draft.Content; e != g {
			t.Errorf("content: expected %q, got %q", e, g)
		}
	}
}

type fakeNote struct {
	id         model.NoteID
	title      string
	content    string
	pinned     bool
	public     bool
	shareToken *string
	createdAt  time.Time
	updatedAt  time.Time
	trashedAt  *time.Time
}

func (n *fakeNote) ID() model.NoteID         { return n.id }
func (n *fakeNote) Title() string            { return n.title }
func (n *fakeNote) Content() string          { return n.content }
func (n *fakeNote) Pinned() bool             { return n.pinned }
func (n *fakeNote) Public() bool             { return n.public }
func (n *fakeNote) ShareToken() *string      { return n.shareToken }
func (n *fakeNote) Category() model.Category { return nil }
func (n *fakeNote) CreatedAt() time.Time     { return n.createdAt }
func (n *fakeNote) UpdatedAt() time.Time     { return n.updatedAt }
func (n *fakeNote) TrashedAt() *time.Time    { return n.trashedAt }

type fakeNoteStore struct {
	notes map[model.NoteID]*fakeNote

	shareTokenAlwaysTaken bool
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		notes: map[model.NoteID]*fakeNote{},
	}
}

func (s *fakeNoteStore) ShareTokenExists(ctx context.Context, token string) (bool, error) {
	if s.shareTokenAlwaysTaken {
		return true, nil
	}

	for _, n := range s.notes {
		if n.shareToken != nil && *n.shareToken == token {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeNoteStore) CreateNote(ctx context.Context, fields port.NoteFields) (model.PersistedNote, error) {
	now := time.Now()
	note := &fakeNote{
		id:        model.NewNoteID(),
		createdAt: now,
		updatedAt: now,
	}
	if fields.Title != nil {
		note.title = *fields.Title
	}
	if fields.Content != nil {
		note.content = *fields.Content
	}
	if fields.Pinned != nil {
		note.pinned = *fields.Pinned
	}

	s.notes[note.id] = note

	return note, nil
}

func (s *fakeNoteStore) UpdateNote(ctx context.Context, id model.NoteID, fields port.NoteFields) (model.PersistedNote, error) {
	note, exists := s.notes[id]
	if !exists || note.trashedAt != nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	if fields.Title != nil {
		note.title = *fields.Title
	}
	if fields.Content != nil {
		note.content = *fields.Content
	}
	if fields.Pinned != nil {
		note.pinned = *fields.Pinned
	}

	note.updatedAt = time.Now()

	return note, nil
}

func (s *fakeNoteStore) UpdateNoteShareState(ctx context.Context, id model.NoteID, state port.ShareState) (model.PersistedNote, error) {
	note, exists := s.notes[id]
	if !exists || note.trashedAt != nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	note.public = state.Public
	note.shareToken = state.ShareToken
	note.updatedAt = time.Now()

	return note, nil
}

func (s *fakeNoteStore) GetNoteByID(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	note, exists := s.notes[id]
	if !exists || note.trashedAt != nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return note, nil
}

func (s *fakeNoteStore) FindNoteByShareToken(ctx context.Context, token string) (model.PersistedNote, error) {
	for _, n := range s.notes {
		if n.trashedAt == nil && n.public && n.shareToken != nil && *n.shareToken == token {
			return n, nil
		}
	}

	return nil, errors.WithStack(port.ErrNotFound)
}

func (s *fakeNoteStore) QueryNotes(ctx context.Context, opts port.QueryNotesOptions) ([]model.PersistedNote, int64, error) {
	notes := make([]model.PersistedNote, 0)
	for _, n := range s.notes {
		if (n.trashedAt != nil) != opts.Trashed {
			continue
		}
		notes = append(notes, n)
	}

	return notes, int64(len(notes)), nil
}

func (s *fakeNoteStore) TrashNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	note, exists := s.notes[id]
	if !exists || note.trashedAt != nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	now := time.Now()
	note.trashedAt = &now
	note.public = false
	note.shareToken = nil

	return note, nil
}

func (s *fakeNoteStore) RestoreNote(ctx context.Context, id model.NoteID) (model.PersistedNote, error) {
	note, exists := s.notes[id]
	if !exists || note.trashedAt == nil {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	note.trashedAt = nil

	return note, nil
}

func (s *fakeNoteStore) PurgeNote(ctx context.Context, id model.NoteID) error {
	if _, exists := s.notes[id]; !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	delete(s.notes, id)

	return nil
}

func (s *fakeNoteStore) CountNotes(ctx context.Context) (int64, error) {
	count := int64(0)
	for _, n := range s.notes {
		if n.trashedAt == nil {
			count++
		}
	}

	return count, nil
}

func (s *fakeNoteStore) CreateCategory(ctx context.Context, label string) (model.PersistedCategory, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeNoteStore) QueryCategories(ctx context.Context) ([]model.PersistedCategory, error) {
	return nil, nil
}

func (s *fakeNoteStore) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	return errors.WithStack(port.ErrNotFound)
}

type fakeIndex struct {
	indexed []model.NoteID
	deleted []model.NoteID
	results []*port.IndexSearchResult
}

func (i *fakeIndex) Index(ctx context.Context, note model.PersistedNote) error {
	i.indexed = append(i.indexed, note.ID())
	return nil
}

func (i *fakeIndex) Delete(ctx context.Context, id model.NoteID) error {
	i.deleted = append(i.deleted, id)
	return nil
}

func (i *fakeIndex) Search(ctx context.Context, query string, opts port.IndexSearchOptions) ([]*port.IndexSearchResult, error) {
	return i.results, nil
}
