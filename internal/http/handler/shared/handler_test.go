package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"
	adapterBleve "github.com/de-scientist/notely-new/internal/adapter/bleve"
	adapterGorm "github.com/de-scientist/notely-new/internal/adapter/gorm"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/de-scientist/notely-new/internal/core/service"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestHandler(t *testing.T) (*Handler, *service.NoteManager) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "notely.sqlite")

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	internalDB, err := db.DB()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	internalDB.SetMaxOpenConns(1)

	bleveIndex, err := bleve.NewMemOnly(adapterBleve.IndexMapping())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	index := adapterBleve.NewIndex(bleveIndex)

	t.Cleanup(func() {
		if err := index.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	noteManager := service.NewNoteManager(adapterGorm.NewStore(db), index, nil)

	return NewHandler(noteManager), noteManager
}

func TestSharedNoteViewer(t *testing.T) {
	handler, noteManager := newTestHandler(t)

	ctx := context.Background()

	title := "Travel checklist"
	content := "- passport\n- charger"

	note, err := noteManager.CreateNote(ctx, port.NoteFields{Title: &title, Content: &content})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	published, err := noteManager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodGet, "/"+*published.ShareToken(), nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("status: expected %d, got %d (%s)", e, g, res.Body.String())
	}

	var payload SharedNoteResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := title, payload.Note.Title; e != g {
		t.Errorf("title: expected %q, got %q", e, g)
	}

	if e, g := content, payload.Note.Content; e != g {
		t.Errorf("content: expected %q, got %q", e, g)
	}

	// The projection must not leak the token itself
	var raw map[string]map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &raw); err == nil {
		if _, leaked := raw["note"]["shareToken"]; leaked {
			t.Errorf("shared payload should not contain the share token")
		}
	}
}

func TestSharedNoteViewerUnknownToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/0123456789abcdef", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}

func TestSharedNoteViewerTrashedNote(t *testing.T) {
	handler, noteManager := newTestHandler(t)

	ctx := context.Background()

	title := "Short lived"

	note, err := noteManager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	published, err := noteManager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	token := *published.ShareToken()

	if _, err := noteManager.TrashNote(ctx, note.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodGet, "/"+token, nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}

func TestSharedNoteViewerUnpublishedNote(t *testing.T) {
	handler, noteManager := newTestHandler(t)

	ctx := context.Background()

	title := "Retracted"

	note, err := noteManager.CreateNote(ctx, port.NoteFields{Title: &title})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	published, err := noteManager.PublishNote(ctx, note.ID())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	token := *published.ShareToken()

	if _, err := noteManager.UnpublishNote(ctx, note.ID()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodGet, "/"+token, nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}
