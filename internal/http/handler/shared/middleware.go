package shared

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

type contextKey string

const (
	sharedNoteContextKey contextKey = "sharedNote"
)

func ctxSharedNote(ctx context.Context) model.PersistedNote {
	raw := ctx.Value(sharedNoteContextKey)
	if raw == nil {
		panic(errors.New("no shared note in context"))
	}

	note, ok := raw.(model.PersistedNote)
	if !ok {
		panic(errors.Errorf("unexpected context value type '%T'", raw))
	}

	return note
}

func (h *Handler) assertToken(next http.HandlerFunc) http.Handler {
	var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		token := r.PathValue("shareToken")

		ctx := r.Context()

		note, err := h.noteManager.GetSharedNote(ctx, token)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}

			slog.ErrorContext(ctx, "could not find shared note", slogx.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx = context.WithValue(ctx, sharedNoteContextKey, note)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	}
	return fn
}
