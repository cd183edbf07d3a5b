package api

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/bornholm/go-x/slogx"
	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

type ShareNoteResponse struct {
	Note Note `json:"note"`

	// PublicPath is the server-relative path under which the note is now
	// publicly readable.
	PublicPath string `json:"publicPath"`
}

// handleShareNote publishes a note under a freshly allocated share token.
// Sharing an already public note rotates its token, the previous link goes
// stale.
func (h *Handler) handleShareNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	note, err := h.noteManager.PublishNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		if errors.Is(err, port.ErrShareTokenExhausted) {
			// Logged distinctly so operators can spot abnormal collision
			// rates, the client only sees a generic failure
			slog.ErrorContext(ctx, "share token allocation exhausted", slogx.Error(err), slog.String("note", string(noteID)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		slog.ErrorContext(ctx, "could not share note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := ShareNoteResponse{
		Note: toNote(note),
	}

	if token := note.ShareToken(); token != nil {
		res.PublicPath = path.Join("/shared", *token)
	}

	sendJSON(w, r, http.StatusOK, res)
}

func (h *Handler) handleUnshareNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	note, err := h.noteManager.UnpublishNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not unshare note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, NoteResponse{Note: toNote(note)})
}
