package shared

import (
	"net/http"

	"github.com/de-scientist/notely-new/internal/core/service"
)

// Handler is the unauthenticated read-only viewer for publicly shared
// notes.
type Handler struct {
	mux         *http.ServeMux
	noteManager *service.NoteManager
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(noteManager *service.NoteManager) *Handler {
	h := &Handler{
		mux:         http.NewServeMux(),
		noteManager: noteManager,
	}

	h.mux.Handle("GET /{shareToken}", h.assertToken(http.HandlerFunc(h.getSharedNote)))

	return h
}

var _ http.Handler = &Handler{}
