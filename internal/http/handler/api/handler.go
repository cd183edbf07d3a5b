package api

import (
	"net/http"

	"github.com/de-scientist/notely-new/internal/core/service"
	"github.com/de-scientist/notely-new/internal/http/authz"
)

type Handler struct {
	noteManager *service.NoteManager
	mux         *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(noteManager *service.NoteManager) *Handler {
	h := &Handler{
		noteManager: noteManager,
		mux:         &http.ServeMux{},
	}

	assertUser := authz.Middleware(authz.OneOf(authz.Has(authz.RoleUser), authz.Has(authz.RoleAdmin)))
	assertAdmin := authz.Middleware(authz.Has(authz.RoleAdmin))

	h.mux.Handle("GET /notes", assertUser(http.HandlerFunc(h.handleListNotes)))
	h.mux.Handle("POST /notes", assertUser(http.HandlerFunc(h.handleCreateNote)))
	h.mux.Handle("GET /notes/search", assertUser(http.HandlerFunc(h.handleSearchNotes)))
	h.mux.Handle("POST /notes/generate", assertUser(http.HandlerFunc(h.handleGenerateNote)))
	h.mux.Handle("GET /notes/{noteID}", assertUser(http.HandlerFunc(h.handleGetNote)))
	h.mux.Handle("PUT /notes/{noteID}", assertUser(http.HandlerFunc(h.handleUpdateNote)))
	h.mux.Handle("DELETE /notes/{noteID}", assertUser(http.HandlerFunc(h.handleTrashNote)))
	h.mux.Handle("POST /notes/{noteID}/restore", assertUser(http.HandlerFunc(h.handleRestoreNote)))
	h.mux.Handle("DELETE /notes/{noteID}/purge", assertAdmin(http.HandlerFunc(h.handlePurgeNote)))
	h.mux.Handle("POST /notes/{noteID}/share", assertUser(http.HandlerFunc(h.handleShareNote)))
	h.mux.Handle("DELETE /notes/{noteID}/share", assertUser(http.HandlerFunc(h.handleUnshareNote)))

	h.mux.Handle("GET /categories", assertUser(http.HandlerFunc(h.handleListCategories)))
	h.mux.Handle("POST /categories", assertUser(http.HandlerFunc(h.handleCreateCategory)))
	h.mux.Handle("DELETE /categories/{categoryID}", assertUser(http.HandlerFunc(h.handleDeleteCategory)))

	return h
}

var _ http.Handler = &Handler{}
