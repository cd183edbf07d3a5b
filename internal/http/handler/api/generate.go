package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/de-scientist/notely-new/internal/core/service"
	"github.com/pkg/errors"
)

type GenerateNoteRequest struct {
	// Request is the free-form description of the note to draft.
	Request string `json:"request"`

	// Existing optionally carries the content of a note being rewritten.
	Existing string `json:"existing,omitempty"`
}

type GenerateNoteResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) handleGenerateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GenerateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Request) == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	draft, err := h.noteManager.GenerateNote(ctx, req.Request, req.Existing)
	if err != nil {
		if errors.Is(err, service.ErrGenerateUnavailable) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		slog.ErrorContext(ctx, "could not generate note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, GenerateNoteResponse{
		Title:   draft.Title,
		Content: draft.Content,
	})
}
