package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/de-scientist/notely-new/internal/core/service"
	"github.com/pkg/errors"
)

type Note struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`

	Public     bool    `json:"public"`
	ShareToken *string `json:"shareToken,omitempty"`

	Category *CategoryHeader `json:"category,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	TrashedAt *time.Time `json:"trashedAt,omitempty"`
}

func toNote(n model.PersistedNote) Note {
	note := Note{
		ID:         string(n.ID()),
		Title:      n.Title(),
		Content:    n.Content(),
		Pinned:     n.Pinned(),
		Public:     n.Public(),
		ShareToken: n.ShareToken(),
		CreatedAt:  n.CreatedAt(),
		UpdatedAt:  n.UpdatedAt(),
		TrashedAt:  n.TrashedAt(),
	}

	if category := n.Category(); category != nil {
		note.Category = &CategoryHeader{
			ID:    string(category.ID()),
			Label: category.Label(),
		}
	}

	return note
}

func sendJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := encoder.Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
	}
}

type ListNotesResponse struct {
	Notes []Note `json:"notes"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := getQueryPage(query, 0)
	limit := getQueryLimit(query, 10)

	ctx := r.Context()

	opts := port.QueryNotesOptions{
		Page:    &page,
		Limit:   &limit,
		Trashed: query.Get("trashed") == "true",
	}

	if rawCategory := query.Get("category"); rawCategory != "" {
		category := model.CategoryID(rawCategory)
		opts.Category = &category
	}

	notes, total, err := h.noteManager.QueryNotes(ctx, opts)
	if err != nil {
		slog.ErrorContext(ctx, "could not query notes", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := ListNotesResponse{
		Notes: make([]Note, 0, len(notes)),
		Total: total,
		Page:  page,
		Limit: limit,
	}

	for _, n := range notes {
		res.Notes = append(res.Notes, toNote(n))
	}

	sendJSON(w, r, http.StatusOK, res)
}

type CreateNoteRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Pinned   bool    `json:"pinned"`
	Category *string `json:"category,omitempty"`
}

type NoteResponse struct {
	Note Note `json:"note"`
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	fields := port.NoteFields{
		Title:   &req.Title,
		Content: &req.Content,
		Pinned:  &req.Pinned,
	}

	if req.Category != nil {
		category := model.CategoryID(*req.Category)
		fields.Category = &category
	}

	note, err := h.noteManager.CreateNote(ctx, fields)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			// The referenced category does not exist
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		slog.ErrorContext(ctx, "could not create note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusCreated, NoteResponse{Note: toNote(note)})
}

func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	note, err := h.noteManager.GetNoteByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not get note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, NoteResponse{Note: toNote(note)})
}

type UpdateNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Pinned   *bool   `json:"pinned,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	fields := port.NoteFields{
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
	}

	if req.Category != nil {
		category := model.CategoryID(*req.Category)
		fields.Category = &category
	}

	note, err := h.noteManager.UpdateNote(ctx, noteID, fields)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not update note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, NoteResponse{Note: toNote(note)})
}

func (h *Handler) handleTrashNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	note, err := h.noteManager.TrashNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not trash note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, NoteResponse{Note: toNote(note)})
}

func (h *Handler) handleRestoreNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	note, err := h.noteManager.RestoreNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not restore note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusOK, NoteResponse{Note: toNote(note)})
}

func (h *Handler) handlePurgeNote(w http.ResponseWriter, r *http.Request) {
	noteID := model.NoteID(r.PathValue("noteID"))

	ctx := r.Context()

	if err := h.noteManager.PurgeNote(ctx, noteID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not purge note", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type SearchNotesResponse struct {
	Notes []Note `json:"notes"`
}

func (h *Handler) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := query.Get("q")
	if q == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	searchOptions := make([]service.NoteManagerSearchOptionFunc, 0)

	if limit := getQueryLimit(query, 0); limit > 0 {
		searchOptions = append(searchOptions, service.WithNoteManagerSearchMaxResults(limit))
	}

	if rawCategory := query.Get("category"); rawCategory != "" {
		searchOptions = append(searchOptions, service.WithNoteManagerSearchCategory(model.CategoryID(rawCategory)))
	}

	notes, err := h.noteManager.SearchNotes(ctx, q, searchOptions...)
	if err != nil {
		slog.ErrorContext(ctx, "could not search notes", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := SearchNotesResponse{
		Notes: make([]Note, 0, len(notes)),
	}

	for _, n := range notes {
		res.Notes = append(res.Notes, toNote(n))
	}

	sendJSON(w, r, http.StatusOK, res)
}
