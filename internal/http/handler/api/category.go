package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/go-x/slogx"
	"github.com/de-scientist/notely-new/internal/core/model"
	"github.com/de-scientist/notely-new/internal/core/port"
	"github.com/pkg/errors"
)

type CategoryHeader struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type ListCategoriesResponse struct {
	Categories []CategoryHeader `json:"categories"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.noteManager.QueryCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not query categories", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res := ListCategoriesResponse{
		Categories: make([]CategoryHeader, 0, len(categories)),
	}

	for _, c := range categories {
		res.Categories = append(res.Categories, CategoryHeader{
			ID:    string(c.ID()),
			Label: c.Label(),
		})
	}

	sendJSON(w, r, http.StatusOK, res)
}

type CreateCategoryRequest struct {
	Label string `json:"label"`
}

type CategoryResponse struct {
	Category CategoryHeader `json:"category"`
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	category, err := h.noteManager.CreateCategory(ctx, label)
	if err != nil {
		slog.ErrorContext(ctx, "could not create category", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sendJSON(w, r, http.StatusCreated, CategoryResponse{
		Category: CategoryHeader{
			ID:    string(category.ID()),
			Label: category.Label(),
		},
	})
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := model.CategoryID(r.PathValue("categoryID"))

	ctx := r.Context()

	if err := h.noteManager.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not delete category", slogx.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
