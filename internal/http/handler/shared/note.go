package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/go-x/slogx"
)

// SharedNote is the public projection of a note. Share token, pin state
// and category stay private to the owner.
type SharedNote struct {
	Title   string `json:"title"`
	Content string `json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SharedNoteResponse struct {
	Note SharedNote `json:"note"`
}

func (h *Handler) getSharedNote(w http.ResponseWriter, r *http.Request) {
	note := ctxSharedNote(r.Context())

	res := SharedNoteResponse{
		Note: SharedNote{
			Title:     note.Title(),
			Content:   note.Content(),
			CreatedAt: note.CreatedAt(),
			UpdatedAt: note.UpdatedAt(),
		},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	w.Header().Set("Content-Type", "application/json")

	if err := encoder.Encode(res); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(err))
	}
}
