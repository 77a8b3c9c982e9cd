package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rojak/internal/service"
)

// HistoryHandler handles HTTP requests for saved translations.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// SavedTranslationResponse is one saved translation.
type SavedTranslationResponse struct {
	ID         string `json:"id"`
	InputText  string `json:"input_text"`
	OutputText string `json:"output_text"`
	Timestamp  string `json:"timestamp"`
}

// HistoryResponse lists the caller's saved translations.
type HistoryResponse struct {
	Translations []SavedTranslationResponse `json:"translations"`
}

// List returns the logged-in user's translations, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	saved, err := h.historyService.List(ctx, sess.User())
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load translations", "Failed to load translations")
		return
	}

	resp := HistoryResponse{Translations: make([]SavedTranslationResponse, 0, len(saved))}
	for _, s := range saved {
		resp.Translations = append(resp.Translations, SavedTranslationResponse{
			ID:         s.ID,
			InputText:  s.Input,
			OutputText: s.Output,
			Timestamp:  s.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Delete removes the translation named by the {id} URL parameter.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.historyService.Delete(ctx, sess.User(), id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete translation", "Failed to delete translation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
