package handlers

import (
	"net/http"
	"strings"
	"time"

	"rojak/internal/contextutil"
	"rojak/internal/service"
	"rojak/internal/session"
)

// TranslateHandler handles HTTP requests for translation.
type TranslateHandler struct {
	translationService service.TranslationService
}

// NewTranslateHandler creates a new TranslateHandler.
func NewTranslateHandler(translationService service.TranslationService) *TranslateHandler {
	return &TranslateHandler{
		translationService: translationService,
	}
}

// TranslateRequest represents the HTTP request payload for translation.
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslateResponse represents the HTTP response payload for translation.
type TranslateResponse struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Timestamp string `json:"timestamp"`
	Saved     bool   `json:"saved"`
	RecordID  string `json:"record_id,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// ServeHTTP handles one submission. Submissions within a session never
// overlap; a second one while the first is running gets 409.
func (h *TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req TranslateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	if !sess.TryLock() {
		logger.WarnContext(ctx, "translation already in progress for session")
		writeError(w, http.StatusConflict, "A translation is already in progress")
		return
	}
	defer sess.Unlock()

	if strings.TrimSpace(req.Text) != "" {
		sess.Append(session.ConversationEntry{Role: session.RoleUser, Text: req.Text})
	}

	svcResp, err := h.translationService.Translate(ctx, service.TranslateRequest{
		Text: req.Text,
		User: sess.User(),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Translation error", "Translation error")
		return
	}

	sess.Append(session.ConversationEntry{Role: session.RoleBot, Text: svcResp.Output})

	writeJSON(ctx, w, http.StatusOK, TranslateResponse{
		Input:     svcResp.Input,
		Output:    svcResp.Output,
		Timestamp: svcResp.Timestamp.UTC().Format(time.RFC3339),
		Saved:     svcResp.Saved,
		RecordID:  svcResp.RecordID,
		Warning:   svcResp.Warning,
	})
}
