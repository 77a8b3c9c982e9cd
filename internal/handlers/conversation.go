package handlers

import (
	"net/http"

	"rojak/internal/session"
)

// ConversationResponse is the session's conversation log.
type ConversationResponse struct {
	Entries []session.ConversationEntry `json:"entries"`
}

// GetConversation returns the conversation log of the caller's session.
func GetConversation(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, ConversationResponse{Entries: sess.Conversation()})
}

// ClearConversation empties the conversation log of the caller's session.
func ClearConversation(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	sess.ClearConversation()
	w.WriteHeader(http.StatusNoContent)
}
