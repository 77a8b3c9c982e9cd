package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rojak/internal/session"
)

func TestGetConversation(t *testing.T) {
	sess := session.NewManager(0).Create()
	sess.Append(
		session.ConversationEntry{Role: session.RoleUser, Text: "Jom makan"},
		session.ConversationEntry{Role: session.RoleBot, Text: "Let's eat."},
	)

	w := httptest.NewRecorder()
	GetConversation(w, newSessionRequest(http.MethodGet, "/api/conversation", nil, sess))

	if w.Code != http.StatusOK {
		t.Fatalf("GetConversation() status = %v", w.Code)
	}
	var resp ConversationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 || resp.Entries[1].Role != session.RoleBot || resp.Entries[1].Text != "Let's eat." {
		t.Errorf("entries = %+v", resp.Entries)
	}
}

func TestGetConversation_Empty(t *testing.T) {
	sess := session.NewManager(0).Create()

	w := httptest.NewRecorder()
	GetConversation(w, newSessionRequest(http.MethodGet, "/api/conversation", nil, sess))

	if w.Code != http.StatusOK {
		t.Fatalf("GetConversation() status = %v", w.Code)
	}
	if body := w.Body.String(); body != "{\"entries\":[]}\n" {
		t.Errorf("body = %q, want an empty entries array", body)
	}
}

func TestClearConversation(t *testing.T) {
	sess := session.NewManager(0).Create()
	sess.Append(session.ConversationEntry{Role: session.RoleUser, Text: "hai"})

	w := httptest.NewRecorder()
	ClearConversation(w, newSessionRequest(http.MethodDelete, "/api/conversation", nil, sess))

	if w.Code != http.StatusNoContent {
		t.Errorf("ClearConversation() status = %v", w.Code)
	}
	if n := len(sess.Conversation()); n != 0 {
		t.Errorf("conversation has %d entries after clear", n)
	}
}

func TestConversation_NoSession(t *testing.T) {
	w := httptest.NewRecorder()
	GetConversation(w, newSessionRequest(http.MethodGet, "/api/conversation", nil, nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("GetConversation() without session status = %v", w.Code)
	}
}
