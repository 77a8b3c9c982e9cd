package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"rojak/internal/service"
	"rojak/internal/service/mocks"
	"rojak/internal/session"
)

func TestHistoryHandler_List(t *testing.T) {
	ts := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		user       string
		mockSetup  func(*mocks.MockHistoryService)
		wantStatus int
		wantIDs    []string
	}{
		{
			name: "logged in",
			user: "ali@example.com",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().List(gomock.Any(), "ali@example.com").Return([]service.SavedTranslation{
					{ID: "b", Input: "Saya lapar", Output: "I am hungry.", Timestamp: ts},
					{ID: "a", Input: "Jom", Output: "Let's go.", Timestamp: ts.Add(-time.Hour)},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantIDs:    []string{"b", "a"},
		},
		{
			name: "not logged in",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().List(gomock.Any(), "").Return(nil, service.ErrUnauthenticated)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			user: "ali@example.com",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().List(gomock.Any(), "ali@example.com").Return(nil, errors.New("unavailable"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockHistoryService(ctrl)
			tt.mockSetup(mockService)
			handler := NewHistoryHandler(mockService)

			sess := session.NewManager(0).Create()
			sess.SetUser(tt.user)

			w := httptest.NewRecorder()
			handler.List(w, newSessionRequest(http.MethodGet, "/api/translations", nil, sess))

			if w.Code != tt.wantStatus {
				t.Fatalf("List() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantIDs == nil {
				return
			}

			var resp HistoryResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Translations) != len(tt.wantIDs) {
				t.Fatalf("List() returned %d translations", len(resp.Translations))
			}
			for i, id := range tt.wantIDs {
				if resp.Translations[i].ID != id {
					t.Errorf("translations[%d].ID = %q, want %q", i, resp.Translations[i].ID, id)
				}
			}
			if resp.Translations[0].Timestamp != "2024-05-01T08:30:00Z" || resp.Translations[0].OutputText != "I am hungry." {
				t.Errorf("translations[0] = %+v", resp.Translations[0])
			}
		})
	}
}

func TestHistoryHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		user       string
		id         string
		mockSetup  func(*mocks.MockHistoryService)
		wantStatus int
	}{
		{
			name: "owner deletes",
			user: "ali@example.com",
			id:   "rec-1",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().Delete(gomock.Any(), "ali@example.com", "rec-1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "unknown record",
			user: "ali@example.com",
			id:   "missing",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().Delete(gomock.Any(), "ali@example.com", "missing").Return(service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "not logged in",
			id:   "rec-1",
			mockSetup: func(m *mocks.MockHistoryService) {
				m.EXPECT().Delete(gomock.Any(), "", "rec-1").Return(service.ErrUnauthenticated)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockHistoryService(ctrl)
			tt.mockSetup(mockService)
			handler := NewHistoryHandler(mockService)

			sess := session.NewManager(0).Create()
			sess.SetUser(tt.user)

			req := newSessionRequest(http.MethodDelete, "/api/translations/"+tt.id, nil, sess)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.Delete(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Delete() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
