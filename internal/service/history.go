package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_history_service.go -package=mocks rojak/internal/service HistoryService

import (
	"context"
	"errors"
	"strings"
	"time"

	"rojak/internal/contextutil"
	"rojak/internal/storage"
)

// SavedTranslation is a translation stored for a user.
type SavedTranslation struct {
	ID        string
	Input     string
	Output    string
	Timestamp time.Time
}

// HistoryService lists and deletes a user's saved translations.
type HistoryService interface {
	// List returns the user's translations, newest first.
	List(ctx context.Context, user string) ([]SavedTranslation, error)
	// Delete removes one translation owned by the user.
	Delete(ctx context.Context, user, id string) error
}

type historyService struct {
	store TranslationStore
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store TranslationStore) HistoryService {
	return &historyService{store: store}
}

func (s *historyService) List(ctx context.Context, user string) ([]SavedTranslation, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if user == "" {
		return nil, ErrUnauthenticated
	}

	records, err := s.store.ListByUser(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list translations", "user", user, "error", err)
		return nil, WrapError(err, "failed to list translations")
	}

	saved := make([]SavedTranslation, 0, len(records))
	for _, rec := range records {
		saved = append(saved, SavedTranslation{
			ID:        rec.ID,
			Input:     rec.InputText,
			Output:    rec.OutputText,
			Timestamp: rec.Timestamp,
		})
	}
	return saved, nil
}

func (s *historyService) Delete(ctx context.Context, user, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if user == "" {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	if err := s.store.Delete(ctx, user, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to delete translation", "user", user, "id", id, "error", err)
		return WrapError(err, "failed to delete translation")
	}

	logger.InfoContext(ctx, "translation deleted", "user", user, "id", id)
	return nil
}
