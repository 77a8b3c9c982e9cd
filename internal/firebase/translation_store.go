package firebase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rojak/internal/contextutil"
	"rojak/internal/storage"
)

// translationDoc is the Firestore shape of a saved translation.
type translationDoc struct {
	User       string    `firestore:"user"`
	InputText  string    `firestore:"input_text"`
	OutputText string    `firestore:"output_text"`
	Timestamp  time.Time `firestore:"timestamp"`
}

// TranslationStore persists translations in the Firestore "translations" collection.
type TranslationStore struct {
	client *firestore.Client
}

// NewTranslationStore creates a new TranslationStore.
func NewTranslationStore(client *firestore.Client) *TranslationStore {
	return &TranslationStore{client: client}
}

// Save adds rec as a new document. The timestamp is assigned by the server.
func (s *TranslationStore) Save(ctx context.Context, rec *storage.TranslationRecord) error {
	ref, wr, err := s.client.Collection(translationsCollection).Add(ctx, map[string]interface{}{
		"user":        rec.User,
		"input_text":  rec.InputText,
		"output_text": rec.OutputText,
		"timestamp":   firestore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to add translation: %w", err)
	}

	rec.ID = ref.ID
	// ServerTimestamp resolves to the commit time of the write
	rec.Timestamp = wr.UpdateTime
	return nil
}

// ListByUser returns the user's translations, newest first.
func (s *TranslationStore) ListByUser(ctx context.Context, user string) ([]storage.TranslationRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	iter := s.client.Collection(translationsCollection).Where("user", "==", user).Documents(ctx)
	defer iter.Stop()

	var records []storage.TranslationRecord
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query translations: %w", err)
		}

		var doc translationDoc
		if err := snap.DataTo(&doc); err != nil {
			logger.WarnContext(ctx, "skipping malformed translation document", "id", snap.Ref.ID, "error", err)
			continue
		}
		records = append(records, storage.TranslationRecord{
			ID:         snap.Ref.ID,
			User:       doc.User,
			InputText:  doc.InputText,
			OutputText: doc.OutputText,
			Timestamp:  doc.Timestamp,
		})
	}

	// Sorted here so the query needs no composite index
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// Delete removes the document with id if it belongs to user.
func (s *TranslationStore) Delete(ctx context.Context, user, id string) error {
	ref := s.client.Collection(translationsCollection).Doc(id)

	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get translation: %w", err)
	}

	owner, err := snap.DataAt("user")
	if err != nil || owner != user {
		return storage.ErrNotFound
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}
	return nil
}

// CountByUser returns how many translations the user has saved.
func (s *TranslationStore) CountByUser(ctx context.Context, user string) (int, error) {
	iter := s.client.Collection(translationsCollection).Where("user", "==", user).Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count translations: %w", err)
		}
		count++
	}
	return count, nil
}

// Ping checks that Firestore answers queries.
func (s *TranslationStore) Ping(ctx context.Context) error {
	iter := s.client.Collection(translationsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore unavailable: %w", err)
	}
	return nil
}
