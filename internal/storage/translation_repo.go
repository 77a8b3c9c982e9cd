package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when creating a record whose key is taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidCredentials is returned when an email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TranslationRepo stores translations in SQLite.
type TranslationRepo struct {
	db *sql.DB
}

// NewTranslationRepo creates a new TranslationRepo.
func NewTranslationRepo(db *sql.DB) *TranslationRepo {
	return &TranslationRepo{db: db}
}

// Save inserts rec, assigning its ID and timestamp.
func (r *TranslationRepo) Save(ctx context.Context, rec *TranslationRecord) error {
	rec.ID = uuid.New().String()
	rec.Timestamp = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO translations (id, user, input_text, output_text, timestamp) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.User, rec.InputText, rec.OutputText, rec.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert translation: %w", err)
	}
	return nil
}

// ListByUser returns the user's translations, newest first.
func (r *TranslationRepo) ListByUser(ctx context.Context, user string) ([]TranslationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user, input_text, output_text, timestamp FROM translations WHERE user = ? ORDER BY timestamp DESC, id",
		user,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	var records []TranslationRecord
	for rows.Next() {
		var rec TranslationRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.User, &rec.InputText, &rec.OutputText, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		if rec.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate translations: %w", err)
	}

	return records, nil
}

// Delete removes the translation with id if it belongs to user.
// Returns ErrNotFound otherwise.
func (r *TranslationRepo) Delete(ctx context.Context, user, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM translations WHERE id = ? AND user = ?",
		id, user,
	)
	if err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns how many translations the user has saved.
func (r *TranslationRepo) CountByUser(ctx context.Context, user string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM translations WHERE user = ?", user).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return count, nil
}

// Ping checks that the database is reachable.
func (r *TranslationRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
