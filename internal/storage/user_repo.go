package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// UserRepo is a local identity provider backed by SQLite.
// Passwords are stored as bcrypt hashes.
type UserRepo struct {
	db       *sql.DB
	resetURL string
	cost     int
}

// NewUserRepo creates a new UserRepo. resetURL is the page password reset
// links point at; the reset token is appended as the "token" query parameter.
func NewUserRepo(db *sql.DB, resetURL string) *UserRepo {
	return &UserRepo{
		db:       db,
		resetURL: resetURL,
		cost:     bcrypt.DefaultCost,
	}
}

// CreateUser registers a new account. Returns ErrAlreadyExists if the email is taken.
func (r *UserRepo) CreateUser(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?, ?)",
		email, string(hash),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// SignIn checks the email/password pair and returns the authenticated identifier.
func (r *UserRepo) SignIn(ctx context.Context, email, password string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, "SELECT password_hash FROM users WHERE email = ?", email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return email, nil
}

// GetUser returns the account for email, or ErrNotFound.
func (r *UserRepo) GetUser(ctx context.Context, email string) (*UserRecord, error) {
	var user UserRecord
	var pic sql.NullString
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		"SELECT email, profile_pic_url, created_at FROM users WHERE email = ?",
		email,
	).Scan(&user.Email, &pic, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.ProfilePicURL = pic.String
	if user.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// PasswordResetLink records a reset token for email and returns the link
// carrying it. Returns ErrNotFound for unknown emails. Delivery is up to the caller.
func (r *UserRepo) PasswordResetLink(ctx context.Context, email string) (string, error) {
	if _, err := r.GetUser(ctx, email); err != nil {
		return "", err
	}

	token := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO password_resets (token, email) VALUES (?, ?)",
		token, email,
	)
	if err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	link, err := url.Parse(r.resetURL)
	if err != nil {
		return "", fmt.Errorf("invalid reset URL: %w", err)
	}
	q := link.Query()
	q.Set("token", token)
	link.RawQuery = q.Encode()
	return link.String(), nil
}
