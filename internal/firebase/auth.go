package firebase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rojak/internal/storage"
)

const signInWithPasswordURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// AuthProvider is an identity provider backed by Firebase Authentication.
//
// The Admin SDK cannot verify passwords, so SignIn goes through the
// Identity Toolkit REST API with the project's web API key.
type AuthProvider struct {
	auth      *auth.Client
	firestore *firestore.Client
	apiKey    string
	http      *resty.Client
	signInURL string
}

// NewAuthProvider creates a new AuthProvider.
func NewAuthProvider(clients *Clients, webAPIKey string) *AuthProvider {
	return &AuthProvider{
		auth:      clients.Auth,
		firestore: clients.Firestore,
		apiKey:    webAPIKey,
		http:      resty.New().SetTimeout(20 * time.Second),
		signInURL: signInWithPasswordURL,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// credentialErrors are Identity Toolkit messages that mean the email/password pair is wrong.
var credentialErrors = []string{
	"EMAIL_NOT_FOUND",
	"INVALID_PASSWORD",
	"INVALID_LOGIN_CREDENTIALS",
	"USER_DISABLED",
	"INVALID_EMAIL",
}

// CreateUser registers a new account. Returns storage.ErrAlreadyExists if the email is taken.
func (p *AuthProvider) CreateUser(ctx context.Context, email, password string) error {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if _, err := p.auth.CreateUser(ctx, params); err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// SignIn verifies the email/password pair and returns the authenticated identifier.
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	var result signInResponse
	var apiErr identityError

	resp, err := p.http.R().SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(signInRequest{Email: email, Password: password, ReturnSecureToken: true}).
		SetResult(&result).
		SetError(&apiErr).
		Post(p.signInURL)
	if err != nil {
		return "", fmt.Errorf("failed to call sign-in endpoint: %w", err)
	}

	if resp.IsError() {
		if isCredentialError(apiErr.Error.Message) {
			return "", storage.ErrInvalidCredentials
		}
		return "", fmt.Errorf("sign-in failed: %s; body: %s", resp.Status(), resp.String())
	}

	if result.Email != "" {
		return result.Email, nil
	}
	return email, nil
}

func isCredentialError(message string) bool {
	for _, code := range credentialErrors {
		if strings.HasPrefix(message, code) {
			return true
		}
	}
	return false
}

// PasswordResetLink returns a Firebase password reset link for email.
// Returns storage.ErrNotFound for unknown emails.
func (p *AuthProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	if _, err := p.auth.GetUserByEmail(ctx, email); err != nil {
		if auth.IsUserNotFound(err) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	link, err := p.auth.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset link: %w", err)
	}
	return link, nil
}

// GetUser returns the account for email with its profile picture from the
// "users" collection, or storage.ErrNotFound.
func (p *AuthProvider) GetUser(ctx context.Context, email string) (*storage.UserRecord, error) {
	u, err := p.auth.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &storage.UserRecord{Email: u.Email}
	if u.UserMetadata != nil {
		user.CreatedAt = time.UnixMilli(u.UserMetadata.CreationTimestamp).UTC()
	}

	snap, err := p.firestore.Collection(usersCollection).Doc(email).Get(ctx)
	switch {
	case status.Code(err) == codes.NotFound:
	case err != nil:
		return nil, fmt.Errorf("failed to get user document: %w", err)
	default:
		if pic, err := snap.DataAt("profile_pic_url"); err == nil {
			if s, ok := pic.(string); ok {
				user.ProfilePicURL = s
			}
		}
	}

	return user, nil
}
