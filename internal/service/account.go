package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_identity_provider.go -package=mocks rojak/internal/service IdentityProvider
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_account_service.go -package=mocks rojak/internal/service AccountService

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"rojak/internal/contextutil"
	"rojak/internal/storage"
)

// DefaultProfilePicURL is shown for accounts without a profile picture.
const DefaultProfilePicURL = "https://www.w3schools.com/w3images/avatar2.png"

// passwordSpecials are the non-alphanumeric characters a password may contain.
const passwordSpecials = "@$!%*?&"

var emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// IdentityProvider manages accounts and checks credentials.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	GetUser(ctx context.Context, email string) (*storage.UserRecord, error)
}

// Profile is the account summary shown to a logged-in user.
type Profile struct {
	Email            string
	ProfilePicURL    string
	TranslationCount int
	CreatedAt        time.Time
}

// AccountService provides sign-up, sign-in, password reset and profile lookups.
type AccountService interface {
	SignUp(ctx context.Context, email, password string) error
	// SignIn returns the authenticated identifier.
	SignIn(ctx context.Context, email, password string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	Profile(ctx context.Context, email string) (Profile, error)
}

type accountService struct {
	identity IdentityProvider
	store    TranslationStore
}

// NewAccountService creates a new AccountService.
func NewAccountService(identity IdentityProvider, store TranslationStore) AccountService {
	return &accountService{
		identity: identity,
		store:    store,
	}
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidPassword reports whether password is at least 8 characters drawn from
// letters, digits and @$!%*?&, with at least one upper-case letter, one digit
// and one of the special characters.
func ValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return upper && digit && special
}

func (s *accountService) SignUp(ctx context.Context, email, password string) error {
	logger := contextutil.LoggerFromContext(ctx)
	email = strings.TrimSpace(email)

	switch {
	case email == "":
		return &ValidationError{Field: "email", Message: "Please enter an email."}
	case !ValidEmail(email):
		return &ValidationError{Field: "email", Message: "Invalid email format."}
	case password == "":
		return &ValidationError{Field: "password", Message: "Please enter a password."}
	case !ValidPassword(password):
		return &ValidationError{
			Field:   "password",
			Message: "Password must be at least 8 characters with one uppercase letter, one number and one of @$!%*?&.",
		}
	}

	if err := s.identity.CreateUser(ctx, email, password); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrAlreadyExists
		}
		logger.ErrorContext(ctx, "failed to create account", "email", email, "error", err)
		return WrapError(err, "failed to create account")
	}

	logger.InfoContext(ctx, "account created", "email", email)
	return nil
}

func (s *accountService) SignIn(ctx context.Context, email, password string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	email = strings.TrimSpace(email)

	if !ValidEmail(email) {
		return "", &ValidationError{Field: "email", Message: "Please enter a valid email."}
	}
	if password == "" {
		return "", &ValidationError{Field: "password", Message: "Please enter a password."}
	}

	user, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCredentials) {
			logger.InfoContext(ctx, "sign-in rejected", "email", email)
			return "", ErrInvalidCredentials
		}
		logger.ErrorContext(ctx, "sign-in failed", "email", email, "error", err)
		return "", WrapError(err, "failed to sign in")
	}

	logger.InfoContext(ctx, "signed in", "user", user)
	return user, nil
}

func (s *accountService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	email = strings.TrimSpace(email)

	if !ValidEmail(email) {
		return "", &ValidationError{Field: "email", Message: "Please enter a valid email."}
	}

	link, err := s.identity.PasswordResetLink(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to create reset link", "email", email, "error", err)
		return "", WrapError(err, "failed to create password reset link")
	}
	return link, nil
}

func (s *accountService) Profile(ctx context.Context, email string) (Profile, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if email == "" {
		return Profile{}, ErrUnauthenticated
	}

	user, err := s.identity.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, WrapError(err, "failed to get user")
	}

	profile := Profile{
		Email:         user.Email,
		ProfilePicURL: user.ProfilePicURL,
		CreatedAt:     user.CreatedAt,
	}
	if profile.ProfilePicURL == "" {
		profile.ProfilePicURL = DefaultProfilePicURL
	}

	// The count is informational; the profile is still returned without it
	count, err := s.store.CountByUser(ctx, email)
	if err != nil {
		logger.WarnContext(ctx, "failed to count translations", "user", email, "error", err)
	} else {
		profile.TranslationCount = count
	}
	return profile, nil
}
