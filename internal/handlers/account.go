package handlers

import (
	"errors"
	"net/http"
	"time"

	"rojak/internal/contextutil"
	"rojak/internal/service"
	"rojak/internal/session"
)

// AccountHandler handles sign-up, login, logout, password reset and profile requests.
type AccountHandler struct {
	accountService service.AccountService
	sessions       *session.Manager
}

// NewAccountHandler creates a new AccountHandler. Logins move the caller to a
// new session in sessions.
func NewAccountHandler(accountService service.AccountService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		sessions:       sessions,
	}
}

// CredentialsRequest is the payload for sign-up and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest is the payload for a password reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// LoginResponse names the logged-in user.
type LoginResponse struct {
	User string `json:"user"`
}

// ProfileResponse is the logged-in user's profile.
type ProfileResponse struct {
	Email            string `json:"email"`
	ProfilePicURL    string `json:"profile_pic_url"`
	TranslationCount int    `json:"translation_count"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// SignUp creates an account. The caller still has to log in.
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.accountService.SignUp(ctx, req.Email, req.Password); err != nil {
		handleServiceError(w, ctx, err, "Error creating account", "Error creating account")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, MessageResponse{Message: "Account created successfully! Please log in."})
}

// Login checks credentials and binds the user to a freshly issued session.
// The pre-login session ID stops working.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	user, err := h.accountService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, ctx, err, "Login is unavailable, please try again", "Login failed")
		return
	}

	// Wait for any running submission so its entries move with the log
	sess.Lock()
	rotated := h.sessions.Rotate(sess)
	sess.Unlock()

	rotated.SetUser(user)
	session.SetCookie(w, rotated)
	writeJSON(ctx, w, http.StatusOK, LoginResponse{User: user})
}

// Logout unbinds the user from the session.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	sess.SetUser("")
	w.WriteHeader(http.StatusNoContent)
}

// PasswordReset generates a reset link for a registered email.
// The link itself is never returned to the caller.
func (h *AccountHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.accountService.PasswordResetLink(ctx, req.Email); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "This email is not registered. Please Sign Up.")
			return
		}
		handleServiceError(w, ctx, err, "Error sending reset email", "Error sending reset email")
		return
	}

	logger.InfoContext(ctx, "password reset link generated", "email", req.Email)
	writeJSON(ctx, w, http.StatusOK, MessageResponse{Message: "Password reset link sent to: " + req.Email})
}

// Profile returns the logged-in user's profile.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	profile, err := h.accountService.Profile(ctx, sess.User())
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load profile", "Failed to load profile")
		return
	}

	resp := ProfileResponse{
		Email:            profile.Email,
		ProfilePicURL:    profile.ProfilePicURL,
		TranslationCount: profile.TranslationCount,
	}
	if !profile.CreatedAt.IsZero() {
		resp.CreatedAt = profile.CreatedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
