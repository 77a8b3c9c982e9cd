package storage

import "time"

// TranslationRecord is a saved translation owned by a user.
type TranslationRecord struct {
	ID         string    // UUID (SQLite) or document ID (Firestore)
	User       string    // Authenticated identifier, the user's email
	InputText  string    // Text as the user typed it
	OutputText string    // Normalised model output
	Timestamp  time.Time // Assigned by the store
}

// UserRecord is an account known to an identity provider.
type UserRecord struct {
	Email         string
	ProfilePicURL string // Empty when the user never set one
	CreatedAt     time.Time
}
