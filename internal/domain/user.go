package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Supported authentication providers.
const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// User-specific validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrInvalidAuthProvider = errors.New("auth provider must be \"email\" or \"google\"")
)

// User represents a registered user of the tracker application.
// Users created through Google sign-in have no password; GoogleID and
// AvatarURL are only populated for those accounts.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Name           string    `json:"name,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	GoogleID       string    `json:"-"`
	AuthProvider   string    `json:"auth_provider"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new email/password User.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// The caller is responsible for hashing the password before storing the user.
// Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Password:     password, // Plaintext password - must be hashed before storage
		AuthProvider: AuthProviderEmail,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewGoogleUser creates a new User from a verified Google identity.
// Google users have no password; they authenticate through ID tokens.
// Returns an error if validation fails.
func NewGoogleUser(email, googleID, name, avatarURL string) (*User, error) {
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		AvatarURL:    avatarURL,
		GoogleID:     googleID,
		AuthProvider: AuthProviderGoogle,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.AuthProvider != AuthProviderEmail && u.AuthProvider != AuthProviderGoogle {
		return ErrInvalidAuthProvider
	}

	// Google users carry no password; everyone else needs either a plaintext
	// password (pre-hash, during registration) or a stored hash.
	if u.AuthProvider == AuthProviderGoogle {
		return nil
	}

	if u.Password != "" {
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// DisplayName returns the user's name, falling back to the local part of the
// email address when no name is set. Mentions and assignment notifications
// address users by this value.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
// Request-level validation uses the validator package's email rule; this is
// a last line of defense for entities constructed outside the API layer.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
