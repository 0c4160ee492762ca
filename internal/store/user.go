package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password (or be a Google user without one).
	// Returns ErrEmailExists if the email is already taken and
	// ErrGoogleIDExists for a duplicate Google ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByEmailOrGoogleID retrieves a user matching either the email or
	// the Google subject ID, in a single query. Used by Google sign-in to
	// link pre-existing email accounts to a Google identity.
	// Returns ErrUserNotFound if no user matches.
	GetByEmailOrGoogleID(ctx context.Context, email, googleID string) (*domain.User, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
