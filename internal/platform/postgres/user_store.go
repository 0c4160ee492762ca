package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = `id, email, hashed_password, name, avatar_url, google_id, auth_provider, is_active, created_at, updated_at`

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists or store.ErrGoogleIDExists on unique
// constraint violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		nullString(user.HashedPassword),
		nullString(user.Name),
		nullString(user.AvatarURL),
		nullString(user.GoogleID),
		user.AuthProvider,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		if isUniqueViolation(err, "users_google_id_key") {
			log.Warn("duplicate google id during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrGoogleIDExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("auth_provider", user.AuthProvider))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanUser(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.scanUser(ctx, s.db.QueryRowContext(ctx, query, email))
}

// GetByEmailOrGoogleID implements store.UserStore.GetByEmailOrGoogleID
// A single OR query covers both lookups so Google sign-in can link an
// existing email account in one round trip.
func (s *PostgresUserStore) GetByEmailOrGoogleID(
	ctx context.Context,
	email, googleID string,
) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR google_id = $2`
	return s.scanUser(ctx, s.db.QueryRowContext(ctx, query, email, googleID))
}

// Update implements store.UserStore.Update
// Returns store.ErrUserNotFound if the user does not exist and
// store.ErrEmailExists when changing to an email already in use.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		UPDATE users
		SET email = $2, hashed_password = $3, name = $4, avatar_url = $5,
		    google_id = $6, auth_provider = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		nullString(user.HashedPassword),
		nullString(user.Name),
		nullString(user.AvatarURL),
		nullString(user.GoogleID),
		user.AuthProvider,
		user.IsActive,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return store.ErrEmailExists
		}
		if isUniqueViolation(err, "users_google_id_key") {
			return store.ErrGoogleIDExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	log.Debug("user updated", slog.String("user_id", user.ID.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanUser maps a single user row into a domain.User.
func (s *PostgresUserStore) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	var hashedPassword, name, avatarURL, googleID sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&hashedPassword,
		&name,
		&avatarURL,
		&googleID,
		&user.AuthProvider,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to scan user row", slog.String("error", err.Error()))
		return nil, err
	}

	user.HashedPassword = hashedPassword.String
	user.Name = name.String
	user.AvatarURL = avatarURL.String
	user.GoogleID = googleID.String
	return &user, nil
}

// nullString converts an empty string to a SQL NULL so unique and nullable
// columns (google_id, hashed_password) behave correctly.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
