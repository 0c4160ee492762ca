package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/cache"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// UserService provides account operations: registration, password login,
// and Google sign-in with account linking.
type UserService interface {
	// Register creates a new email/password account.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies an email/password login.
	// Returns ErrInvalidCredentials on any mismatch, including password
	// logins against Google-only accounts.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// CreateOrGetGoogleUser resolves a verified Google identity to a local
	// account. An existing account matching the email has the Google
	// identity linked onto it; otherwise a new account is created.
	CreateOrGetGoogleUser(ctx context.Context, info googleauth.UserInfo) (*domain.User, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	userCache *cache.Cache[*domain.User]
	logger    *slog.Logger
	db        *sql.DB

	// runTx wraps store.RunInTransaction; tests substitute a pass-through.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewUserService creates a UserService. userCache memoizes Google sign-in
// lookups under both the email and the Google subject ID.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	userCache *cache.Cache[*domain.User],
	logger *slog.Logger,
) *UserServiceImpl {
	s := &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		userCache: userCache,
		logger:    logger.With(slog.String("component", "user_service")),
		db:        db,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new email/password account inside a transaction.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("registration attempt with existing email")
		} else {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies an email/password login.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Google-only accounts have no password to check against.
	if user.HashedPassword == "" {
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// CreateOrGetGoogleUser resolves a Google identity to a local account.
// The user cache is checked under the email and the Google subject ID
// before touching the database.
func (s *UserServiceImpl) CreateOrGetGoogleUser(ctx context.Context, info googleauth.UserInfo) (*domain.User, error) {
	if cached, ok := s.cachedUser(info.Email, info.Sub); ok {
		s.logger.Debug("google user found in cache, skipping database lookup")
		return cached, nil
	}

	existing, err := s.userStore.GetByEmailOrGoogleID(ctx, info.Email, info.Sub)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Error("failed to look up google user", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		if existing.GoogleID == "" {
			// Link the Google identity onto the pre-existing email account.
			existing.GoogleID = info.Sub
			if info.Name != "" {
				existing.Name = info.Name
			}
			if info.Picture != "" {
				existing.AvatarURL = info.Picture
			}
			existing.AuthProvider = domain.AuthProviderGoogle

			err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
				return s.userStore.WithTx(tx).Update(ctx, existing)
			})
			if err != nil {
				s.logger.Error("failed to link google identity", "error", err, "user_id", existing.ID)
				return nil, fmt.Errorf("failed to link google identity: %w", err)
			}
			s.logger.Info("linked google identity to existing account", "user_id", existing.ID)
		}

		s.cacheUser(existing)
		return existing, nil
	}

	user, err := domain.NewGoogleUser(info.Email, info.Sub, info.Name, info.Picture)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to create google user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("google user created", "user_id", user.ID)
	s.cacheUser(user)
	return user, nil
}

func (s *UserServiceImpl) cachedUser(email, googleID string) (*domain.User, bool) {
	if s.userCache == nil {
		return nil, false
	}
	if email != "" {
		if user, ok := s.userCache.Get(email); ok {
			return user, true
		}
	}
	if googleID != "" {
		if user, ok := s.userCache.Get(googleID); ok {
			return user, true
		}
	}
	return nil, false
}

func (s *UserServiceImpl) cacheUser(user *domain.User) {
	if s.userCache == nil {
		return
	}
	if user.Email != "" {
		s.userCache.Put(user.Email, user)
	}
	if user.GoogleID != "" {
		s.userCache.Put(user.GoogleID, user)
	}
}
