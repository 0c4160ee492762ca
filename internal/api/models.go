package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// Request and response payloads shared across handlers.

// RegisterRequest is the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest is the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// GoogleLoginRequest is the payload for Google sign-in. Clients send
// either a raw ID token from the Google Sign-In widget or an OAuth
// authorization code from the redirect flow.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token,omitempty"`
	Code    string `json:"code,omitempty"`
}

// AuthResponse is the body of a successful authentication.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenResponse is the body of a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// GoogleAuthURLResponse carries the Google consent screen URL.
type GoogleAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		AvatarURL:    user.AvatarURL,
		AuthProvider: user.AuthProvider,
		CreatedAt:    user.CreatedAt,
	}
}

// ProjectRequest is the payload for creating or updating a project.
type ProjectRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// TaskRequest is the payload for creating or updating a task. Status and
// priority are optional; empty values default on create and keep the
// stored values on update.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Assignee    string     `json:"assignee"    validate:"max=200"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ProjectID   uuid.UUID  `json:"project_id"  validate:"required"`
}

// UnreadCountResponse carries a recipient's unread notification count.
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// SummarizeRequest is the payload for the AI summarization endpoint.
type SummarizeRequest struct {
	Description string `json:"description" validate:"required,max=5000"`
}

// CacheStats describes one in-memory lookup cache.
type CacheStats struct {
	Entries int `json:"entries"`
	Ceiling int `json:"ceiling"`
}

// CacheStatsResponse reports the state of the in-memory caches.
type CacheStatsResponse struct {
	UserCache  CacheStats `json:"user_cache"`
	TokenCache CacheStats `json:"token_cache"`
}
