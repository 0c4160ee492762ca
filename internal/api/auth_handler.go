package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/api/middleware"
	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
	"github.com/trackerworkflow/tracker-api/internal/service"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
)

// AuthHandler handles registration, login, token refresh, and Google
// sign-in.
type AuthHandler struct {
	userService service.UserService
	jwtService  auth.JWTService
	googleAuth  *googleauth.Service
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	googleAuth *googleauth.Service,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		googleAuth:  googleAuth,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusCreated)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid email or password", err,
				shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusOK)
}

// RefreshToken handles POST /api/auth/refresh. It validates the refresh
// token and rotates both tokens.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(r, claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate tokens", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    h.accessTokenExpiry(),
	})
}

// GoogleLogin handles POST /api/auth/google. It accepts either a Google
// ID token or an OAuth authorization code, resolves the identity to a
// local account, and issues tokens.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.IDToken == "" && req.Code == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Either id_token or code is required")
		return
	}

	var info googleauth.UserInfo
	var err error
	if req.IDToken != "" {
		info, err = h.googleAuth.VerifyIDToken(r.Context(), req.IDToken)
	} else {
		info, err = h.googleAuth.ExchangeCode(r.Context(), req.Code)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	user, err := h.userService.CreateOrGetGoogleUser(r.Context(), info)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusOK)
}

// GoogleAuthURL handles GET /api/auth/google/url.
func (h *AuthHandler) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	if !h.googleAuth.Enabled() {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Google sign-in is not available")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GoogleAuthURLResponse{
		AuthURL: h.googleAuth.AuthCodeURL(shared.GetTraceID(r.Context())),
	})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// currentUser loads the authenticated account for handlers that need the
// actor's display name.
func currentUser(r *http.Request, users service.UserService) (*domain.User, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return users.GetUser(r.Context(), userID)
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, r *http.Request, userID uuid.UUID, status int) {
	accessToken, refreshToken, err := h.generateTokenPair(r, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate tokens", err)
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    h.accessTokenExpiry(),
	})
}

func (h *AuthHandler) generateTokenPair(r *http.Request, userID uuid.UUID) (string, string, error) {
	log := logger.FromContext(r.Context())

	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		log.Error("failed to generate access token", "error", err, "user_id", userID)
		return "", "", err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		log.Error("failed to generate refresh token", "error", err, "user_id", userID)
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (h *AuthHandler) accessTokenExpiry() string {
	return time.Now().UTC().Add(h.jwtService.AccessTokenLifetime()).Format(time.RFC3339)
}
