package api

import (
	"net/http"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/cache"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
)

// AdminHandler exposes operational endpoints for the in-memory lookup
// caches.
type AdminHandler struct {
	userCache  *cache.Cache[*domain.User]
	tokenCache *cache.Cache[googleauth.UserInfo]
}

// NewAdminHandler creates an AdminHandler over the process caches.
func NewAdminHandler(
	userCache *cache.Cache[*domain.User],
	tokenCache *cache.Cache[googleauth.UserInfo],
) *AdminHandler {
	return &AdminHandler{
		userCache:  userCache,
		tokenCache: tokenCache,
	}
}

// CacheStats handles GET /api/admin/cache.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CacheStatsResponse{
		UserCache: CacheStats{
			Entries: h.userCache.Len(),
			Ceiling: h.userCache.Ceiling(),
		},
		TokenCache: CacheStats{
			Entries: h.tokenCache.Len(),
			Ceiling: h.tokenCache.Ceiling(),
		},
	})
}

// ClearCaches handles POST /api/admin/cache/clear.
func (h *AdminHandler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	h.userCache.Clear()
	h.tokenCache.Clear()

	logger.FromContext(r.Context()).Info("lookup caches cleared")
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "caches cleared"})
}
