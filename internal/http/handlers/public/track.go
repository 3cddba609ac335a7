package public

import (
	"strings"
	"time"

	"github.com/cargomart/internal/cache"
	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackCargo public tracking endpoint. Masked responses are cached; token
// requests bypass the cache because their payload is caller-specific.
func (h *Handler) TrackCargo(c *gin.Context) {
	trackingNo := strings.TrimSpace(c.Param("trackingNumber"))
	if trackingNo == "" {
		response.BadRequest(c, "tracking number required")
		return
	}
	authToken := strings.TrimSpace(c.Query("authToken"))

	cacheKey := service.TrackCacheKey(trackingNo)
	if authToken == "" {
		var cached service.TrackedCargo
		if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
			response.Success(c, &cached)
			return
		}
	}

	view, err := h.CargoService.TrackByNumber(trackingNo, authToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if authToken == "" {
		ttl := time.Duration(h.Config.Tracking.CacheTTLSeconds) * time.Second
		if ttl > 0 {
			if err := cache.SetJSON(c.Request.Context(), cacheKey, view, ttl); err != nil {
				logger.Debugw("track_cache_set_failed", "tracking_no", trackingNo, "error", err)
			}
		}
	}
	response.Success(c, view)
}

// ListCargoStatuses returns the lifecycle statuses with their suggested
// follow-ups, for client display.
func (h *Handler) ListCargoStatuses(c *gin.Context) {
	statuses := []string{}
	flow := map[string][]string{}
	for _, status := range service.AllStatuses() {
		statuses = append(statuses, status)
		flow[status] = service.NextStatuses(status)
	}
	response.Success(c, gin.H{
		"statuses": statuses,
		"flow":     flow,
	})
}
