package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stocklens/stocklens/internal/cache"
	"github.com/stocklens/stocklens/internal/models"
	"github.com/stocklens/stocklens/internal/services"
)

// SnapshotHandlers exposes the snapshot pipeline over HTTP.
type SnapshotHandlers struct {
	snapshots  *services.SnapshotService
	defaults   []models.Holding
	priceCache *cache.Cache[float64]
	statsCache *cache.Cache[models.MarketData]
	log        zerolog.Logger
}

// NewSnapshotHandlers builds the handler set. defaults is the portfolio
// served when a request does not carry its own holdings.
func NewSnapshotHandlers(
	snapshots *services.SnapshotService,
	defaults []models.Holding,
	priceCache *cache.Cache[float64],
	statsCache *cache.Cache[models.MarketData],
	log zerolog.Logger,
) *SnapshotHandlers {
	return &SnapshotHandlers{
		snapshots:  snapshots,
		defaults:   defaults,
		priceCache: priceCache,
		statsCache: statsCache,
		log:        log.With().Str("component", "http").Logger(),
	}
}

type snapshotRequest struct {
	Holdings []models.Holding `json:"holdings" binding:"omitempty,dive"`
}

// GetSnapshot returns the snapshot of the built-in default portfolio.
func (h *SnapshotHandlers) GetSnapshot(c *gin.Context) {
	h.buildAndRespond(c, h.defaults)
}

// PostSnapshot returns the snapshot of the holdings in the request
// body, falling back to the defaults when none are supplied. Malformed
// holdings are the only client error; provider failures surface as
// missing optional fields, never as an HTTP error.
func (h *SnapshotHandlers) PostSnapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	holdings := req.Holdings
	if len(holdings) == 0 {
		holdings = h.defaults
	}
	h.buildAndRespond(c, holdings)
}

func (h *SnapshotHandlers) buildAndRespond(c *gin.Context, holdings []models.Holding) {
	snapshot, err := h.snapshots.Build(c.Request.Context(), holdings)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid holdings",
				"index":   verr.Index,
				"field":   verr.Field,
				"details": verr.Error(),
			})
			return
		}
		h.log.Error().Err(err).Msg("Snapshot build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate portfolio snapshot"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Health reports liveness plus cache occupancy for quick inspection.
func (h *SnapshotHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"priceCacheEntries": h.priceCache.Len(),
		"statsCacheEntries": h.statsCache.Len(),
	})
}
