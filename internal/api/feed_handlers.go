package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/twitsnap/twits/internal/domain"
)

// feedRequest mirrors the upstream feed schema: an exclusive cursor
// timestamp, a page size and the followed author ids.
type feedRequest struct {
	TimestampStart time.Time   `json:"timestamp_start" binding:"required"`
	Limit          int         `json:"limit"`
	Followeds      []uuid.UUID `json:"followeds"`
}

func (r *Router) getFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = r.cfg.Feed.DefaultPageSize
	}
	if limit > r.cfg.Feed.MaxPageSize {
		limit = r.cfg.Feed.MaxPageSize
	}

	page, err := r.assembler.AssembleFeed(c.Request.Context(), req.TimestampStart, limit, req.Followeds)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (r *Router) userStats(c *gin.Context) {
	userID, ok := r.pathID(c, "userId")
	if !ok {
		return
	}

	// limit is the trailing window in days; absent means lifetime totals
	windowDays := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			r.respondError(c, domain.Validation("limit must be an integer"))
			return
		}
		windowDays = parsed
	}

	stats, err := r.stats.GetUserStats(c.Request.Context(), userID, windowDays)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (r *Router) trendingHashtags(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			r.respondError(c, domain.Validation("limit must be an integer"))
			return
		}
		limit = parsed
	}
	windowDays := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			r.respondError(c, domain.Validation("days must be an integer"))
			return
		}
		windowDays = parsed
	}

	counts, err := r.stats.TrendingHashtags(c.Request.Context(), limit, windowDays)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counts})
}
