// Package api exposes the service over REST. It owns (de)serialization and
// status-code mapping only; domain logic lives in the service packages.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/twitsnap/twits/internal/cache"
	"github.com/twitsnap/twits/internal/db"
	"github.com/twitsnap/twits/internal/feed"
	"github.com/twitsnap/twits/internal/snaps"
	"github.com/twitsnap/twits/internal/stats"
	"github.com/twitsnap/twits/pkg/config"
	"github.com/twitsnap/twits/pkg/logging"
)

// Router sets up API routes
type Router struct {
	snaps     *snaps.Service
	assembler *feed.Assembler
	stats     *stats.Engine
	db        *db.DB
	cache     *cache.Cache
	cfg       *config.Config
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(snapService *snaps.Service, assembler *feed.Assembler, statsEngine *stats.Engine, database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	return &Router{
		snaps:     snapService,
		assembler: assembler,
		stats:     statsEngine,
		db:        database,
		cache:     redisCache,
		cfg:       cfg,
		logger:    logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	twits := engine.Group("/api/twits")
	twits.Use(APIKeyAuth(r.cfg.Server.APIKey))

	twits.POST("", r.createSnap)
	twits.GET("", r.listSnaps)
	twits.GET("/search", r.searchSnaps)
	twits.POST("/feed", r.getFeed)

	twits.GET("/blocked", r.listBlocked)
	twits.POST("/block/:id", r.blockSnap)
	twits.DELETE("/block/:id", r.unblockSnap)

	twits.GET("/hashtag/search", r.searchHashtags)
	twits.GET("/hashtag/trending", r.trendingHashtags)
	twits.GET("/hashtag/:name", r.snapsByHashtag)

	twits.GET("/user/:userId", r.snapsByUser)
	twits.GET("/stats/:userId", r.userStats)
	twits.GET("/favourites/:userId", r.listFavourites)

	twits.GET("/:id", r.getSnap)
	twits.PATCH("/:id", r.editSnap)
	twits.DELETE("/:id", r.deleteSnap)

	twits.POST("/:id/reply", r.createReply)
	twits.GET("/:id/replies", r.listReplies)

	twits.POST("/:id/like", r.likeSnap)
	twits.DELETE("/:id/like", r.unlikeSnap)
	twits.GET("/:id/likes", r.listLikes)

	twits.POST("/:id/share", r.shareSnap)
	twits.DELETE("/:id/share", r.unshareSnap)

	twits.POST("/:id/mention", r.mentionUser)
	twits.DELETE("/:id/mention", r.unmentionUser)
	twits.GET("/:id/mentions", r.listMentions)

	twits.POST("/:id/favourite", r.favouriteSnap)
	twits.DELETE("/:id/favourite", r.unfavouriteSnap)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "OK"}

	if err := r.db.Health(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = "FAIL"
	}
	if r.cache != nil {
		checks["redis"] = "OK"
		if err := r.cache.Health(c.Request.Context()); err != nil {
			checks["redis"] = "FAIL"
		}
	}

	c.JSON(status, gin.H{
		"status":  http.StatusText(status),
		"service": "twits-api",
		"checks":  checks,
	})
}
