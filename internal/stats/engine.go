// Package stats aggregates per-user activity totals and sitewide hashtag
// frequency metrics.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/cache"
	"github.com/twitsnap/twits/internal/domain"
	"github.com/twitsnap/twits/internal/models"
)

const trendingTTL = time.Minute

// Engine computes aggregate statistics from the store, caching the sitewide
// rankings in redis.
type Engine struct {
	db     *gorm.DB
	cache  *cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates a new stats engine
func NewEngine(db *gorm.DB, redisCache *cache.Cache, logger *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		cache:  redisCache,
		logger: logger.With(zap.String("component", "stats-engine")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// cutoffFor returns the window lower bound, or the zero time for a lifetime
// aggregation (windowDays <= 0).
func cutoffFor(now time.Time, windowDays int) time.Time {
	if windowDays <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -windowDays)
}

// GetUserStats computes a user's totals: snaps authored, likes and shares
// received on the user's snaps, and replies received. A positive windowDays
// restricts every count to rows created after now minus that many days;
// otherwise the totals are lifetime.
func (e *Engine) GetUserStats(ctx context.Context, userID uuid.UUID, windowDays int) (*models.UserStats, error) {
	cutoff := cutoffFor(e.now(), windowDays)
	stats := &models.UserStats{}

	snapsQ := e.db.WithContext(ctx).
		Model(&models.Snap{}).
		Where("created_by = ?", userID)
	if !cutoff.IsZero() {
		snapsQ = snapsQ.Where("created_at >= ?", cutoff)
	}
	if err := snapsQ.Count(&stats.SnapsTotal).Error; err != nil {
		return nil, domain.StoreFailure("stats", err)
	}

	likesQ := e.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("INNER JOIN twitsnaps ON twitsnaps.id = likes.twitsnap_id").
		Where("twitsnaps.created_by = ?", userID)
	if !cutoff.IsZero() {
		likesQ = likesQ.Where("twitsnaps.created_at >= ?", cutoff)
	}
	if err := likesQ.Count(&stats.LikesTotal).Error; err != nil {
		return nil, domain.StoreFailure("stats", err)
	}

	sharesQ := e.db.WithContext(ctx).
		Model(&models.Snapshare{}).
		Joins("INNER JOIN twitsnaps ON twitsnaps.id = snapshares.twitsnap_id").
		Where("twitsnaps.created_by = ?", userID)
	if !cutoff.IsZero() {
		sharesQ = sharesQ.Where("snapshares.created_at >= ?", cutoff)
	}
	if err := sharesQ.Count(&stats.SharesTotal).Error; err != nil {
		return nil, domain.StoreFailure("stats", err)
	}

	// Replies received: self-join of snaps on parent_id
	repliesQ := e.db.WithContext(ctx).
		Model(&models.Snap{}).
		Joins("INNER JOIN twitsnaps AS parents ON parents.id = twitsnaps.parent_id").
		Where("parents.created_by = ?", userID)
	if !cutoff.IsZero() {
		repliesQ = repliesQ.Where("twitsnaps.created_at >= ?", cutoff)
	}
	if err := repliesQ.Count(&stats.RepliesTotal).Error; err != nil {
		return nil, domain.StoreFailure("stats", err)
	}

	return stats, nil
}

// TrendingHashtags returns the most used tags within the window, most
// frequent first. Results are cached briefly since the ranking is sitewide.
func (e *Engine) TrendingHashtags(ctx context.Context, limit, windowDays int) ([]models.HashtagCount, error) {
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("trending:%s", cache.HashKey(fmt.Sprint(limit), fmt.Sprint(windowDays)))
	if cached, err := e.cache.Get(key); err == nil {
		var counts []models.HashtagCount
		if err := json.Unmarshal([]byte(cached), &counts); err == nil {
			return counts, nil
		}
	}

	cutoff := cutoffFor(e.now(), windowDays)
	q := e.db.WithContext(ctx).
		Model(&models.Hashtag{}).
		Select("hashtags.name, COUNT(*) AS count").
		Joins("INNER JOIN twitsnaps ON twitsnaps.id = hashtags.twitsnap_id").
		Where("twitsnaps.is_blocked = ?", false)
	if !cutoff.IsZero() {
		q = q.Where("twitsnaps.created_at >= ?", cutoff)
	}

	var counts []models.HashtagCount
	if err := q.Group("hashtags.name").
		Order("count DESC").
		Limit(limit).
		Scan(&counts).Error; err != nil {
		return nil, domain.StoreFailure("stats", err)
	}

	if payload, err := json.Marshal(counts); err == nil {
		if err := e.cache.Set(key, payload, trendingTTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			e.logger.Warn("Failed to cache trending hashtags", zap.Error(err))
		}
	}

	return counts, nil
}
