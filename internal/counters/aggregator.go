// Package counters computes the like/share/reply counters attached to snaps
// and timeline items.
package counters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/models"
)

// Aggregator computes engagement counters from the store.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new counter aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// CountLikes returns the number of likes on a snap
func (a *Aggregator) CountLikes(ctx context.Context, snapID uuid.UUID) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("twitsnap_id = ?", snapID).
		Count(&count).Error
	return count, err
}

// CountShares returns the number of snapshares of a snap
func (a *Aggregator) CountShares(ctx context.Context, snapID uuid.UUID) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Snapshare{}).
		Where("twitsnap_id = ?", snapID).
		Count(&count).Error
	return count, err
}

// CountReplies returns the number of direct replies to a snap
func (a *Aggregator) CountReplies(ctx context.Context, snapID uuid.UUID) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Snap{}).
		Where("parent_id = ?", snapID).
		Count(&count).Error
	return count, err
}

// groupCount is the scan target of the grouped count queries.
type groupCount struct {
	ID    uuid.UUID `gorm:"column:id"`
	Count int64     `gorm:"column:count"`
}

// ForSnaps returns the three counters for every id in snapIDs with one
// grouped query per entity table, instead of three queries per snap. Ids with
// no engagement map to zeroed counts.
func (a *Aggregator) ForSnaps(ctx context.Context, snapIDs []uuid.UUID) (map[uuid.UUID]models.Counts, error) {
	counts := make(map[uuid.UUID]models.Counts, len(snapIDs))
	for _, id := range snapIDs {
		counts[id] = models.Counts{}
	}
	if len(snapIDs) == 0 {
		return counts, nil
	}

	apply := func(rows []groupCount, set func(c *models.Counts, n int64)) {
		for _, row := range rows {
			c := counts[row.ID]
			set(&c, row.Count)
			counts[row.ID] = c
		}
	}

	var likes []groupCount
	if err := a.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("twitsnap_id AS id, COUNT(*) AS count").
		Where("twitsnap_id IN ?", snapIDs).
		Group("twitsnap_id").
		Scan(&likes).Error; err != nil {
		return nil, err
	}
	apply(likes, func(c *models.Counts, n int64) { c.Likes = n })

	var shares []groupCount
	if err := a.db.WithContext(ctx).
		Model(&models.Snapshare{}).
		Select("twitsnap_id AS id, COUNT(*) AS count").
		Where("twitsnap_id IN ?", snapIDs).
		Group("twitsnap_id").
		Scan(&shares).Error; err != nil {
		return nil, err
	}
	apply(shares, func(c *models.Counts, n int64) { c.Shares = n })

	var replies []groupCount
	if err := a.db.WithContext(ctx).
		Model(&models.Snap{}).
		Select("parent_id AS id, COUNT(*) AS count").
		Where("parent_id IN ?", snapIDs).
		Group("parent_id").
		Scan(&replies).Error; err != nil {
		return nil, err
	}
	apply(replies, func(c *models.Counts, n int64) { c.Replies = n })

	return counts, nil
}
