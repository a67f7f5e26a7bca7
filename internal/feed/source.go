package feed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/models"
)

// Source runs the two feed queries against the store. Both are already
// sorted descending and limited, which is what makes the merge in the
// assembler a correct top-k of the union.
type Source struct {
	db *gorm.DB
}

// NewSource creates a new feed source
func NewSource(db *gorm.DB) *Source {
	return &Source{db: db}
}

// OriginalsBefore returns up to limit top-level, non-blocked, non-redacted
// snaps authored by the given users with created_at strictly before the
// cursor, newest first.
func (s *Source) OriginalsBefore(ctx context.Context, authorIDs []uuid.UUID, cursor time.Time, limit int) ([]models.TimelineItem, error) {
	var snaps []models.Snap
	if err := s.db.WithContext(ctx).
		Where("created_by IN ?", authorIDs).
		Where("is_blocked = ? AND parent_id IS NULL AND content IS NOT NULL", false).
		Where("created_at < ?", cursor).
		Order("created_at DESC").
		Limit(limit).
		Find(&snaps).Error; err != nil {
		return nil, err
	}

	items := make([]models.TimelineItem, len(snaps))
	for i, snap := range snaps {
		content := ""
		if snap.Content != nil {
			content = *snap.Content
		}
		items[i] = models.TimelineItem{
			ID:        snap.ID,
			Content:   content,
			CreatedBy: snap.CreatedBy,
			CreatedAt: snap.CreatedAt,
			IsPrivate: snap.IsPrivate,
			ParentID:  snap.ParentID,
		}
	}
	return items, nil
}

// reshareRow is the scan target of the snapshares join.
type reshareRow struct {
	ID        uuid.UUID     `gorm:"column:id"`
	Content   *string       `gorm:"column:content"`
	CreatedBy uuid.UUID     `gorm:"column:created_by"`
	IsPrivate bool          `gorm:"column:is_private"`
	ParentID  uuid.NullUUID `gorm:"column:parent_id"`
	SharedBy  uuid.UUID     `gorm:"column:shared_by"`
	SharedAt  time.Time     `gorm:"column:shared_at"`
}

// ResharesBefore returns up to limit re-shares performed by the given users
// with shared_at strictly before the cursor, joined to their target snaps and
// filtered the same way as originals. The item's CreatedAt carries the share
// time, the feed's ordering timestamp for re-shares.
func (s *Source) ResharesBefore(ctx context.Context, sharerIDs []uuid.UUID, cursor time.Time, limit int) ([]models.TimelineItem, error) {
	var rows []reshareRow
	if err := s.db.WithContext(ctx).
		Model(&models.Snapshare{}).
		Select("twitsnaps.id, twitsnaps.content, twitsnaps.created_by, twitsnaps.is_private, twitsnaps.parent_id, snapshares.shared_by, snapshares.created_at AS shared_at").
		Joins("INNER JOIN twitsnaps ON twitsnaps.id = snapshares.twitsnap_id").
		Where("snapshares.shared_by IN ?", sharerIDs).
		Where("twitsnaps.is_blocked = ? AND twitsnaps.parent_id IS NULL AND twitsnaps.content IS NOT NULL", false).
		Where("snapshares.created_at < ?", cursor).
		Order("snapshares.created_at DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]models.TimelineItem, len(rows))
	for i, row := range rows {
		content := ""
		if row.Content != nil {
			content = *row.Content
		}
		items[i] = models.TimelineItem{
			ID:        row.ID,
			Content:   content,
			CreatedBy: row.CreatedBy,
			CreatedAt: row.SharedAt,
			SharedBy:  uuid.NullUUID{UUID: row.SharedBy, Valid: true},
			IsPrivate: row.IsPrivate,
			ParentID:  row.ParentID,
		}
	}
	return items, nil
}
