// Package hashtag maintains the hashtags side-index: tag extraction from snap
// content and incremental reindexing on edits.
package hashtag

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/models"
)

const maxTagLen = 100

// Indexer maintains Hashtag rows transactionally around snap writes.
type Indexer struct {
	logger *zap.Logger
}

// NewIndexer creates a new hashtag indexer
func NewIndexer(logger *zap.Logger) *Indexer {
	return &Indexer{
		logger: logger.With(zap.String("component", "hashtag-indexer")),
	}
}

// ExtractTags returns the set of hashtags in content. A token is a hashtag
// iff it starts with '#'; the stored tag is the token without the marker,
// lowercased and capped at maxTagLen runes. Duplicate tags in one message
// collapse to one entry.
func ExtractTags(content string) map[string]struct{} {
	tags := make(map[string]struct{})
	for _, token := range strings.Fields(content) {
		if !strings.HasPrefix(token, "#") {
			continue
		}
		tag := strings.ToLower(strings.TrimPrefix(token, "#"))
		if tag == "" {
			continue
		}
		// The cap is the column width in characters, so truncate by runes.
		// Slicing bytes could split a rune and produce invalid UTF-8.
		if runes := []rune(tag); len(runes) > maxTagLen {
			tag = string(runes[:maxTagLen])
		}
		tags[tag] = struct{}{}
	}
	return tags
}

// Diff computes the tag insertions and deletions needed to move the index
// from oldContent to newContent. Tags present in both are left untouched.
// Comparison is over exact extracted token sets, never substring containment.
func Diff(oldContent, newContent string) (added, removed []string) {
	oldTags := ExtractTags(oldContent)
	newTags := ExtractTags(newContent)

	for tag := range newTags {
		if _, ok := oldTags[tag]; !ok {
			added = append(added, tag)
		}
	}
	for tag := range oldTags {
		if _, ok := newTags[tag]; !ok {
			removed = append(removed, tag)
		}
	}
	return added, removed
}

// IndexOnCreate inserts one Hashtag row per distinct tag found in content.
// Runs inside the caller's transaction.
func (i *Indexer) IndexOnCreate(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, content string) error {
	for tag := range ExtractTags(content) {
		if err := insertTag(ctx, tx, snapID, tag); err != nil {
			return err
		}
	}
	return nil
}

// ReindexOnEdit applies the symmetric difference between the tags of the
// previous and the new content: new-only tags are inserted, old-only tags are
// deleted, shared tags keep their rows. Runs inside the caller's transaction.
func (i *Indexer) ReindexOnEdit(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, oldContent, newContent string) error {
	added, removed := Diff(oldContent, newContent)

	for _, tag := range added {
		if err := insertTag(ctx, tx, snapID, tag); err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := tx.WithContext(ctx).
			Where("twitsnap_id = ? AND name IN ?", snapID, removed).
			Delete(&models.Hashtag{}).Error; err != nil {
			return err
		}
	}

	i.logger.Debug("Reindexed hashtags",
		zap.String("snap_id", snapID.String()),
		zap.Int("added", len(added)),
		zap.Int("removed", len(removed)))

	return nil
}

// insertTag inserts a single tag row, tolerating a duplicate (postId, tag)
// pair: re-indexing the same tag twice must not fail the operation.
func insertTag(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, tag string) error {
	row := &models.Hashtag{SnapID: snapID, Name: tag}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
