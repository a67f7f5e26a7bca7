// Package feed assembles the reverse-chronological, follow-scoped timeline
// mixing original snaps and re-shares.
package feed

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/twitsnap/twits/internal/models"
	"github.com/twitsnap/twits/pkg/telemetry"
)

// ItemSource supplies the two sorted, limited feed streams.
type ItemSource interface {
	OriginalsBefore(ctx context.Context, authorIDs []uuid.UUID, cursor time.Time, limit int) ([]models.TimelineItem, error)
	ResharesBefore(ctx context.Context, sharerIDs []uuid.UUID, cursor time.Time, limit int) ([]models.TimelineItem, error)
}

// CounterSource supplies batched engagement counters for a page of snaps.
type CounterSource interface {
	ForSnaps(ctx context.Context, snapIDs []uuid.UUID) (map[uuid.UUID]models.Counts, error)
}

// Assembler produces feed pages.
type Assembler struct {
	source   ItemSource
	counters CounterSource
	logger   *zap.Logger
}

// NewAssembler creates a new feed assembler
func NewAssembler(source ItemSource, counters CounterSource, logger *zap.Logger) *Assembler {
	return &Assembler{
		source:   source,
		counters: counters,
		logger:   logger.With(zap.String("component", "feed-assembler")),
	}
}

// AssembleFeed returns up to pageSize timeline items from the given authors
// with ordering timestamps strictly before cursor, newest first. Re-shares
// order by their share time, so one snap can appear twice on a page: once as
// the original and once as a re-share. The cursor is exclusive; passing the
// ordering timestamp of the last item of a full page yields the next page.
func (a *Assembler) AssembleFeed(ctx context.Context, cursor time.Time, pageSize int, followed []uuid.UUID) ([]models.TimelineItem, error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.assemble")
	defer span.End()

	if len(followed) == 0 {
		return []models.TimelineItem{}, nil
	}

	// Both streams are sorted descending and independently limited to
	// pageSize, so merge-and-truncate yields the true top-pageSize of the
	// union.
	originals, err := a.source.OriginalsBefore(ctx, followed, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	reshares, err := a.source.ResharesBefore(ctx, followed, cursor, pageSize)
	if err != nil {
		return nil, err
	}

	page := mergeRank(originals, reshares, pageSize)

	if err := a.enrich(ctx, page); err != nil {
		return nil, err
	}

	a.logger.Debug("Assembled feed page",
		zap.Int("originals", len(originals)),
		zap.Int("reshares", len(reshares)),
		zap.Int("page", len(page)))

	return page, nil
}

// mergeRank merges the two descending streams, orders by the ordering
// timestamp (share time for re-shares) and truncates to pageSize. Ties on
// identical timestamps break deterministically: originals before re-shares,
// then ascending snap id.
func mergeRank(originals, reshares []models.TimelineItem, pageSize int) []models.TimelineItem {
	merged := make([]models.TimelineItem, 0, len(originals)+len(reshares))
	merged = append(merged, originals...)
	merged = append(merged, reshares...)

	sort.Slice(merged, func(i, j int) bool {
		ti, tj := merged[i].CreatedAt, merged[j].CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		if merged[i].SharedBy.Valid != merged[j].SharedBy.Valid {
			return !merged[i].SharedBy.Valid
		}
		return bytes.Compare(merged[i].ID[:], merged[j].ID[:]) < 0
	})

	if len(merged) > pageSize {
		merged = merged[:pageSize]
	}
	return merged
}

// enrich fills the engagement counters of every item on the page with one
// batched lookup.
func (a *Assembler) enrich(ctx context.Context, page []models.TimelineItem) error {
	if len(page) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(page))
	seen := make(map[uuid.UUID]struct{}, len(page))
	for _, item := range page {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}

	counts, err := a.counters.ForSnaps(ctx, ids)
	if err != nil {
		return err
	}

	for i := range page {
		c := counts[page[i].ID]
		page[i].LikesCount = c.Likes
		page[i].SharesCount = c.Shares
		page[i].RepliesCount = c.Replies
	}
	return nil
}
