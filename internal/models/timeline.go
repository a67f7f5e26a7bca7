package models

import (
	"time"

	"github.com/google/uuid"
)

// TimelineItem is the derived feed shape: a snap or a re-share of a snap,
// enriched with engagement counters. It is never persisted. The same snap can
// appear twice in one feed, once as the original and once as a re-share.
// For re-shared items CreatedAt carries the share time, which is what the
// feed orders and paginates by.
type TimelineItem struct {
	ID           uuid.UUID     `json:"id"`
	Content      string        `json:"message"`
	CreatedBy    uuid.UUID     `json:"createdBy"`
	CreatedAt    time.Time     `json:"createdAt"`
	SharedBy     uuid.NullUUID `json:"sharedBy"`
	IsPrivate    bool          `json:"isPrivate"`
	ParentID     uuid.NullUUID `json:"parentId"`
	LikesCount   int64         `json:"likesCount"`
	SharesCount  int64         `json:"sharesCount"`
	RepliesCount int64         `json:"repliesCount"`
}

// Counts holds the three engagement counters for one snap.
type Counts struct {
	Likes   int64
	Shares  int64
	Replies int64
}
