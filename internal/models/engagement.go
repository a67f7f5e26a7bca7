package models

import (
	"time"

	"github.com/google/uuid"
)

// Like represents a like on a snap. At most one row per (snap, user) pair.
type Like struct {
	SnapID  uuid.UUID `gorm:"type:uuid;primaryKey;column:twitsnap_id" json:"twitsnapId"`
	LikedBy uuid.UUID `gorm:"type:uuid;primaryKey;column:liked_by" json:"likedBy"`

	// Relationships
	Snap *Snap `gorm:"foreignKey:SnapID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}

// Snapshare represents a re-share of a snap into the sharer's feed.
type Snapshare struct {
	SnapID   uuid.UUID `gorm:"type:uuid;primaryKey;column:twitsnap_id" json:"twitsnapId"`
	SharedBy uuid.UUID `gorm:"type:uuid;primaryKey;column:shared_by" json:"sharedBy"`
	SharedAt time.Time `gorm:"not null;column:created_at" json:"sharedAt"`

	// Relationships
	Snap *Snap `gorm:"foreignKey:SnapID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Snapshare
func (Snapshare) TableName() string {
	return "snapshares"
}

// Mention represents a tagged reference from a snap to a user.
type Mention struct {
	SnapID        uuid.UUID `gorm:"type:uuid;primaryKey;column:twitsnap_id" json:"twitsnapId"`
	MentionedUser uuid.UUID `gorm:"type:uuid;primaryKey;column:user_mentioned" json:"mentionedUser"`

	// Relationships
	Snap *Snap `gorm:"foreignKey:SnapID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Mention
func (Mention) TableName() string {
	return "mentions"
}

// Favourite represents a user's bookmark of a snap.
type Favourite struct {
	SnapID uuid.UUID `gorm:"type:uuid;primaryKey;column:twitsnap_id" json:"twitsnapId"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"userId"`

	// Relationships
	Snap *Snap `gorm:"foreignKey:SnapID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Favourite
func (Favourite) TableName() string {
	return "favourites"
}
