package models

import (
	"time"

	"github.com/google/uuid"
)

// Snap represents a twitsnap: a short post, optionally a reply to another snap.
// Content is nullable: a NULL content marks a soft-deleted reply whose row is
// kept so its own replies stay attached.
type Snap struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Content   *string       `gorm:"type:varchar(280);column:content" json:"message"`
	CreatedAt time.Time     `gorm:"not null;column:created_at" json:"createdAt"`
	IsPrivate bool          `gorm:"not null;default:false;column:is_private" json:"isPrivate"`
	CreatedBy uuid.UUID     `gorm:"type:uuid;not null;column:created_by" json:"createdBy"`
	ParentID  uuid.NullUUID `gorm:"type:uuid;column:parent_id" json:"parentId"`
	IsBlocked bool          `gorm:"not null;default:false;column:is_blocked" json:"isBlocked"`
}

// TableName specifies the table name for Snap
func (Snap) TableName() string {
	return "twitsnaps"
}

// IsReply reports whether this snap is a reply to another snap.
func (s *Snap) IsReply() bool {
	return s.ParentID.Valid
}

// IsDeleted reports whether this snap was soft-deleted (content redacted).
func (s *Snap) IsDeleted() bool {
	return s.Content == nil
}

// Hashtag represents a snap-to-tag mapping. Tags are stored lowercased and
// without the leading marker.
type Hashtag struct {
	SnapID uuid.UUID `gorm:"type:uuid;primaryKey;column:twitsnap_id" json:"twitsnapId"`
	Name   string    `gorm:"type:varchar(100);primaryKey;column:name" json:"name"`

	// Relationships
	Snap *Snap `gorm:"foreignKey:SnapID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Hashtag
func (Hashtag) TableName() string {
	return "hashtags"
}
