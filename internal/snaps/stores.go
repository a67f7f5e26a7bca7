package snaps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/models"
)

// The service consumes the store through narrow interfaces so the branch
// logic (soft vs hard delete, parent checks, conflict translation) can be
// exercised against fakes. internal/db provides the gorm-backed
// implementations.

type txRunner interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type snapStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Snap, error)
	ListVisible(ctx context.Context) ([]models.Snap, error)
	ListBlocked(ctx context.Context) ([]models.Snap, error)
	ListByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Snap, error)
	ListReplies(ctx context.Context, parentID uuid.UUID) ([]models.Snap, error)
	Search(ctx context.Context, q string) ([]models.Snap, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (bool, error)
	CreateTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error
	SaveTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type tagIndexer interface {
	IndexOnCreate(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, content string) error
	ReindexOnEdit(ctx context.Context, tx *gorm.DB, snapID uuid.UUID, oldContent, newContent string) error
}

type likeStore interface {
	Insert(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error)
	List(ctx context.Context, snapID uuid.UUID) ([]models.Like, error)
}

type shareStore interface {
	Insert(ctx context.Context, share *models.Snapshare) error
	Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error)
}

type mentionStore interface {
	Insert(ctx context.Context, mention *models.Mention) error
	Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error)
	List(ctx context.Context, snapID uuid.UUID) ([]models.Mention, error)
}

type favouriteStore interface {
	Insert(ctx context.Context, fav *models.Favourite) error
	Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error)
	ListSnapsByUser(ctx context.Context, userID uuid.UUID) ([]models.Snap, error)
}

type hashtagStore interface {
	SnapsByTag(ctx context.Context, tag string) ([]models.Snap, error)
	SearchTags(ctx context.Context, prefix string) ([]string, error)
}
