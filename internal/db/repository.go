package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn inside a database transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// SnapRepository provides snap-related database operations
type SnapRepository struct {
	*Repository
}

// NewSnapRepository creates a new snap repository
func NewSnapRepository(repo *Repository) *SnapRepository {
	return &SnapRepository{Repository: repo}
}

// GetByID retrieves a snap by ID
func (r *SnapRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Snap, error) {
	var snap models.Snap
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// ListVisible retrieves all non-blocked snaps, newest first
func (r *SnapRepository) ListVisible(ctx context.Context) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Where("is_blocked = ?", false).
		Order("created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListBlocked retrieves blocked snaps, newest first. Admin-only read path.
func (r *SnapRepository) ListBlocked(ctx context.Context) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Where("is_blocked = ?", true).
		Order("created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListByAuthor retrieves a user's non-blocked snaps, newest first
func (r *SnapRepository) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Where("created_by = ? AND is_blocked = ?", userID, false).
		Order("created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListReplies retrieves the direct replies of a snap, newest first
func (r *SnapRepository) ListReplies(ctx context.Context, parentID uuid.UUID) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_blocked = ?", parentID, false).
		Order("created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// Search retrieves non-blocked, non-redacted snaps whose content matches the
// query, newest first.
func (r *SnapRepository) Search(ctx context.Context, q string) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Where("content ILIKE ? AND is_blocked = ? AND content IS NOT NULL", "%"+q+"%", false).
		Order("created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// SetBlocked flips the moderation flag and reports whether a row matched.
func (r *SnapRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Snap{}).
		Where("id = ?", id).
		Update("is_blocked", blocked)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CreateTx inserts a snap row inside the caller's transaction.
func (r *SnapRepository) CreateTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error {
	return tx.WithContext(ctx).Create(snap).Error
}

// SaveTx writes every column of an existing snap row inside the caller's
// transaction.
func (r *SnapRepository) SaveTx(ctx context.Context, tx *gorm.DB, snap *models.Snap) error {
	return tx.WithContext(ctx).Save(snap).Error
}

// DeleteTx hard-deletes a snap row inside the caller's transaction. The
// satellite tables cascade on the snap's foreign keys.
func (r *SnapRepository) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&models.Snap{}, "id = ?", id).Error
}

// LikeRepository provides like-related database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// Insert creates a like row. Returns gorm.ErrDuplicatedKey if the pair is
// already liked and gorm.ErrForeignKeyViolated if the snap does not exist.
func (r *LikeRepository) Insert(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// Delete removes a like row and reports whether one existed.
func (r *LikeRepository) Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("twitsnap_id = ? AND liked_by = ?", snapID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List retrieves the likes of a snap
func (r *LikeRepository) List(ctx context.Context, snapID uuid.UUID) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("twitsnap_id = ?", snapID).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// SnapshareRepository provides snapshare-related database operations
type SnapshareRepository struct {
	*Repository
}

// NewSnapshareRepository creates a new snapshare repository
func NewSnapshareRepository(repo *Repository) *SnapshareRepository {
	return &SnapshareRepository{Repository: repo}
}

// Insert creates a snapshare row
func (r *SnapshareRepository) Insert(ctx context.Context, share *models.Snapshare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

// Delete removes a snapshare row and reports whether one existed.
func (r *SnapshareRepository) Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("twitsnap_id = ? AND shared_by = ?", snapID, userID).
		Delete(&models.Snapshare{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MentionRepository provides mention-related database operations
type MentionRepository struct {
	*Repository
}

// NewMentionRepository creates a new mention repository
func NewMentionRepository(repo *Repository) *MentionRepository {
	return &MentionRepository{Repository: repo}
}

// Insert creates a mention row
func (r *MentionRepository) Insert(ctx context.Context, mention *models.Mention) error {
	return r.db.WithContext(ctx).Create(mention).Error
}

// Delete removes a mention row and reports whether one existed.
func (r *MentionRepository) Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("twitsnap_id = ? AND user_mentioned = ?", snapID, userID).
		Delete(&models.Mention{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List retrieves the mentions of a snap
func (r *MentionRepository) List(ctx context.Context, snapID uuid.UUID) ([]models.Mention, error) {
	var mentions []models.Mention
	if err := r.db.WithContext(ctx).
		Where("twitsnap_id = ?", snapID).
		Find(&mentions).Error; err != nil {
		return nil, err
	}
	return mentions, nil
}

// FavouriteRepository provides favourite-related database operations
type FavouriteRepository struct {
	*Repository
}

// NewFavouriteRepository creates a new favourite repository
func NewFavouriteRepository(repo *Repository) *FavouriteRepository {
	return &FavouriteRepository{Repository: repo}
}

// Insert creates a favourite row
func (r *FavouriteRepository) Insert(ctx context.Context, fav *models.Favourite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// Delete removes a favourite row and reports whether one existed.
func (r *FavouriteRepository) Delete(ctx context.Context, snapID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("twitsnap_id = ? AND user_id = ?", snapID, userID).
		Delete(&models.Favourite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListSnapsByUser retrieves the non-blocked snaps a user favourited, newest
// favourites first.
func (r *FavouriteRepository) ListSnapsByUser(ctx context.Context, userID uuid.UUID) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Model(&models.Snap{}).
		Joins("INNER JOIN favourites ON favourites.twitsnap_id = twitsnaps.id").
		Where("favourites.user_id = ? AND twitsnaps.is_blocked = ?", userID, false).
		Order("twitsnaps.created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// HashtagRepository provides hashtag-related database operations
type HashtagRepository struct {
	*Repository
}

// NewHashtagRepository creates a new hashtag repository
func NewHashtagRepository(repo *Repository) *HashtagRepository {
	return &HashtagRepository{Repository: repo}
}

// SnapsByTag retrieves the non-blocked snaps carrying an exact tag, newest
// first.
func (r *HashtagRepository) SnapsByTag(ctx context.Context, tag string) ([]models.Snap, error) {
	var snaps []models.Snap
	if err := r.db.WithContext(ctx).
		Model(&models.Snap{}).
		Joins("INNER JOIN hashtags ON hashtags.twitsnap_id = twitsnaps.id").
		Where("hashtags.name = ? AND twitsnaps.is_blocked = ?", tag, false).
		Order("twitsnaps.created_at DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// SearchTags retrieves distinct tags starting with prefix.
func (r *HashtagRepository) SearchTags(ctx context.Context, prefix string) ([]string, error) {
	var tags []string
	if err := r.db.WithContext(ctx).
		Model(&models.Hashtag{}).
		Distinct("name").
		Where("name LIKE ?", prefix+"%").
		Order("name").
		Pluck("name", &tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
