// Package snaps is the single authority for mutating snaps and their
// satellite rows (likes, shares, mentions, favourites, hashtags), enforcing
// the invariants the store's foreign keys do not fully express.
package snaps

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/twitsnap/twits/internal/db"
	"github.com/twitsnap/twits/internal/domain"
	"github.com/twitsnap/twits/internal/hashtag"
	"github.com/twitsnap/twits/internal/models"
)

// MaxContentLen is the maximum snap length in code points.
const MaxContentLen = 280

// Service orchestrates snap mutations and the content-graph reads.
type Service struct {
	repo       txRunner
	snaps      snapStore
	likes      likeStore
	shares     shareStore
	mentions   mentionStore
	favourites favouriteStore
	hashtags   hashtagStore
	indexer    tagIndexer
	logger     *zap.Logger
}

// NewService creates a new snap service
func NewService(repo *db.Repository, indexer *hashtag.Indexer, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		snaps:      db.NewSnapRepository(repo),
		likes:      db.NewLikeRepository(repo),
		shares:     db.NewSnapshareRepository(repo),
		mentions:   db.NewMentionRepository(repo),
		favourites: db.NewFavouriteRepository(repo),
		hashtags:   db.NewHashtagRepository(repo),
		indexer:    indexer,
		logger:     logger.With(zap.String("component", "snap-service")),
	}
}

func validateContent(content string) error {
	if content == "" {
		return domain.Validation("message must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return domain.Validation("message exceeds 280 characters")
	}
	return nil
}

// CreateSnap creates a snap and indexes its hashtags in one transaction. A
// non-nil parent must reference an existing snap.
func (s *Service) CreateSnap(ctx context.Context, content string, createdBy uuid.UUID, isPrivate bool, parentID uuid.NullUUID) (*models.Snap, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if parentID.Valid {
		parent, err := s.snaps.GetByID(ctx, parentID.UUID)
		if err != nil {
			return nil, domain.StoreFailure("snap", err)
		}
		if parent == nil {
			return nil, domain.NotFound("snap", "parent snap does not exist")
		}
	}

	snap := &models.Snap{
		ID:        uuid.New(),
		Content:   &content,
		CreatedAt: time.Now().UTC(),
		IsPrivate: isPrivate,
		CreatedBy: createdBy,
		ParentID:  parentID,
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.snaps.CreateTx(ctx, tx, snap); err != nil {
			return err
		}
		return s.indexer.IndexOnCreate(ctx, tx, snap.ID, content)
	})
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}

	s.logger.Debug("Created snap",
		zap.String("id", snap.ID.String()),
		zap.String("created_by", createdBy.String()),
		zap.Bool("reply", parentID.Valid))

	return snap, nil
}

// CreateReply creates a snap replying to parentID.
func (s *Service) CreateReply(ctx context.Context, parentID uuid.UUID, content string, createdBy uuid.UUID, isPrivate bool) (*models.Snap, error) {
	return s.CreateSnap(ctx, content, createdBy, isPrivate, uuid.NullUUID{UUID: parentID, Valid: true})
}

// EditSnap updates a snap's content and privacy and reindexes its hashtags
// against the previous content. Soft-deleted snaps cannot be edited.
func (s *Service) EditSnap(ctx context.Context, id uuid.UUID, content string, isPrivate *bool) (*models.Snap, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	snap, err := s.snaps.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	if snap == nil || snap.IsDeleted() {
		return nil, domain.NotFound("snap", "no snap with that id")
	}

	previous := ""
	if snap.Content != nil {
		previous = *snap.Content
	}
	snap.Content = &content
	if isPrivate != nil {
		snap.IsPrivate = *isPrivate
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.snaps.SaveTx(ctx, tx, snap); err != nil {
			return err
		}
		return s.indexer.ReindexOnEdit(ctx, tx, snap.ID, previous, content)
	})
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}

	return snap, nil
}

// DeleteSnap removes a snap. Replies are soft-deleted: the content is nulled
// but the row stays so nested replies keep their parent linkage and counters.
// Top-level snaps are hard-deleted; the store cascades the satellite rows.
func (s *Service) DeleteSnap(ctx context.Context, id uuid.UUID) error {
	snap, err := s.snaps.GetByID(ctx, id)
	if err != nil {
		return domain.StoreFailure("snap", err)
	}
	if snap == nil || snap.IsDeleted() {
		return domain.NotFound("snap", "no snap with that id")
	}

	if snap.IsReply() {
		previous := ""
		if snap.Content != nil {
			previous = *snap.Content
		}
		snap.Content = nil
		err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
			if err := s.snaps.SaveTx(ctx, tx, snap); err != nil {
				return err
			}
			return s.indexer.ReindexOnEdit(ctx, tx, snap.ID, previous, "")
		})
	} else {
		err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
			return s.snaps.DeleteTx(ctx, tx, id)
		})
	}
	if err != nil {
		return domain.StoreFailure("snap", err)
	}

	s.logger.Debug("Deleted snap",
		zap.String("id", id.String()),
		zap.Bool("soft", snap.IsReply()))

	return nil
}

// GetSnaps lists all non-blocked snaps, newest first.
func (s *Service) GetSnaps(ctx context.Context) ([]models.Snap, error) {
	snaps, err := s.snaps.ListVisible(ctx)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	return snaps, nil
}

// GetSnapByID fetches a snap. Blocked snaps are invisible on this path.
func (s *Service) GetSnapByID(ctx context.Context, id uuid.UUID) (*models.Snap, error) {
	snap, err := s.snaps.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	if snap == nil || snap.IsBlocked {
		return nil, domain.NotFound("snap", "no snap with that id")
	}
	return snap, nil
}

// GetSnapsBy lists a user's own snaps, newest first.
func (s *Service) GetSnapsBy(ctx context.Context, userID uuid.UUID) ([]models.Snap, error) {
	snaps, err := s.snaps.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	return snaps, nil
}

// GetRepliesOf lists the direct replies of a snap, newest first.
func (s *Service) GetRepliesOf(ctx context.Context, id uuid.UUID) ([]models.Snap, error) {
	parent, err := s.snaps.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	if parent == nil {
		return nil, domain.NotFound("snap", "no snap with that id")
	}
	replies, err := s.snaps.ListReplies(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	return replies, nil
}

// SearchSnaps lists non-blocked snaps whose content matches q.
func (s *Service) SearchSnaps(ctx context.Context, q string) ([]models.Snap, error) {
	snaps, err := s.snaps.Search(ctx, q)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	return snaps, nil
}

// Like records a like. Liking twice is a Conflict; liking a missing snap is
// NotFound.
func (s *Service) Like(ctx context.Context, snapID, userID uuid.UUID) error {
	err := s.likes.Insert(ctx, &models.Like{SnapID: snapID, LikedBy: userID})
	return translateInsert(err, "like")
}

// Unlike removes a like; NotFound if none existed.
func (s *Service) Unlike(ctx context.Context, snapID, userID uuid.UUID) error {
	existed, err := s.likes.Delete(ctx, snapID, userID)
	if err != nil {
		return domain.StoreFailure("like", err)
	}
	if !existed {
		return domain.NotFound("like", "no like by that user")
	}
	return nil
}

// ListLikes lists the likes of a snap.
func (s *Service) ListLikes(ctx context.Context, snapID uuid.UUID) ([]models.Like, error) {
	likes, err := s.likes.List(ctx, snapID)
	if err != nil {
		return nil, domain.StoreFailure("like", err)
	}
	return likes, nil
}

// Share records a snapshare at the current time.
func (s *Service) Share(ctx context.Context, snapID, userID uuid.UUID) error {
	err := s.shares.Insert(ctx, &models.Snapshare{
		SnapID:   snapID,
		SharedBy: userID,
		SharedAt: time.Now().UTC(),
	})
	return translateInsert(err, "snapshare")
}

// Unshare removes a snapshare; NotFound if none existed.
func (s *Service) Unshare(ctx context.Context, snapID, userID uuid.UUID) error {
	existed, err := s.shares.Delete(ctx, snapID, userID)
	if err != nil {
		return domain.StoreFailure("snapshare", err)
	}
	if !existed {
		return domain.NotFound("snapshare", "no snapshare by that user")
	}
	return nil
}

// Mention records a mention of a user on a snap.
func (s *Service) Mention(ctx context.Context, snapID, userID uuid.UUID) error {
	err := s.mentions.Insert(ctx, &models.Mention{SnapID: snapID, MentionedUser: userID})
	return translateInsert(err, "mention")
}

// Unmention removes a mention; NotFound if none existed.
func (s *Service) Unmention(ctx context.Context, snapID, userID uuid.UUID) error {
	existed, err := s.mentions.Delete(ctx, snapID, userID)
	if err != nil {
		return domain.StoreFailure("mention", err)
	}
	if !existed {
		return domain.NotFound("mention", "no mention of that user")
	}
	return nil
}

// ListMentions lists the mentions on a snap.
func (s *Service) ListMentions(ctx context.Context, snapID uuid.UUID) ([]models.Mention, error) {
	mentions, err := s.mentions.List(ctx, snapID)
	if err != nil {
		return nil, domain.StoreFailure("mention", err)
	}
	return mentions, nil
}

// Favourite bookmarks a snap for a user. Store-level conflicts pass through
// unclassified.
func (s *Service) Favourite(ctx context.Context, snapID, userID uuid.UUID) error {
	if err := s.favourites.Insert(ctx, &models.Favourite{SnapID: snapID, UserID: userID}); err != nil {
		return domain.StoreFailure("favourite", err)
	}
	return nil
}

// Unfavourite removes a bookmark; NotFound if none existed.
func (s *Service) Unfavourite(ctx context.Context, snapID, userID uuid.UUID) error {
	existed, err := s.favourites.Delete(ctx, snapID, userID)
	if err != nil {
		return domain.StoreFailure("favourite", err)
	}
	if !existed {
		return domain.NotFound("favourite", "no favourite by that user")
	}
	return nil
}

// ListFavourites lists the non-blocked snaps a user favourited.
func (s *Service) ListFavourites(ctx context.Context, userID uuid.UUID) ([]models.Snap, error) {
	snaps, err := s.favourites.ListSnapsByUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreFailure("favourite", err)
	}
	return snaps, nil
}

// BlockSnap hides a snap from every read path except the blocked listing.
func (s *Service) BlockSnap(ctx context.Context, id uuid.UUID) error {
	return s.setBlocked(ctx, id, true)
}

// UnblockSnap lifts the moderation flag.
func (s *Service) UnblockSnap(ctx context.Context, id uuid.UUID) error {
	return s.setBlocked(ctx, id, false)
}

func (s *Service) setBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	matched, err := s.snaps.SetBlocked(ctx, id, blocked)
	if err != nil {
		return domain.StoreFailure("snap", err)
	}
	if !matched {
		return domain.NotFound("snap", "no snap with that id")
	}
	return nil
}

// ListBlockedSnaps lists blocked snaps. Admin read path.
func (s *Service) ListBlockedSnaps(ctx context.Context) ([]models.Snap, error) {
	snaps, err := s.snaps.ListBlocked(ctx)
	if err != nil {
		return nil, domain.StoreFailure("snap", err)
	}
	return snaps, nil
}

// GetSnapsByHashtag lists non-blocked snaps tagged with the given hashtag.
// The leading marker, if passed, is stripped; matching is case-insensitive.
func (s *Service) GetSnapsByHashtag(ctx context.Context, tag string) ([]models.Snap, error) {
	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	if tag == "" {
		return nil, domain.Validation("hashtag must not be empty")
	}
	snaps, err := s.hashtags.SnapsByTag(ctx, tag)
	if err != nil {
		return nil, domain.StoreFailure("hashtag", err)
	}
	return snaps, nil
}

// SearchHashtags lists distinct indexed tags starting with prefix.
func (s *Service) SearchHashtags(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.ToLower(strings.TrimPrefix(prefix, "#"))
	tags, err := s.hashtags.SearchTags(ctx, prefix)
	if err != nil {
		return nil, domain.StoreFailure("hashtag", err)
	}
	return tags, nil
}

// translateInsert maps the store's typed constraint-violation results onto
// the domain taxonomy: a duplicate key means the engagement already exists, a
// foreign-key violation means the snap does not.
func translateInsert(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict(entity, "already exists for that snap and user")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NotFound("snap", "no snap with that id")
	}
	return domain.StoreFailure(entity, err)
}
