package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/twitsnap/twits/internal/domain"
)

type likeRequest struct {
	LikedBy uuid.UUID `json:"likedBy" binding:"required"`
}

type shareRequest struct {
	SharedBy uuid.UUID `json:"sharedBy" binding:"required"`
}

type mentionRequest struct {
	MentionedUser uuid.UUID `json:"mentionedUser" binding:"required"`
}

type favouriteRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

func (r *Router) likeSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Like(c.Request.Context(), id, req.LikedBy); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (r *Router) unlikeSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Unlike(c.Request.Context(), id, req.LikedBy); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listLikes(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	likes, err := r.snaps.ListLikes(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": likes})
}

func (r *Router) shareSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Share(c.Request.Context(), id, req.SharedBy); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (r *Router) unshareSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Unshare(c.Request.Context(), id, req.SharedBy); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) mentionUser(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req mentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Mention(c.Request.Context(), id, req.MentionedUser); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (r *Router) unmentionUser(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req mentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Unmention(c.Request.Context(), id, req.MentionedUser); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listMentions(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	mentions, err := r.snaps.ListMentions(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mentions})
}

func (r *Router) favouriteSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Favourite(c.Request.Context(), id, req.UserID); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (r *Router) unfavouriteSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	if err := r.snaps.Unfavourite(c.Request.Context(), id, req.UserID); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listFavourites(c *gin.Context) {
	userID, ok := r.pathID(c, "userId")
	if !ok {
		return
	}
	snaps, err := r.snaps.ListFavourites(c.Request.Context(), userID)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}
