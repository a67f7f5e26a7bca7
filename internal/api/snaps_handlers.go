package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/twitsnap/twits/internal/domain"
)

// createSnapRequest mirrors the upstream newTwitSnap schema.
type createSnapRequest struct {
	Message   string     `json:"message"`
	CreatedBy uuid.UUID  `json:"createdBy" binding:"required"`
	IsPrivate bool       `json:"isPrivate"`
	ParentID  *uuid.UUID `json:"parentId"`
}

type editSnapRequest struct {
	Message   string `json:"message"`
	IsPrivate *bool  `json:"isPrivate"`
}

type replyRequest struct {
	Message   string    `json:"message"`
	CreatedBy uuid.UUID `json:"createdBy" binding:"required"`
	IsPrivate bool      `json:"isPrivate"`
}

// pathID parses the uuid path parameter, responding 400 on malformed input.
func (r *Router) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		r.respondError(c, domain.Validation(name+" must be a valid uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func (r *Router) createSnap(c *gin.Context) {
	var req createSnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}

	var parent uuid.NullUUID
	if req.ParentID != nil {
		parent = uuid.NullUUID{UUID: *req.ParentID, Valid: true}
	}

	snap, err := r.snaps.CreateSnap(c.Request.Context(), req.Message, req.CreatedBy, req.IsPrivate, parent)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": snap})
}

func (r *Router) listSnaps(c *gin.Context) {
	snaps, err := r.snaps.GetSnaps(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}

func (r *Router) getSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	snap, err := r.snaps.GetSnapByID(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func (r *Router) editSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req editSnapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	snap, err := r.snaps.EditSnap(c.Request.Context(), id, req.Message, req.IsPrivate)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snap})
}

func (r *Router) deleteSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	if err := r.snaps.DeleteSnap(c.Request.Context(), id); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) createReply(c *gin.Context) {
	parentID, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.respondError(c, domain.Validation(err.Error()))
		return
	}
	snap, err := r.snaps.CreateReply(c.Request.Context(), parentID, req.Message, req.CreatedBy, req.IsPrivate)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": snap})
}

func (r *Router) listReplies(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	replies, err := r.snaps.GetRepliesOf(c.Request.Context(), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": replies})
}

func (r *Router) snapsByUser(c *gin.Context) {
	userID, ok := r.pathID(c, "userId")
	if !ok {
		return
	}
	snaps, err := r.snaps.GetSnapsBy(c.Request.Context(), userID)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}

func (r *Router) searchSnaps(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		r.respondError(c, domain.Validation("q must not be empty"))
		return
	}
	snaps, err := r.snaps.SearchSnaps(c.Request.Context(), q)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}

func (r *Router) blockSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	if err := r.snaps.BlockSnap(c.Request.Context(), id); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) unblockSnap(c *gin.Context) {
	id, ok := r.pathID(c, "id")
	if !ok {
		return
	}
	if err := r.snaps.UnblockSnap(c.Request.Context(), id); err != nil {
		r.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *Router) listBlocked(c *gin.Context) {
	snaps, err := r.snaps.ListBlockedSnaps(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}

func (r *Router) snapsByHashtag(c *gin.Context) {
	snaps, err := r.snaps.GetSnapsByHashtag(c.Request.Context(), c.Param("name"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snaps})
}

func (r *Router) searchHashtags(c *gin.Context) {
	tags, err := r.snaps.SearchHashtags(c.Request.Context(), c.Query("name"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}
