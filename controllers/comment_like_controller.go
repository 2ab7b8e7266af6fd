package controllers

import (
	"net/http"

	"Gin_postgres_redis_catalog/app"
	"Gin_postgres_redis_catalog/dto"
	"Gin_postgres_redis_catalog/notify"

	"github.com/gin-gonic/gin"
)

type CommentLikeController struct{ *Srv }

func NewCommentLikeController(s *Srv) *CommentLikeController {
	return &CommentLikeController{Srv: s}
}

// GET /api/items/:id/comments
func (cc *CommentLikeController) ListComments(c *gin.Context) {
	comments, err := cc.Repo.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"comments": comments})
}

// POST /api/items/:id/comments
func (cc *CommentLikeController) AddComment(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in dto.CommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := dto.Validate(in); err != nil {
		writeError(c, err)
		return
	}

	comment, err := cc.Repo.AddComment(c.Request.Context(), c.Param("id"), uid, in.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	authorName := "Anonymous"
	if comment.User != nil {
		authorName = comment.User.Username
	}
	cc.Comments.Publish(c.Request.Context(), notify.CommentEvent{
		ItemID:     comment.ItemID,
		AuthorName: authorName,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	})

	c.JSON(http.StatusCreated, app.H{"comment": comment})
}

// POST /api/items/:id/like
func (cc *CommentLikeController) ToggleLike(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	itemID := c.Param("id")
	liked, err := cc.Repo.ToggleLike(c.Request.Context(), itemID, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	count, err := cc.Repo.CountLikes(c.Request.Context(), itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"liked": liked, "likeCount": count})
}
