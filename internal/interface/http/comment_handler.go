package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/response"
	"github.com/swagatom/blog-api/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required,max=200"`
	PostID  string `json:"postId" binding:"required"`
	UserID  string `json:"userId"`
}

// Create POST /api/comment/create
// The body userId survives for client compatibility but may only repeat the
// session identity.
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	cm, err := h.Svc.CreateComment(c.Request.Context(), caller, req.PostID, req.Content, req.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, commentJSON(cm), "comment created", nil)
}

// GetPostComments GET /api/comment/getPostComments/:postId
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	comments, err := h.Svc.GetPostComments(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, commentsJSON(comments), "comments fetched", nil)
}

// LikeComment PUT /api/comment/likeComment/:commentId
// Toggles the caller's like and returns the updated comment; clients read
// data.numberOfLikes.
func (h *CommentHandler) LikeComment(c *gin.Context) {
	cm, err := h.Svc.ToggleLike(c.Request.Context(), c.Param("commentId"), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, commentJSON(cm), "like toggled", nil)
}

type editCommentRequest struct {
	Content string `json:"content" binding:"required,max=200"`
}

// Edit PUT /api/comment/editComment/:commentId
func (h *CommentHandler) Edit(c *gin.Context) {
	var req editCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	cm, err := h.Svc.EditComment(c.Request.Context(), caller, c.Param("commentId"), req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, commentJSON(cm), "comment updated", nil)
}

// Delete DELETE /api/comment/deleteComment/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := h.Svc.DeleteComment(c.Request.Context(), caller, c.Param("commentId")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "comment deleted", nil)
}

// List GET /api/comment/getcomments?startIndex=&limit=&sort=
// Admin dashboard listing with totals.
func (h *CommentHandler) List(c *gin.Context) {
	startIndex, limit, sortAsc := pageParams(c)
	comments, total, lastMonth, err := h.Svc.ListComments(c.Request.Context(), startIndex, limit, sortAsc)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"comments":          commentsJSON(comments),
		"totalComments":     total,
		"lastMonthComments": lastMonth,
	}, "comments fetched", nil)
}

// commentJSON keeps the field names the front end has always read.
func commentJSON(cm *entity.Comment) map[string]any {
	return map[string]any{
		"_id":           cm.ID,
		"postId":        cm.PostID,
		"userId":        cm.UserID,
		"content":       cm.Content,
		"likes":         cm.Likes,
		"numberOfLikes": cm.NumberOfLikes,
		"createdAt":     cm.CreatedAt,
		"updatedAt":     cm.UpdatedAt,
	}
}

func commentsJSON(comments []*entity.Comment) []map[string]any {
	out := make([]map[string]any, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentJSON(cm))
	}
	return out
}
