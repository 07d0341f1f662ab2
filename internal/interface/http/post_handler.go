package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/response"
	"github.com/swagatom/blog-api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title    string `json:"title" binding:"required,min=3"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Image    string `json:"image" binding:"omitempty,url"`
}

// Create POST /api/post/create
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	p, err := h.Svc.CreatePost(c.Request.Context(), caller, application.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created", nil)
}

// List GET /api/post/getposts
// Public listing with the filter set the front page and dashboard share.
func (h *PostHandler) List(c *gin.Context) {
	startIndex, limit, sortAsc := pageParams(c)
	f := repository.PostFilter{
		UserID:     c.Query("userId"),
		Category:   c.Query("category"),
		Slug:       c.Query("slug"),
		PostID:     c.Query("postId"),
		SearchTerm: c.Query("searchTerm"),
		Offset:     startIndex,
		Limit:      limit,
		OrderAsc:   sortAsc,
	}
	posts, total, lastMonth, err := h.Svc.GetPosts(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"posts":          posts,
		"totalPosts":     total,
		"lastMonthPosts": lastMonth,
	}, "posts fetched", nil)
}

// Search GET /api/post/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q required", nil)
		return
	}
	_, limit, _ := pageParams(c)
	hits, err := h.Svc.SearchPosts(c.Request.Context(), q, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results", nil)
}

type updatePostRequest struct {
	Title    string `json:"title" binding:"omitempty,min=3"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image" binding:"omitempty,url"`
}

// Update PUT /api/post/updatepost/:postId
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	p, err := h.Svc.UpdatePost(c.Request.Context(), caller, c.Param("postId"), application.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated", nil)
}

// Delete DELETE /api/post/deletepost/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := h.Svc.DeletePost(c.Request.Context(), caller, c.Param("postId")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "post deleted", nil)
}
