package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/response"
	"github.com/swagatom/blog-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateUserRequest struct {
	Username       string `json:"username" binding:"omitempty,username"`
	Email          string `json:"email" binding:"omitempty,email"`
	Password       string `json:"password" binding:"omitempty,pwd"`
	ProfilePicture string `json:"profilePicture" binding:"omitempty,url"`
}

// Update PUT /api/user/update/:userId
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	u, err := h.Svc.UpdateUser(c.Request.Context(), caller, c.Param("userId"), application.UpdateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user updated", nil)
}

// Delete DELETE /api/user/delete/:userId
func (h *UserHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := h.Svc.DeleteUser(c.Request.Context(), caller, c.Param("userId")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

// Get GET /api/user/:userId
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "user fetched", nil)
}

// List GET /api/user/getusers?startIndex=&limit=&sort=
// Admin dashboard listing with totals. Password hashes never serialize.
func (h *UserHandler) List(c *gin.Context) {
	startIndex, limit, sortAsc := pageParams(c)
	users, total, lastMonth, err := h.Svc.ListUsers(c.Request.Context(), startIndex, limit, sortAsc)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	response.Success(c, http.StatusOK, gin.H{
		"users":          out,
		"totalUsers":     total,
		"lastMonthUsers": lastMonth,
	}, "users fetched", nil)
}

// UploadAvatar PUT /api/user/avatar
// Multipart field "image"; the object lands in GCS and its URL on the
// profile.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read image", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString(middleware.CtxUserID), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profilePicture": url}, "avatar uploaded", nil)
}

// pageParams reads the listing query contract shared by the dashboard
// endpoints: startIndex, limit, sort=asc|desc.
func pageParams(c *gin.Context) (startIndex, limit int, sortAsc bool) {
	startIndex, _ = strconv.Atoi(c.DefaultQuery("startIndex", "0"))
	if startIndex < 0 {
		startIndex = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "9"))
	if limit <= 0 || limit > 100 {
		limit = 9
	}
	sortAsc = c.Query("sort") == "asc"
	return startIndex, limit, sortAsc
}
