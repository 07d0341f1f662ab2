package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/internal/interface/middleware"
	"github.com/swagatom/blog-api/pkg/helpers"
	"github.com/swagatom/blog-api/pkg/response"
	"github.com/swagatom/blog-api/pkg/validation"
)

// AuthHandler owns credential issuance: it signs session tokens and sets the
// cookie, so the service layer stays transport-free.
type AuthHandler struct {
	Svc    *application.AuthService
	JWT    *helpers.JWTManager
	Cookie *helpers.CookieManager
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, cookie *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Cookie: cookie, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/auth/register
// Creates the account and signs the caller in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	token, exp, err := h.JWT.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.Cookie.Set(c, token, exp)
	response.Success(c, http.StatusCreated, u.Public(), "registration successful", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	token, exp, err := h.JWT.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.Cookie.Set(c, token, exp)
	response.Success(c, http.StatusOK, u.Public(), "login successful", nil)
}

// Logout POST /api/auth/logout
// Clears the cookie. Stateless tokens mean there is nothing server-side to
// revoke.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookie.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// IsAuth GET /api/auth/is-auth
// Reachable only through the session middleware; returns the caller's
// profile.
func (h *AuthHandler) IsAuth(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Public(), "authenticated", nil)
}

// SendVerifyOTP POST /api/auth/send-verify-otp
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	if err := h.Svc.SendVerifyOTP(c.Request.Context(), c.GetString(middleware.CtxUserID)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification otp sent", nil)
}

type verifyAccountRequest struct {
	OTP string `json:"otp" binding:"required,otp"`
}

// VerifyAccount POST /api/auth/verify-account
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var req verifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyAccount(c.Request.Context(), c.GetString(middleware.CtxUserID), req.OTP); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "account verified", nil)
}

type sendResetOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendResetOTP POST /api/auth/send-rest-otp
// The route path keeps the long-published public name.
func (h *AuthHandler) SendResetOTP(c *gin.Context) {
	var req sendResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "reset otp sent", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newpassword" binding:"required,pwd"`
	OTP         string `json:"otp" binding:"required,otp"`
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.NewPassword, req.OTP); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset successful", nil)
}
