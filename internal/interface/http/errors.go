package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swagatom/blog-api/internal/application"
	"github.com/swagatom/blog-api/pkg/response"
)

// writeServiceError maps application sentinels onto HTTP statuses and writes
// the failure envelope. Failures carry real status codes; a masked 200 never
// leaves this layer.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, application.ErrInvalidOTP):
		status, msg = http.StatusUnauthorized, "invalid otp"
	case errors.Is(err, application.ErrOTPExpired):
		status, msg = http.StatusGone, "otp expired"
	case errors.Is(err, application.ErrForbidden):
		status, msg = http.StatusForbidden, "forbidden"
	case errors.Is(err, application.ErrNotVerified):
		status, msg = http.StatusForbidden, "account not verified"
	case errors.Is(err, application.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, application.ErrUsernameEmailTaken):
		status, msg = http.StatusConflict, "username and email already in use"
	case errors.Is(err, application.ErrUsernameTaken):
		status, msg = http.StatusConflict, "username already in use"
	case errors.Is(err, application.ErrEmailTaken):
		status, msg = http.StatusConflict, "email already in use"
	case errors.Is(err, application.ErrAlreadyVerified):
		status, msg = http.StatusConflict, "account already verified"
	case errors.Is(err, application.ErrEmailDispatch):
		status, msg = http.StatusBadGateway, "could not send email"
	}

	response.Error[any](c, status, msg, nil)
}
