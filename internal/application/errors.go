package application

import "errors"

// Sentinel errors returned by the services. Handlers translate them into
// HTTP statuses; nothing else about a failure reaches the client.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameEmailTaken = errors.New("username and email already exists")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrEmailDispatch      = errors.New("email dispatch failed")
)
