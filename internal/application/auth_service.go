package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swagatom/blog-api/internal/domain/entity"
	repo "github.com/swagatom/blog-api/internal/domain/repository"
	"github.com/swagatom/blog-api/pkg/helpers"
	"github.com/swagatom/blog-api/pkg/mailer"
	tpl "github.com/swagatom/blog-api/pkg/mailer/templates"
)

// EmailEnqueuer puts email jobs on the outgoing queue.
// *helpers.RabbitPublisher satisfies it in production.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, login, and the OTP flows.
type AuthService struct {
	Repo        repo.UserRepository
	Enqueuer    EmailEnqueuer
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, enq EmailEnqueuer, logger *logrus.Logger, appName string, mailEnabled bool) *AuthService {
	return &AuthService{Repo: r, Enqueuer: enq, Logger: logger, AppName: appName, MailEnabled: mailEnabled}
}

// Register creates a user with a bcrypt-hashed password. Username and email
// uniqueness are reported independently so the client learns which collided.
// A welcome email is enqueued best-effort; its failure never fails
// registration.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	byUsername, err := s.Repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	byEmail, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	switch {
	case byUsername != nil && byEmail != nil:
		return nil, ErrUsernameEmailTaken
	case byUsername != nil:
		return nil, ErrUsernameTaken
	case byEmail != nil:
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:       username,
		Email:          email,
		Password:       hash,
		ProfilePicture: entity.DefaultProfilePicture,
		Role:           entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// lost the race against a concurrent registration
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.enqueueMail(ctx, u, mailer.TemplateWelcome, ""); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
	return u, nil
}

// Login validates email/password and returns the user. Callers issue the
// session token themselves.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetUser resolves a user by id (used by the session middleware).
func (s *AuthService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// SendVerifyOTP stores a fresh account-verification code on the user and
// enqueues the email carrying it. The user cannot proceed without the code,
// so an enqueue failure fails the request.
func (s *AuthService) SendVerifyOTP(ctx context.Context, userID string) error {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	u.VerifyOTP = code
	u.VerifyOTPExp = time.Now().Add(helpers.OTPTTL)
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	if err := s.enqueueMail(ctx, u, mailer.TemplateVerifyOTP, code); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("verify otp enqueue failed")
		}
		return ErrEmailDispatch
	}
	return nil
}

// VerifyAccount checks the submitted code against the stored one and marks
// the account verified. The code is single-use; it is cleared on success.
func (s *AuthService) VerifyAccount(ctx context.Context, userID, otp string) error {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if u.VerifyOTP == "" || u.VerifyOTP != otp {
		return ErrInvalidOTP
	}
	if time.Now().After(u.VerifyOTPExp) {
		return ErrOTPExpired
	}
	u.IsVerified = true
	u.VerifyOTP = ""
	u.VerifyOTPExp = time.Time{}
	return s.Repo.Update(ctx, u)
}

// SendResetOTP stores a password-reset code for the account and enqueues
// the email. Only verified accounts may reset by OTP.
func (s *AuthService) SendResetOTP(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !u.IsVerified {
		return ErrNotVerified
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	u.ResetOTP = code
	u.ResetOTPExp = time.Now().Add(helpers.OTPTTL)
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	if err := s.enqueueMail(ctx, u, mailer.TemplateResetOTP, code); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("reset otp enqueue failed")
		}
		return ErrEmailDispatch
	}
	return nil
}

// ResetPassword validates the reset code and replaces the password hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword, otp string) error {
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !u.IsVerified {
		return ErrNotVerified
	}
	if u.ResetOTP == "" || u.ResetOTP != otp {
		return ErrInvalidOTP
	}
	if time.Now().After(u.ResetOTPExp) {
		return ErrOTPExpired
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ResetOTP = ""
	u.ResetOTPExp = time.Time{}
	return s.Repo.Update(ctx, u)
}

func (s *AuthService) enqueueMail(ctx context.Context, u *entity.User, template, code string) error {
	if !s.MailEnabled || s.Enqueuer == nil {
		return nil
	}
	data := tpl.NewEmailData(s.AppName, u.Username, u.Email)
	data.Code = code
	data.Minutes = int(helpers.OTPTTL.Minutes())
	job := mailer.EmailJob{To: u.Email, Template: template, Data: tpl.ToMap(data)}
	return s.Enqueuer.PublishJSON(ctx, job)
}
