package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swagatom/blog-api/internal/domain/entity"
	"github.com/swagatom/blog-api/pkg/helpers"
)

func newAuthFixture(enq *memEnqueuer) (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, enq, nil, "swagatom", enq != nil)
	return svc, repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		enq := &memEnqueuer{}
		svc, _ := newAuthFixture(enq)

		u, err := svc.Register(ctx, "alicewrites", "alice@example.com", "secret99")
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.Equal(t, entity.RoleUser, u.Role)
		require.NotEqual(t, "secret99", u.Password)
		require.True(t, helpers.CompareHashAndPassword(u.Password, "secret99"))
		require.Equal(t, 1, enq.count(), "welcome email should be enqueued")
	})

	t.Run("welcome email failure does not fail registration", func(t *testing.T) {
		enq := &memEnqueuer{fail: true}
		svc, _ := newAuthFixture(enq)

		_, err := svc.Register(ctx, "bobbuilder", "bob@example.com", "secret99")
		require.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc, _ := newAuthFixture(nil)
		_, err := svc.Register(ctx, "carolcodes", "carol@example.com", "secret99")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "carolcodes", "other@example.com", "secret99")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture(nil)
		_, err := svc.Register(ctx, "davedraws", "dave@example.com", "secret99")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "daveagain", "dave@example.com", "secret99")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("both duplicated reports the combined conflict", func(t *testing.T) {
		svc, _ := newAuthFixture(nil)
		_, err := svc.Register(ctx, "evaexists", "eva@example.com", "secret99")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "evaexists", "eva@example.com", "secret99")
		require.ErrorIs(t, err, ErrUsernameEmailTaken)
	})

	t.Run("email is normalized to lowercase", func(t *testing.T) {
		svc, _ := newAuthFixture(nil)
		u, err := svc.Register(ctx, "frankfilms", "Frank@Example.COM", "secret99")
		require.NoError(t, err)
		require.Equal(t, "frank@example.com", u.Email)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(nil)

	_, err := svc.Register(ctx, "graceguest", "grace@example.com", "secret99")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "grace@example.com", "secret99")
		require.NoError(t, err)
		require.Equal(t, "graceguest", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "grace@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret99")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyOTPFlow(t *testing.T) {
	ctx := context.Background()
	enq := &memEnqueuer{}
	svc, repo := newAuthFixture(enq)

	u, err := svc.Register(ctx, "harryhikes", "harry@example.com", "secret99")
	require.NoError(t, err)

	t.Run("send stores a six digit code", func(t *testing.T) {
		require.NoError(t, svc.SendVerifyOTP(ctx, u.ID))

		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, stored.VerifyOTP, 6)
		require.True(t, stored.VerifyOTPExp.After(time.Now()))
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		err := svc.VerifyAccount(ctx, u.ID, "000000")
		stored, _ := repo.GetByID(ctx, u.ID)
		if stored.VerifyOTP == "000000" {
			t.Skip("generated code collided with the guess")
		}
		require.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("correct code verifies and clears state", func(t *testing.T) {
		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NoError(t, svc.VerifyAccount(ctx, u.ID, stored.VerifyOTP))

		stored, err = repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, stored.IsVerified)
		require.Empty(t, stored.VerifyOTP)
	})

	t.Run("verified account cannot request another code", func(t *testing.T) {
		require.ErrorIs(t, svc.SendVerifyOTP(ctx, u.ID), ErrAlreadyVerified)
	})

	t.Run("expired code", func(t *testing.T) {
		u2, err := svc.Register(ctx, "isaacpaints", "isaac@example.com", "secret99")
		require.NoError(t, err)
		require.NoError(t, svc.SendVerifyOTP(ctx, u2.ID))

		stored, err := repo.GetByID(ctx, u2.ID)
		require.NoError(t, err)
		stored.VerifyOTPExp = time.Now().Add(-time.Minute)
		require.NoError(t, repo.Update(ctx, stored))

		require.ErrorIs(t, svc.VerifyAccount(ctx, u2.ID, stored.VerifyOTP), ErrOTPExpired)
	})

	t.Run("enqueue failure fails the request", func(t *testing.T) {
		u3, err := svc.Register(ctx, "judyjuggles", "judy@example.com", "secret99")
		require.NoError(t, err)

		enq.fail = true
		defer func() { enq.fail = false }()
		require.ErrorIs(t, svc.SendVerifyOTP(ctx, u3.ID), ErrEmailDispatch)
	})
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	enq := &memEnqueuer{}
	svc, repo := newAuthFixture(enq)

	u, err := svc.Register(ctx, "kellyknits", "kelly@example.com", "secret99")
	require.NoError(t, err)

	t.Run("unverified account cannot request reset", func(t *testing.T) {
		require.ErrorIs(t, svc.SendResetOTP(ctx, u.Email), ErrNotVerified)
	})

	// verify the account first
	require.NoError(t, svc.SendVerifyOTP(ctx, u.ID))
	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, svc.VerifyAccount(ctx, u.ID, stored.VerifyOTP))

	t.Run("unknown email", func(t *testing.T) {
		require.ErrorIs(t, svc.SendResetOTP(ctx, "ghost@example.com"), ErrNotFound)
	})

	t.Run("reset with valid code replaces the password", func(t *testing.T) {
		require.NoError(t, svc.SendResetOTP(ctx, u.Email))
		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, u.Email, "brandnew1", stored.ResetOTP))

		_, err = svc.Login(ctx, u.Email, "brandnew1")
		require.NoError(t, err)
		_, err = svc.Login(ctx, u.Email, "secret99")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("code is single use", func(t *testing.T) {
		require.NoError(t, svc.SendResetOTP(ctx, u.Email))
		stored, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, u.Email, "another22", stored.ResetOTP))
		require.ErrorIs(t, svc.ResetPassword(ctx, u.Email, "third333", stored.ResetOTP), ErrInvalidOTP)
	})
}
