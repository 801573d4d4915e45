package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := setupServiceDB(t)
	return NewAuthService(repository.NewUserRepository(db), testJWTSecret, 0, testValidator(), testLogger())
}

func registerUser(t *testing.T, svc AuthService, username string) dto.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: username,
		Email:    username + "@madrasah.test",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterDefaultsToPendingTeacher(t *testing.T) {
	svc := newAuthService(t)

	user := registerUser(t, svc, "ustadz")
	require.Equal(t, models.RoleTeacher, user.Role)
	require.Equal(t, string(models.UserStatusPending), user.Status)
}

func TestLoginRejectedUntilApproved(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := registerUser(t, svc, "pending")

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "pending", Password: "s3cret-password"})
	require.ErrorIs(t, err, ErrAccountNotApproved)

	_, err = svc.Approve(ctx, user.ID, Actor{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "pending", Password: "s3cret-password"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, models.RoleTeacher, claims["role"])
}

func TestLoginWrongPasswordHidesAccountState(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registerUser(t, svc, "someone")

	// Bad credentials always win over the approval state.
	_, err := svc.Login(ctx, dto.LoginRequest{Username: "someone", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestApprovalIsSingleShot(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	admin := Actor{ID: 1, Role: models.RoleAdmin}

	user := registerUser(t, svc, "reviewed")

	_, err := svc.Reject(ctx, user.ID, admin)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, user.ID, admin)
	require.ErrorIs(t, err, ErrUserAlreadyDecided)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}
