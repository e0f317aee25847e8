package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

func newAuthFixture(t *testing.T, name string) (AuthService, *memoryActivityRepo) {
	t.Helper()
	db := setupServiceDB(t, name, &models.User{})
	users := repository.NewUserRepository(db)

	activity := &memoryActivityRepo{}
	recorder := NewActivityRecorder(activity, testRegistry(), testLogger())

	svc := NewAuthService(users, recorder, validator.New(), "test-secret", time.Hour, testLogger())
	return svc, activity
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc, activity := newAuthFixture(t, "auth_register")

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "alice@example.com", registered.User.Email)
	require.Equal(t, models.RoleProjectManager, registered.User.Role)

	// The registration itself lands in the activity trail, credited to the
	// fresh account.
	require.Len(t, activity.entries, 1)
	require.Equal(t, "user", activity.entries[0].SubjectType)
	require.Equal(t, "created", activity.entries[0].Action)
	require.Equal(t, &registered.User.ID, activity.entries[0].UserID)

	token, err := jwt.Parse(registered.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "Alice", claims["name"])
	require.Equal(t, models.RoleProjectManager, claims["role"])

	logged, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, logged.User.ID)
}

func TestAuthServiceRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, "auth_duplicate")

	payload := dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t, "auth_credentials")

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceMe(t *testing.T) {
	svc, _ := newAuthFixture(t, "auth_me")

	registered, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), registered.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", me.Name)

	_, err = svc.Me(context.Background(), 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
