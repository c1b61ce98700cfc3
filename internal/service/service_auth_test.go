package service

import (
	"context"
	"testing"
	"time"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo keeps registered users in memory.
type stubUserRepo struct {
	users  map[string]models.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]models.User{}, nextID: 1}
}

func (s *stubUserRepo) CreateUser(_ context.Context, user models.User) (models.User, error) {
	user.UserID = s.nextID
	s.nextID++
	s.users[user.Login] = user
	return user, nil
}

func (s *stubUserRepo) FindUserByLogin(_ context.Context, user models.User) (models.User, error) {
	found, ok := s.users[user.Login]
	if !ok {
		return models.User{}, ErrInvalidDataProvided
	}
	return found, nil
}

func newTestAuthSvc() (*authService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "memodeck-test",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.Nop()).(*authService), repo
}

// ── RegisterUser / Login ────────────────────────────────────────────────────

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, repo := newTestAuthSvc()
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, models.User{Login: "john", Password: "secret", Name: "John"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), registered.UserID)
	assert.Empty(t, registered.Password)
	assert.NotEmpty(t, repo.users["john"].PasswordHash)
	assert.NotEqual(t, "secret", repo.users["john"].PasswordHash)

	loggedIn, err := svc.Login(ctx, models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthSvc()
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.User{Login: "john", Password: "wrong"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_RegisterUser_MissingCredentials(t *testing.T) {
	svc, _ := newTestAuthSvc()

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── CreateToken / ParseToken ────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthSvc()
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthSvc()

	_, err := svc.ParseToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
