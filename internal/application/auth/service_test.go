package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/YoungCoderX/Recipe-Rack/internal/domain/user"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/config"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/persistence/memory"
	"github.com/YoungCoderX/Recipe-Rack/internal/infrastructure/security"
	"github.com/YoungCoderX/Recipe-Rack/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUserRepo is an in-memory UserRepository for unit tests
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email() == email && u.Email() != "" {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Touch()
	}
	return nil
}

func newTestAuth(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key-for-testing-only-32-bytes",
			JWTExpiration: time.Hour,
		},
	}
	tokens := security.NewAuthService(cfg, zap.NewNop(), memory.NewCacheRepository())
	repo := newFakeUserRepo()
	return NewService(repo, tokens, zap.NewNop()), repo
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("NoToken_ShouldCreateAnonymousSession", func(t *testing.T) {
		svc, repo := newTestAuth(t)

		session, err := svc.Bootstrap(ctx, "")

		require.NoError(t, err)
		assert.True(t, session.Anonymous)
		assert.False(t, session.Resumed)
		assert.NotEmpty(t, session.AccessToken)
		assert.True(t, session.ExpiresAt.After(time.Now()))

		stored, err := repo.FindByID(ctx, session.UserID)
		require.NoError(t, err)
		assert.True(t, stored.IsAnonymous())
	})

	t.Run("ValidToken_ShouldResumeSession", func(t *testing.T) {
		svc, _ := newTestAuth(t)

		first, err := svc.Bootstrap(ctx, "")
		require.NoError(t, err)

		second, err := svc.Bootstrap(ctx, first.AccessToken)

		require.NoError(t, err)
		assert.True(t, second.Resumed)
		assert.Equal(t, first.UserID, second.UserID)
		assert.Equal(t, first.AccessToken, second.AccessToken)
	})

	t.Run("GarbageToken_ShouldFallBackToAnonymous", func(t *testing.T) {
		svc, _ := newTestAuth(t)

		session, err := svc.Bootstrap(ctx, "not-a-jwt")

		require.NoError(t, err)
		assert.True(t, session.Anonymous)
		assert.False(t, session.Resumed)
	})

	t.Run("TokenForDeletedUser_ShouldFallBackToAnonymous", func(t *testing.T) {
		svc, repo := newTestAuth(t)

		first, err := svc.Bootstrap(ctx, "")
		require.NoError(t, err)

		repo.mu.Lock()
		delete(repo.users, first.UserID)
		repo.mu.Unlock()

		second, err := svc.Bootstrap(ctx, first.AccessToken)

		require.NoError(t, err)
		assert.NotEqual(t, first.UserID, second.UserID)
		assert.False(t, second.Resumed)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("NewEmail_ShouldOpenSession", func(t *testing.T) {
		svc, _ := newTestAuth(t)

		session, err := svc.Register(ctx, RegisterCommand{
			Email:    "cook@example.com",
			Name:     "Alex",
			Password: "supersecret",
		})

		require.NoError(t, err)
		assert.False(t, session.Anonymous)
		assert.NotEmpty(t, session.AccessToken)
	})

	t.Run("DuplicateEmail_ShouldConflict", func(t *testing.T) {
		svc, _ := newTestAuth(t)

		_, err := svc.Register(ctx, RegisterCommand{
			Email: "cook@example.com", Name: "Alex", Password: "supersecret",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterCommand{
			Email: "cook@example.com", Name: "Sam", Password: "alsosecret",
		})

		require.Error(t, err)
		assert.Equal(t, errors.CodeEmailAlreadyExists, errors.GetCode(err))
	})

	t.Run("InvalidEmail_ShouldFailValidation", func(t *testing.T) {
		svc, _ := newTestAuth(t)

		_, err := svc.Register(ctx, RegisterCommand{
			Email: "nope", Name: "Alex", Password: "supersecret",
		})

		require.Error(t, err)
		assert.Equal(t, errors.CodeValidationFailed, errors.GetCode(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)

	_, err := svc.Register(ctx, RegisterCommand{
		Email: "cook@example.com", Name: "Alex", Password: "supersecret",
	})
	require.NoError(t, err)

	t.Run("CorrectPassword_ShouldOpenSession", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginCommand{
			Email: "cook@example.com", Password: "supersecret",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
	})

	t.Run("WrongPassword_ShouldBeRejected", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginCommand{
			Email: "cook@example.com", Password: "wrong",
		})

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidCredentials, errors.GetCode(err))
	})

	t.Run("UnknownEmail_ShouldBeRejected", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginCommand{
			Email: "nobody@example.com", Password: "supersecret",
		})

		require.Error(t, err)
		// Unknown accounts read as bad credentials, not as missing users
		assert.Equal(t, errors.CodeInvalidCredentials, errors.GetCode(err))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)

	session, err := svc.Bootstrap(ctx, "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.AccessToken))

	// A logged-out token must not resume
	next, err := svc.Bootstrap(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.UserID, next.UserID)
	assert.False(t, next.Resumed)
}
