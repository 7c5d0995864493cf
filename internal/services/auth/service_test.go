package auth

import (
	"context"
	"testing"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Run("hashes the password and stores the user", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repositories.ErrUserNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, err := NewService(repo, nil).Register(context.Background(), "Ada", "ada@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	})

	t.Run("concurrent registration loser gets the taken-email error", func(t *testing.T) {
		// The pre-check misses, the unique index catches it on insert.
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, repositories.ErrUserNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateEmail)

		_, err := NewService(repo, nil).Register(context.Background(), "Ada", "ada@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&models.User{ID: uuid.New()}, nil)

		_, err := NewService(repo, nil).Register(context.Background(), "Ada", "ada@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", Password: string(hash), Role: models.RoleUser}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		token, got, err := NewService(repo, nil).Login(context.Background(), user.Email, "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, _, err := NewService(repo, nil).Login(context.Background(), user.Email, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repositories.ErrUserNotFound)

		_, _, err := NewService(repo, nil).Login(context.Background(), "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
