package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
	mongorepo "portfolio-tracker/internal/repositories/mongo"
)

func newAuthService() (*AuthService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	})
	return svc, userRepo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and issues a token", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.User).ID = primitive.NewObjectID()
			}).
			Return(nil)

		user, token, err := svc.Register(ctx, "Alex", "Alex@Example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "alex@example.com", user.Email)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
	})

	t.Run("duplicate email maps to ErrEmailTaken", func(t *testing.T) {
		svc, userRepo := newAuthService()

		userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Return(mongorepo.ErrDuplicateEmail)

		_, _, err := svc.Register(ctx, "Alex", "alex@example.com", "secret123")

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	account := models.NewUser("Alex", "alex@example.com", string(hashed))
	account.ID = primitive.NewObjectID()

	t.Run("correct credentials return a token", func(t *testing.T) {
		svc, userRepo := newAuthService()
		userRepo.On("GetByEmail", ctx, "alex@example.com").Return(account, nil)

		user, token, err := svc.Login(ctx, "alex@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, account.ID, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password fails like unknown email", func(t *testing.T) {
		svc, userRepo := newAuthService()
		userRepo.On("GetByEmail", ctx, "alex@example.com").Return(account, nil)

		_, _, err := svc.Login(ctx, "alex@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		svc, userRepo := newAuthService()
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
