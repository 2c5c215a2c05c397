package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"teslo/internal/apperr"
	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func notFoundUser(key string) error {
	return fmt.Errorf("user %s: %w", key, repositories.ErrNotFound)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
	ctx := context.Background()

	input := models.RegisterUserInput{Email: "Test@Example.com ", Password: "Abc123", FullName: "Test User"}

	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, notFoundUser("test@example.com")).Once()
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "test@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("Abc123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	resp, err := authService.RegisterUser(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.User.ID)
	assert.NotEmpty(t, resp.Token)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(&models.User{ID: "user-123"}, nil).Once()
	_, err = authService.RegisterUser(ctx, input)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Contains(t, err.Error(), "test@example.com")

	// Store failure
	mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, notFoundUser("test@example.com")).Once()
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	_, err = authService.RegisterUser(ctx, input)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Abc123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Successful login
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	resp, err := authService.LoginUser(ctx, models.LoginUserInput{Email: user.Email, Password: "Abc123"})
	require.NoError(t, err)

	parsedToken, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])

	// Wrong password
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, models.LoginUserInput{Email: user.Email, Password: "wrong"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "Credentials are not valid", err.Error())

	// Unknown email gets the same answer
	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, notFoundUser("ghost@example.com")).Once()
	_, err = authService.LoginUser(ctx, models.LoginUserInput{Email: "ghost@example.com", Password: "Abc123"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "Credentials are not valid", err.Error())

	// Inactive user
	inactive := *user
	inactive.IsActive = false
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(&inactive, nil).Once()
	_, err = authService.LoginUser(ctx, models.LoginUserInput{Email: user.Email, Password: "Abc123"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"email":   "test@example.com",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	otherSecret, _ := token.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(otherSecret)
	assert.Error(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nil)
	ctx := context.Background()

	user := &models.User{ID: "user-123", Email: "test@example.com", IsActive: true}
	resp, err := authService.CheckAuthStatus(user)
	require.NoError(t, err)

	mockRepo.On("GetByID", mock.Anything, "user-123").Return(user, nil).Once()
	got, err := authService.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	mockRepo.On("GetByID", mock.Anything, "user-123").Return(nil, notFoundUser("user-123")).Once()
	_, err = authService.Authenticate(ctx, resp.Token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	mockRepo.On("GetByID", mock.Anything, "user-123").Return(&models.User{ID: "user-123", IsActive: false}, nil).Once()
	_, err = authService.Authenticate(ctx, resp.Token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = authService.Authenticate(ctx, "garbage")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	mockRepo.AssertExpectations(t)
}
