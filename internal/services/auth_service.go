package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teslo/internal/apperr"
	"teslo/internal/logger"
	"teslo/internal/models"
	"teslo/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Credentials are not valid"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logger.Logger
}

// NewAuthService creates a new AuthService. A non-positive tokenTTL falls
// back to 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// RegisterUser hashes the password, stores the new account and logs it in.
func (s *AuthService) RegisterUser(ctx context.Context, input models.RegisterUserInput) (*models.AuthResponse, error) {
	email := models.NormalizeEmail(input.Email)
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperr.Conflict(fmt.Sprintf("Key (email)=(%s) already exists.", email), nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", "error", err)
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashedPassword),
		FullName: input.FullName,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if detail, ok := apperr.UniqueViolation(err); ok {
			return nil, apperr.Conflict(detail, err)
		}
		s.log.Error("failed to register user", "email", email, "error", err)
		return nil, apperr.Internal(err)
	}

	return s.issue(user)
}

// LoginUser checks the credentials and returns the user with a fresh token.
func (s *AuthService) LoginUser(ctx context.Context, input models.LoginUserInput) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.log.Error("failed to load user for login", "error", err)
			return nil, apperr.Internal(err)
		}
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("User is inactive, talk with an admin")
	}

	return s.issue(user)
}

// CheckAuthStatus re-issues a token for an already authenticated user.
func (s *AuthService) CheckAuthStatus(user *models.User) (*models.AuthResponse, error) {
	return s.issue(user)
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		s.log.Debug("token rejected", "error", err)
		return nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: "Token not valid", Err: err}
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, apperr.Unauthorized("Token not valid")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Unauthorized("Token not valid")
		}
		s.log.Error("failed to load user for token", "user_id", userID, "error", err)
		return nil, apperr.Internal(err)
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("User is inactive, talk with an admin")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		s.log.Error("failed to sign token", "user_id", user.ID, "error", err)
		return nil, apperr.Internal(err)
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
