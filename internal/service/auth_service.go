// Package service holds the application's business logic between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "inkwell-api"

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = time.Hour

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type SigninInput struct {
	Email    string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: jwtSecret}
}

// Signup registers a new account and returns the stored user with a fresh
// session token. The bcrypt hash is what gets persisted, never the password.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("first_name, last_name, email, and password are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Signin verifies credentials and returns the user with a fresh session
// token. An unknown email surfaces as not-found so callers can distinguish
// it from a wrong password.
func (s *AuthService) Signin(ctx context.Context, in SigninInput) (*models.User, string, error) {
	if in.Email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("unknown_user").Inc()
		return nil, "", models.NewNotFoundError("User", in.Email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return nil, "", models.NewInvalidCredentialsError()
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// IssueToken creates a signed JWT for the given user ID.
func (s *AuthService) IssueToken(userID uint) (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"exp": now.Add(TokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ParseToken validates a signed token and returns the user ID it carries.
func (s *AuthService) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}
	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
