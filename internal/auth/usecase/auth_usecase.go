package usecase

import (
	"errors"
	"strings"
	"time"

	authdto "photoblog-backend/internal/auth/dto"
	"photoblog-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed login attempt.
// The message does not distinguish a wrong email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	config *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase.
// The blog has a single admin account configured through the environment,
// so there is no user table behind this.
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{config: cfg}
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if u.config.AdminEmail == "" || u.config.AdminPasswordHash == "" {
		return nil, errors.New("admin account is not configured")
	}

	if email != strings.ToLower(u.config.AdminEmail) {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(u.config.JWTExpiry)
	claims := jwt.MapClaims{
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: signed,
		Email:       email,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("invalid token claims")
	}

	if !strings.EqualFold(email, u.config.AdminEmail) {
		return "", errors.New("unknown account")
	}

	return email, nil
}
