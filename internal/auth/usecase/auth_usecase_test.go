package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authdto "photoblog-backend/internal/auth/dto"
	"photoblog-backend/pkg/config"
)

func testConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		AdminEmail:        "admin@blog.example",
		AdminPasswordHash: string(hash),
	}
}

func TestLogin_Success(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin@blog.example", resp.Email)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "  Admin@Blog.Example ",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin@blog.example", resp.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_WrongEmail(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "intruder@blog.example",
		Password: "correct horse",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

func TestLogin_UnconfiguredAdmin(t *testing.T) {
	uc := NewAuthUsecase(&config.Config{JWTSecret: "s", JWTExpiry: time.Hour})

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "anything",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "correct horse",
	})
	require.NoError(t, err)

	email, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@blog.example", email)
}

func TestValidateToken_Garbage(t *testing.T) {
	uc := NewAuthUsecase(testConfig(t, "correct horse"))

	_, err := uc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testConfig(t, "correct horse")
	uc := NewAuthUsecase(cfg)

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "correct horse",
	})
	require.NoError(t, err)

	other := NewAuthUsecase(&config.Config{
		JWTSecret:         "a different secret",
		JWTExpiry:         cfg.JWTExpiry,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := testConfig(t, "correct horse")
	cfg.JWTExpiry = -time.Minute
	uc := NewAuthUsecase(cfg)

	resp, err := uc.Login(&authdto.LoginRequest{
		Email:    "admin@blog.example",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = uc.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}
