package usecase

import authdto "photoblog-backend/internal/auth/dto"

// AuthUsecase defines admin authentication operations
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ValidateToken(tokenString string) (string, error)
}
