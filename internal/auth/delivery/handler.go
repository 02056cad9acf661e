package delivery

import (
	"net/http"

	authdto "photoblog-backend/internal/auth/dto"
	"photoblog-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for admin authentication
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Login handles POST requests with admin credentials
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify confirms the bearer token is still valid.
// AuthMiddleware has already rejected the request otherwise.
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"email": c.GetString("adminEmail"),
	})
}
