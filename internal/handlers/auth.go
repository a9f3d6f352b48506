package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/conftrack/paper-review-api/internal/constants"
	"github.com/conftrack/paper-review-api/internal/dto"
	apierrors "github.com/conftrack/paper-review-api/internal/errors"
	"github.com/conftrack/paper-review-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates signup and login HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string `json:"username" binding:"required,min=3,max=20"`
		Email    string `json:"email" binding:"required,email,max=50"`
		Password string `json:"password" binding:"required,min=6,max=40"`
		Role     string `json:"role" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Error: Invalid signup request!")
		return
	}

	_, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully!"})
}

// Login authenticates a user. The returned token is a placeholder string,
// not a verifiable credential.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Error: Invalid login request!")
		return
	}

	if strings.TrimSpace(req.Username) == "" {
		apierrors.BadRequest(c, "Error: Username is required!")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		apierrors.BadRequest(c, "Error: Password is required!")
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    constants.PlaceholderToken,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role.Name),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, "Error: Username is already taken!")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Error: Email is already in use!")
	case errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, "Error: Invalid role!")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Error: Invalid username or password!")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "Error: User not found!")
	default:
		apierrors.InternalError(c, "")
	}
}
