package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	FullName    string      `json:"fullName" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Role        domain.Role `json:"role" binding:"required,oneof=mother doctor midwife"`
	PhoneNumber string      `json:"phoneNumber"`
	Village     string      `json:"village"`
	DateOfBirth *time.Time  `json:"dateOfBirth"`
	BloodGroup  string      `json:"bloodGroup"`
}

// UserResponse excludes sensitive fields and converts ObjectIDs to strings.
type UserResponse struct {
	ID          string      `json:"id"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Village     string      `json:"village,omitempty"`
	DateOfBirth *time.Time  `json:"dateOfBirth,omitempty"`
	BloodGroup  string      `json:"bloodGroup,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// --- Handler Methods ---

// Register creates a new user account for any of the three roles.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Village:     req.Village,
		DateOfBirth: req.DateOfBirth,
		BloodGroup:  req.BloodGroup,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tokens, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         MapUserToResponse(user),
	})
}

// Refresh exchanges a valid refresh token for a fresh pair. The old refresh
// token is rotated out and cannot be replayed.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not refresh session")
		}
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout invalidates the caller's stored refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userIDStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userIDStr); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// MapUserToResponse converts a domain User to its API representation.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID.Hex(),
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
		Village:     user.Village,
		DateOfBirth: user.DateOfBirth,
		BloodGroup:  user.BloodGroup,
		CreatedAt:   user.CreatedAt,
	}
}
