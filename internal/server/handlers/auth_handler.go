package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/domain/models"
	authsvc "github.com/salonhq/ledger/internal/service/auth"
)

// AuthHandler handles account signup and login.
type AuthHandler struct {
	svc    *authsvc.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter for account operations.
func NewAuthHandler(svc *authsvc.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Signup registers a new staff account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		case errors.Is(err, authsvc.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user": gin.H{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password and role are required"})
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password and role are required"})
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, authsvc.ErrRoleMismatch):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: incorrect role"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}
