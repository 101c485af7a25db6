package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/boogeyman0929/chat-backend/internal/auth"
)

// APIHandlers provides HTTP handlers for REST API endpoints.
type APIHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService: authService,
		log:         logger,
	}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Key      string `json:"key" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// LoginResponse represents the login response body.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// MeResponse represents the session introspection response body.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login validates the access key, claims the display name, and returns a
// session token.
// POST /api/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Key, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidKey):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "invalid key"})
		case errors.Is(err, auth.ErrNameTaken):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "username already taken"})
		case errors.Is(err, auth.ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid username"})
		default:
			h.log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Username: req.Username})
}

// Me returns the identity behind the presented session token.
// GET /api/me
func (h *APIHandlers) Me(c *gin.Context) {
	username := c.GetString(ContextKeyUsername)
	role := c.GetString(ContextKeyRole)
	c.JSON(http.StatusOK, MeResponse{Username: username, Role: role})
}
