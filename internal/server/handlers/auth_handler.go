package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/service/auth"
)

// userContextKey is where the session middleware stores the acting user.
const userContextKey = "medflow.user"

// AuthHandler exposes login, logout and session inspection.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP adapter for the auth service.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates credentials and returns the session token on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("login failed against storage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout clears the current session unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports the currently authenticated user.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": actingUser(c)})
}

// actingUser returns the user placed in the context by the session
// middleware, or nil on unauthenticated routes.
func actingUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// actorName resolves the activity attribution for the request. Empty means
// "System" downstream.
func actorName(c *gin.Context) string {
	if user := actingUser(c); user != nil {
		return user.Name
	}
	return ""
}
