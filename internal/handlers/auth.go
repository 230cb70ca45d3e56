package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/auth"
	"github.com/tunewave/backend/internal/util"
)

// Register creates a new account and returns a signed token
// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid registration payload", err.Error())
		return
	}

	resp, err := h.auth.Register(req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			util.RespondConflict(c, "account")
			return
		}
		util.RespondInternalError(c, "failed to register user")
		return
	}

	h.recordActivity(resp.User.ID, "register", nil)
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password
// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid login payload", err.Error())
		return
	}

	resp, err := h.auth.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			util.RespondUnauthorized(c, "invalid email or password")
		case errors.Is(err, auth.ErrUserDisabled):
			util.RespondForbidden(c, "account is disabled")
		default:
			util.RespondInternalError(c, "failed to log in")
		}
		return
	}

	h.recordActivity(resp.User.ID, "login", nil)
	c.JSON(http.StatusOK, resp)
}

// AuthMiddleware validates the bearer token and loads the user into
// the request context
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.RespondUnauthorized(c, "no token provided")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			util.RespondUnauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		user, err := h.auth.ValidateToken(token)
		if err != nil {
			util.RespondUnauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// AdminMiddleware requires an authenticated admin. Must run after
// AuthMiddleware.
func (h *Handlers) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := util.GetUserFromContext(c)
		if !ok {
			c.Abort()
			return
		}
		if !user.IsAdmin {
			util.RespondForbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
