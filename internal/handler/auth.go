package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kiroku/internal/auth"
	"kiroku/internal/models"
	"kiroku/internal/repository"
)

type AuthHandler struct {
	Service *auth.Service
	Logger  *zap.Logger
}

func (h *AuthHandler) Register(r gin.IRouter) {
	group := r.Group("/auth")
	group.POST("/register", h.register)
	group.POST("/login", h.login)
}

type userPayload struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func sessionPayload(sess *auth.Session) gin.H {
	return gin.H{
		"token": sess.Token,
		"user":  userView(sess.User),
	}
}

func userView(u *models.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Username: u.Username}
}

// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		Error(c, http.StatusBadRequest, "email and password required")
		return
	}

	sess, err := h.Service.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			Error(c, http.StatusBadRequest, "email already registered")
			return
		}
		if h.Logger != nil {
			h.Logger.Error("register failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, sessionPayload(sess))
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			Error(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if h.Logger != nil {
			h.Logger.Error("login failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "failed to log in")
		return
	}
	c.JSON(http.StatusOK, sessionPayload(sess))
}
