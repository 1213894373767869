package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyglotcap/captions/internal/auth"
	"github.com/polyglotcap/captions/internal/common"
	"github.com/polyglotcap/captions/internal/users"
)

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "username and password required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20001, "failed to hash password")
		return
	}

	// Registration persistence is a hard failure: a user that looks
	// registered but was not stored is unacceptable.
	err = h.Users.Create(c.Request.Context(), &users.User{
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			common.Fail(c, http.StatusBadRequest, 10002, "username already exists")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 20002, "failed to create user")
		return
	}

	common.OK(c, gin.H{"status": "registered"})
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "username and password required")
		return
	}

	// Unknown user, wrong password and lookup failure all collapse to
	// the same response to avoid username enumeration.
	u, err := h.Users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil || !auth.CheckPassword(req.Password, u.PasswordHash) {
		common.Fail(c, http.StatusUnauthorized, 40103, "invalid credentials")
		return
	}

	token, err := auth.SignToken(u.Username, h.Cfg.JWTSecret, h.Cfg.TokenTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 20003, "failed to sign token")
		return
	}

	common.OK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	common.OK(c, gin.H{"username": user})
}
