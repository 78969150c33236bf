package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/auth"
)

type AuthHandlers struct {
	Service *auth.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
