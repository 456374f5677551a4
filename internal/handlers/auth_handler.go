package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login authenticates an admin and opens a session.
// The token is handed back both as an HttpOnly cookie (for the panel) and in
// the response body (for API clients).
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Admin login attempt")

	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Requisição inválida.",
			Details: err.Error(),
		})
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(adminSessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso.",
		"admin":   admin,
		"token":   token,
	})
}

// Logout ends the current session; unknown or absent tokens are a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Admin logout")

	if token := sessionToken(c); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			h.LogError(c, err, "Failed to end session")
		}
	}

	c.SetCookie(adminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logout realizado com sucesso."})
}

// CheckSession reports the admin behind the current session. The auth
// middleware has already rejected requests without one.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	admin, exists := c.Get("admin")
	if !exists {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Acesso negado. Faça login como administrador.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Email e senha são obrigatórios.",
			Details: verrs,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Email ou senha de administrador inválidos.",
		})
	default:
		h.LogError(c, err, "Unexpected auth service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Erro interno no servidor.",
		})
	}
}
