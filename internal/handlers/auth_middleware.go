package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

// AdminAuthMiddleware gates the admin routes on a live session.
type AdminAuthMiddleware struct {
	auth   services.AuthService
	logger utils.Logger
}

func NewAdminAuthMiddleware(auth services.AuthService, logger utils.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{auth: auth, logger: logger}
}

// RequireAdmin resolves the session token and stores the admin identity in
// the request context. Requests without a live session are rejected with 403.
func (m *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)

		admin, err := m.auth.Check(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
					Message: "Acesso negado. Faça login como administrador.",
				})
				return
			}
			utils.FromContext(c, m.logger).Error("session check failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Erro interno ao validar a sessão.",
			})
			return
		}

		c.Set("admin", admin)
		c.Set("admin_id", admin.ID)
		c.Next()
	}
}
