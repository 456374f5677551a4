package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/utils"
)

// Session token carriers. The admin panel uses a cookie; API clients may send
// the same token as a bearer credential instead.
const (
	adminSessionCookie = "admin_session"
	chatSessionCookie  = "chat_session"
)

// ErrorResponse is the error payload for every endpoint.
type ErrorResponse struct {
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps mutation acknowledgements.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// parseIDParam reads a numeric path parameter; on failure it writes a 400 and
// returns 0, which callers treat as "response already sent".
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "ID inválido.",
			Details: "o identificador deve ser um número positivo",
		})
		return 0
	}
	return uint(id)
}

// sessionToken extracts the admin session token from the request: the session
// cookie first, then an Authorization bearer credential.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(adminSessionCookie); err == nil && token != "" {
		return token
	}
	const prefix = "Bearer "
	auth := c.GetHeader("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
