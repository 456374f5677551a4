package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	dashboardHandler *DashboardHandler
	chatHandler      *ChatHandler
	authMiddleware   *AdminAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	allowedOrigin string,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		chatHandler:      NewChatHandler(serviceManager.Chat(), logger, allowedOrigin),
		authMiddleware:   NewAdminAuthMiddleware(serviceManager.Auth(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Liveness probe used by the hosting platform.
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "API ON"})
	})

	// Realtime chat channel; session identity travels in its own cookie,
	// no admin login required.
	router.GET("/chat/ws", hm.chatHandler.Serve)

	admin := router.Group("/admin")
	{
		admin.POST("/login", hm.authHandler.Login)
		admin.POST("/logout", hm.authHandler.Logout)

		// Everything else requires a live admin session.
		gated := admin.Group("")
		gated.Use(hm.authMiddleware.RequireAdmin())
		{
			gated.GET("/check_session", hm.authHandler.CheckSession)

			gated.GET("/alunos", hm.studentHandler.ListStudents)
			gated.POST("/alunos", hm.studentHandler.CreateStudent)
			gated.GET("/alunos/export", hm.studentHandler.ExportRoster)
			gated.PUT("/alunos/:id", hm.studentHandler.UpdateStudent)
			gated.DELETE("/alunos/:id", hm.studentHandler.DeleteStudent)
			gated.GET("/alunos/:id/resultados", hm.studentHandler.GetStudentResults)

			gated.GET("/stats", hm.dashboardHandler.GetStats)
		}
	}
}
