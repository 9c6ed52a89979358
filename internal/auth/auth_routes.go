package auth

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitByIP(5, 10))
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/logout", handler.Logout)
		// Registration is open so a fresh install can create its first
		// account without an existing token.
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/changepass",
			middleware.AuthMiddleware(),
			handler.ChangePassword,
		)
	}
}
