package holiday

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", rbac.Authorize(rbacService, "holiday", "read"), handler.GetAll)
		holidays.GET("/:id", rbac.Authorize(rbacService, "holiday", "read"), handler.GetById)
		holidays.POST("", rbac.Authorize(rbacService, "holiday", "create"), handler.Create)
		holidays.PUT("/:id", rbac.Authorize(rbacService, "holiday", "update"), handler.Update)
		holidays.DELETE("/:id", rbac.Authorize(rbacService, "holiday", "delete"), handler.Delete)
	}
}
