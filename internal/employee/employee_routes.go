package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		// Reads are self-or-HR; the handler applies the ownership check.
		employees.GET("", rbac.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/:id", handler.GetById)
		employees.GET("/:id/report", rbac.Authorize(rbacService, "report", "read"), handler.Report)
		employees.POST("", rbac.Authorize(rbacService, "employee", "create"), handler.Create)
		employees.PUT("/:id", rbac.Authorize(rbacService, "employee", "update"), handler.Update)
		employees.DELETE("/:id", rbac.Authorize(rbacService, "employee", "delete"), handler.Delete)
	}
}
