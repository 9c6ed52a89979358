package policy

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
	vars := r.Group("/vars")
	vars.Use(middleware.AuthMiddleware())
	{
		vars.GET("", rbac.Authorize(rbacService, "policy", "read"), handler.GetAll)
		vars.POST("", rbac.Authorize(rbacService, "policy", "update"), handler.UpsertAll)
	}
}
