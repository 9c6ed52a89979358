package leave

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/isAny", rbac.Authorize(rbacService, "leave", "read"), handler.HasPending)
		leaves.GET("/employee/:empId", handler.GetByEmployee)
		leaves.GET("/:id", rbac.Authorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("",
			rbac.Authorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		leaves.PUT("/:id", rbac.Authorize(rbacService, "leave", "review"), handler.Review)
		leaves.PUT("/update/:id", rbac.Authorize(rbacService, "leave", "review"), handler.ApplyCounter)
	}
}
