package app

import (
	"database/sql"

	"go-hrm/internal/auth"
	"go-hrm/internal/employee"
	"go-hrm/internal/holiday"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/policy"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(db, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo)
	holidayService := holiday.NewService(holidayRepo, rdb)
	policyService := policy.NewService(policyRepo)
	leaveService := leave.NewServiceWithOutbox(
		db,
		leaveRepo,
		holidayService,
		policyService,
		employeeRepo,
		outboxRepo,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	policyHandler := policy.NewHandler(policyService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		policy.RegisterRoutes(api, policyHandler, rbacService)
	}

	return nil
}
