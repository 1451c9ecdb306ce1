package router

import (
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/config"
	"github.com/dsaslb/restaurant-management-system/internal/handler"
	"github.com/dsaslb/restaurant-management-system/internal/infra"
	"github.com/dsaslb/restaurant-management-system/internal/middleware"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/repository"
	"github.com/dsaslb/restaurant-management-system/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, geocoder *infra.Geocoder) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	contractRepo := repository.NewContractRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, geocoder, rdb)
	employeeSvc := service.NewEmployeeService(employeeRepo)
	contractSvc := service.NewContractService(contractRepo, cfg)
	menuSvc := service.NewMenuService(menuRepo)
	orderSvc := service.NewOrderService(orderRepo, menuRepo)
	payrollSvc := service.NewPayrollService(attendanceRepo, contractRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	secure := cfg.Env == "production"
	authH := handler.NewAuthHandler(authSvc, secure)
	attendanceH := handler.NewAttendanceHandler(attendanceSvc)
	employeeH := handler.NewEmployeeHandler(employeeSvc)
	contractH := handler.NewContractHandler(contractSvc)
	menuH := handler.NewMenuHandler(menuSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	payrollH := handler.NewPayrollHandler(payrollSvc)
	notificationH := handler.NewNotificationHandler(notificationSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, geocoder.Breaker()))
	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Everything below requires a valid session cookie
	sessionMW := middleware.SessionAuth(cfg.SessionSecret)
	authed := r.Group("/", sessionMW)
	{
		authed.POST("/auth/logout", authH.Logout)
		authed.POST("/auth/change-password", authH.ChangePassword)
		authed.GET("/auth/profile", authH.GetProfile)
		authed.PUT("/auth/profile", authH.UpdateProfile)

		admin := middleware.RequireRole(model.RoleAdmin)
		adminOrManager := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

		authed.POST("/auth/approve-or-reject", admin, authH.ApproveOrReject)
		authed.DELETE("/auth/users/:username", admin, authH.DeleteUser)
		authed.GET("/auth/users", admin, authH.ListUsers)

		// Attendance — any authenticated employee can punch in/out
		authed.POST("/attendance", attendanceH.Record)
		authed.GET("/attendance", adminOrManager, attendanceH.List)
		authed.GET("/attendance/stats", adminOrManager, attendanceH.TodayStats)
		authed.GET("/records", adminOrManager, attendanceH.List)

		emp := authed.Group("/employees", adminOrManager)
		{
			emp.POST("", employeeH.Create)
			emp.GET("", employeeH.List)
			emp.GET("/:id", employeeH.Get)
			emp.PUT("/:id", employeeH.Update)
			emp.DELETE("/:id", employeeH.Deactivate)
		}

		contracts := authed.Group("/contracts", adminOrManager)
		{
			contracts.POST("", contractH.Create)
			contracts.GET("", contractH.List)
			contracts.GET("/stats", contractH.Stats)
			contracts.GET("/:id", contractH.Get)
			contracts.GET("/:id/pdf", contractH.DownloadPDF)
			contracts.POST("/:id/terminate", middleware.RequireRole(model.RoleAdmin), contractH.Terminate)
		}

		// Menu — all authenticated roles read, admin/manager write
		authed.GET("/menu", menuH.List)
		menu := authed.Group("/menu", adminOrManager)
		{
			menu.POST("", menuH.Create)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Delete)
		}

		// Orders — floor staff create, kitchen and waiters move status
		orders := authed.Group("/orders")
		{
			orders.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff, model.RoleWaiter), orderH.Create)
			orders.GET("", orderH.List)
			orders.GET("/:id", orderH.Get)
			orders.PATCH("/:id/status", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleKitchen, model.RoleWaiter), orderH.UpdateStatus)
		}

		// Payroll — admin only
		authed.GET("/payroll", admin, payrollH.Summary)
		authed.GET("/payroll/export", admin, payrollH.Export)

		// Notifications — each user sees only their own
		authed.GET("/notifications", notificationH.List)
		authed.POST("/notifications/:id/read", notificationH.MarkRead)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
