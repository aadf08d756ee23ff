package routes

import (
	"time"

	"fleetwatch-backend/internal/api/handlers"
	"fleetwatch-backend/internal/api/middleware"
	"fleetwatch-backend/internal/config"
	"fleetwatch-backend/internal/repository"
	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/cache"
	"fleetwatch-backend/pkg/jwt"
	"fleetwatch-backend/pkg/ratelimit"
	"fleetwatch-backend/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// requestsPerMinute is the shared per-client rate limit.
const requestsPerMinute = 120

func SetupRoutes(router *gin.Engine, cfg *config.Config, db *sqlx.DB, redisClient *redis.Client) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	sensorRepo := repository.NewSensorRepository(db)

	// Token and session plumbing
	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiry)
	sessions := session.NewStore(redisClient, jwtUtil.Expiry())
	limiter := ratelimit.NewLimiter(redisClient, requestsPerMinute, time.Minute)

	// Services
	authService := services.NewAuthService(userRepo, jwtUtil, sessions)
	userService := services.NewUserService(userRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, userRepo)
	alertService := services.NewAlertService(alertRepo, userRepo, vehicleRepo)
	statsService := services.NewAlertStatsService(alertRepo, userRepo, vehicleRepo)
	reportCache := cache.New(redisClient, "fleetwatch")
	alertService.SetReportCache(reportCache)
	statsService.SetReportCache(reportCache)
	sensorService := services.NewSensorService(sensorRepo, vehicleRepo)
	dashboardService := services.NewDashboardService(sensorRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, redisClient)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	alertHandler := handlers.NewAlertHandler(alertService, statsService)
	sensorHandler := handlers.NewSensorHandler(sensorService)
	statsHandler := handlers.NewStatsHandler(dashboardService)

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(limiter))

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		alerts := protected.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.POST("", alertHandler.CreateAlert)
			alerts.GET("/stats", alertHandler.GetAlertStats)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.PATCH("/:id", alertHandler.UpdateAlert)
			alerts.DELETE("/:id", alertHandler.DeleteAlert)
			alerts.GET("/user/:userId", alertHandler.GetAlertsByUser)
			alerts.GET("/vehicle/:vehicleId", alertHandler.GetAlertsByVehicle)
		}

		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
			vehicles.GET("/user/:userId", vehicleHandler.GetVehiclesByUser)
			vehicles.POST("/:id/assign/:userId", vehicleHandler.AssignVehicle)
			vehicles.DELETE("/:id/assign/:userId", vehicleHandler.UnassignVehicle)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		sensors := protected.Group("/sensors")
		{
			sensors.POST("/gps", sensorHandler.SaveGPS)
			sensors.GET("/gps", sensorHandler.GetGPS)
			sensors.POST("/accelerometer", sensorHandler.SaveAccelerometer)
			sensors.GET("/accelerometer", sensorHandler.GetAccelerometer)
			sensors.POST("/gyroscope", sensorHandler.SaveGyroscope)
			sensors.GET("/gyroscope", sensorHandler.GetGyroscope)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("/summary", statsHandler.GetSummary)
			stats.GET("/devices", statsHandler.GetDevices)
			stats.GET("/dashboard", statsHandler.GetDashboard)
		}
	}
}
