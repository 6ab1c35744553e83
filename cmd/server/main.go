package main

import (
	"log"

	"github.com/ecosort/waste-management-api/internal/config"
	"github.com/ecosort/waste-management-api/internal/constants"
	"github.com/ecosort/waste-management-api/internal/database"
	"github.com/ecosort/waste-management-api/internal/handlers"
	"github.com/ecosort/waste-management-api/internal/middleware"
	"github.com/ecosort/waste-management-api/internal/repository"
	"github.com/ecosort/waste-management-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories and services
	db := database.GetDB()
	employeeRepo := repository.NewEmployeeRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := services.NewNotificationService(notificationRepo, employeeRepo)
	directoryService := services.NewDirectoryService(employeeRepo, zoneRepo, notificationService)
	zoneService := services.NewZoneService(zoneRepo)
	taskService := services.NewTaskService(taskRepo, employeeRepo, zoneRepo, notificationService)
	issueService := services.NewIssueService(issueRepo, employeeRepo, zoneRepo, notificationService)
	analyticsService := services.NewAnalyticsService(taskRepo, zoneRepo)

	// Initialize classifier service when an endpoint is configured
	var classifierService *services.ClassifierService
	if cfg.ClassifierURL != "" {
		classifierService = services.NewClassifierService(cfg.ClassifierURL)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(directoryService)
	employeeHandler := handlers.NewEmployeeHandler(directoryService)
	zoneHandler := handlers.NewZoneHandler(zoneService)
	taskHandler := handlers.NewTaskHandler(taskService, directoryService)
	issueHandler := handlers.NewIssueHandler(issueService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	classifyHandler := handlers.NewClassifyHandler(classifierService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "EcoSort API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentEmployee)
		}

		// Employee directory routes (protected)
		employees := api.Group("/employees")
		employees.Use(middleware.RequireAuth())
		{
			employees.POST("", middleware.RequireManager(), employeeHandler.CreateEmployee)
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.POST("/:id/approve", middleware.RequireManager(), employeeHandler.ApproveEmployee)
			employees.DELETE("/:id", middleware.RequireManager(), employeeHandler.DeactivateEmployee)
		}

		// Zone routes (protected)
		zones := api.Group("/zones")
		zones.Use(middleware.RequireAuth())
		{
			zones.POST("", middleware.RequireManager(), zoneHandler.CreateZone)
			zones.GET("", zoneHandler.ListZones)
			zones.GET("/:id", zoneHandler.GetZone)
			zones.PUT("/:id", middleware.RequireManager(), zoneHandler.UpdateZone)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("", middleware.RequireManager(), taskHandler.AssignTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/transition", taskHandler.Transition)
			tasks.DELETE("/:id", middleware.RequireManager(), taskHandler.DeleteTask)
		}

		// Issue routes (protected)
		issues := api.Group("/issues")
		issues.Use(middleware.RequireAuth())
		{
			issues.POST("", issueHandler.ReportIssue)
			issues.GET("", issueHandler.ListIssues)
			issues.GET("/:id", issueHandler.GetIssue)
			issues.POST("/:id/assign", middleware.RequireManager(), issueHandler.AssignIssue)
			issues.POST("/:id/transition", issueHandler.Transition)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.POST("", middleware.RequireManager(), notificationHandler.SendNotification)
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// Analytics routes (protected)
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RequireAuth())
		{
			analytics.GET("/zones/:id/weekly", analyticsHandler.WeeklyWaste)
			analytics.GET("/zones/:id/categories", analyticsHandler.CategoryBreakdown)
		}

		// Classification route (protected)
		api.POST("/classify", middleware.RequireAuth(), classifyHandler.Classify)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
