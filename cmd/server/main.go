package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/maithilikosh/api/internal/cache"
	"github.com/maithilikosh/api/internal/catalog"
	"github.com/maithilikosh/api/internal/columns"
	"github.com/maithilikosh/api/internal/config"
	"github.com/maithilikosh/api/internal/database"
	"github.com/maithilikosh/api/internal/handler"
	"github.com/maithilikosh/api/internal/importer"
	"github.com/maithilikosh/api/internal/middleware"
	"github.com/maithilikosh/api/internal/model"
	"github.com/maithilikosh/api/internal/suggestion"
	"github.com/maithilikosh/api/internal/workflow"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		// Continue without Redis cache (fail-open)
	}

	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	// Initialize services
	catalogSvc := catalog.NewService(catalog.NewGormStore(db))
	columnsSvc := columns.NewService(columns.NewGormStore(db))
	engine := workflow.NewEngine(workflow.NewGormStore(db))
	processor := importer.NewProcessor(importer.NewGormStore(db))
	suggestionSvc := suggestion.NewService(suggestion.NewGormStore(db), catalogSvc)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, cfg.JWTSecret, googleConfig, cfg.FrontendURL)
	dictionaryHandler := handler.NewDictionaryHandler(db)
	parameterHandler := handler.NewParameterHandler(catalogSvc)
	columnHandler := handler.NewColumnHandler(columnsSvc)
	wordHandler := handler.NewWordHandler(db, redisCache, catalogSvc)
	workflowHandler := handler.NewWorkflowHandler(engine)
	excelHandler := handler.NewExcelHandler(db, columnsSvc, catalogSvc, processor)
	searchHandler := handler.NewSearchHandler(db, redisCache)
	suggestionHandler := handler.NewSuggestionHandler(suggestionSvc)
	dashboardHandler := handler.NewDashboardHandler(db)
	adminHandler := handler.NewAdminHandler(db)

	// Setup router
	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := cfg.JWTSecret
	requireAuth := middleware.AuthMiddleware(secret)
	optionalAuth := middleware.OptionalAuthMiddleware(secret)
	requireAdmin := middleware.RequireRoles(secret, model.RoleAdmin, model.RoleSuperAdmin)
	requireStaff := middleware.RequireRoles(secret,
		model.RoleFieldResearcher, model.RoleEditor, model.RoleSeniorEditor,
		model.RoleEditorInChief, model.RoleAdmin, model.RoleSuperAdmin)
	requireReviewer := middleware.RequireRoles(secret,
		model.RoleEditor, model.RoleSeniorEditor, model.RoleEditorInChief,
		model.RoleAdmin, model.RoleSuperAdmin)

	// API routes
	api := r.Group("/api")
	{
		// Auth
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/google", authHandler.GoogleAuth)
		api.GET("/auth/google/callback", authHandler.GoogleCallback)
		api.POST("/auth/refresh", authHandler.RefreshToken)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		// Dictionaries
		api.GET("/dictionaries", optionalAuth, dictionaryHandler.List)
		api.GET("/dictionaries/:id", dictionaryHandler.Get)
		api.POST("/dictionaries", requireAdmin, dictionaryHandler.Create)
		api.PUT("/dictionaries/:id", requireAdmin, dictionaryHandler.Update)
		api.DELETE("/dictionaries/:id", requireAdmin, dictionaryHandler.Delete)

		// Parameter catalog
		api.GET("/parameters", parameterHandler.ListActive)
		api.GET("/admin/parameters", requireAdmin, parameterHandler.ListAll)
		api.GET("/admin/parameters/:id", requireAdmin, parameterHandler.Get)
		api.POST("/admin/parameters", requireAdmin, parameterHandler.Create)
		api.PUT("/admin/parameters/:id", requireAdmin, parameterHandler.Update)
		api.DELETE("/admin/parameters/:id", requireAdmin, parameterHandler.Delete)

		// Column templates
		api.GET("/dictionaries/:id/columns", columnHandler.List)
		api.POST("/admin/dictionaries/:dictionaryId/columns", requireAdmin, columnHandler.Create)
		api.PUT("/admin/columns/:id", requireAdmin, columnHandler.Update)
		api.DELETE("/admin/columns/:id", requireAdmin, columnHandler.Delete)

		// Words
		api.GET("/words", optionalAuth, wordHandler.List)
		api.GET("/words/my", requireStaff, wordHandler.MyWords)
		api.GET("/words/:id", optionalAuth, wordHandler.Get)
		api.POST("/words", requireStaff, wordHandler.Create)
		api.PUT("/words/:id", requireStaff, wordHandler.Update)
		api.DELETE("/words/:id", requireStaff, wordHandler.Delete)
		api.POST("/words/bulk", requireStaff, wordHandler.BulkCreate)

		// Workflow. Any staff member can submit; the transition table turns
		// away approvals from roles that don't own the current stage.
		api.POST("/words/:id/workflow", requireStaff, workflowHandler.Act)
		api.GET("/words/:id/workflow", requireStaff, workflowHandler.History)

		// Excel templates and import
		api.GET("/dictionaries/:id/template", requireStaff, excelHandler.Template)
		api.POST("/dictionaries/:id/import", requireStaff, excelHandler.Import)

		// Search
		api.GET("/search", searchHandler.Search)
		api.GET("/search/autocomplete", searchHandler.Autocomplete)
		api.GET("/search/trending", searchHandler.Trending)

		// Public suggestions
		api.POST("/suggestions", suggestionHandler.Create)
		api.GET("/suggestions", requireReviewer, suggestionHandler.List)
		api.GET("/suggestions/:id", requireReviewer, suggestionHandler.Get)
		api.POST("/suggestions/:id/review", requireReviewer, suggestionHandler.Review)

		// Dashboard
		api.GET("/dashboard/stats", requireStaff, dashboardHandler.Stats)
		api.GET("/dashboard/pending-reviews", requireReviewer, dashboardHandler.PendingReviews)
		api.GET("/dashboard/assignments", requireStaff, dashboardHandler.Assignments)
		api.POST("/dashboard/assignments", requireReviewer, dashboardHandler.CreateAssignment)
		api.POST("/dashboard/assignments/:id/complete", requireStaff, dashboardHandler.CompleteAssignment)

		// Admin
		api.GET("/admin/stats", requireAdmin, adminHandler.GetStats)
		api.GET("/admin/users", requireAdmin, adminHandler.ListUsers)
		api.PUT("/admin/users/:id/role", middleware.RequireRoles(secret, model.RoleSuperAdmin), adminHandler.UpdateUserRole)
		api.PUT("/admin/users/:id/active", requireAdmin, adminHandler.SetUserActive)
		api.GET("/admin/search-analytics", requireAdmin, adminHandler.GetSearchAnalytics)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("API server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
