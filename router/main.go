package router

import (
	"log"
	"os"
	"time"

	"github.com/careerhq/careerhq-api/config"
	"github.com/careerhq/careerhq-api/database"
	"github.com/careerhq/careerhq-api/handlers"
	auth_handlers "github.com/careerhq/careerhq-api/handlers/auth"
	blog_handlers "github.com/careerhq/careerhq-api/handlers/blog"
	country_handlers "github.com/careerhq/careerhq-api/handlers/country"
	course_handlers "github.com/careerhq/careerhq-api/handlers/course"
	lead_handlers "github.com/careerhq/careerhq-api/handlers/lead"
	university_handlers "github.com/careerhq/careerhq-api/handlers/university"
	upload_handlers "github.com/careerhq/careerhq-api/handlers/upload"
	"github.com/careerhq/careerhq-api/services/media"
	"github.com/careerhq/careerhq-api/utils"
	"github.com/careerhq/careerhq-api/utils/auth"
	"github.com/careerhq/careerhq-api/utils/cache"
	"github.com/careerhq/careerhq-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment configuration")
	}

	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "careerhq-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs brute force protection and the country detail cache. The
	// API stays up without it.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and caching will be disabled.", err)
		redisCache = nil
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	var mediaClient *media.Client
	if getEnv.MEDIA_ACCESS_KEY != "" {
		mediaClient, err = media.NewClient(media.Config{
			AccessKey: getEnv.MEDIA_ACCESS_KEY,
			SecretKey: getEnv.MEDIA_SECRET_KEY,
			Bucket:    getEnv.MEDIA_BUCKET,
			Region:    getEnv.MEDIA_REGION,
			Endpoint:  getEnv.MEDIA_ENDPOINT,
			CDNURL:    getEnv.MEDIA_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize media storage: %v. Uploads will be disabled.", err)
		}
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	countryHandler := country_handlers.NewCountryHandler(db, redisCache)
	universityHandler := university_handlers.NewUniversityHandler(db)
	courseHandler := course_handlers.NewCourseHandler(db)
	blogHandler := blog_handlers.NewBlogHandler(db)
	leadHandler := lead_handlers.NewLeadHandler(db)
	uploadHandler := upload_handlers.NewUploadHandler(mediaClient)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Countries routes
	countries := api.Group("/countries")
	countries.Get("/", authMiddleware.Optional(), countryHandler.ListCountries)           // Public: list published countries
	countries.Get("/:id", authMiddleware.Optional(), countryHandler.GetCountry)           // Public: resolve by id, slug, or name
	countries.Post("/", authMiddleware.RequireAdmin(), countryHandler.CreateCountry)      // Admin only
	countries.Put("/:id", authMiddleware.RequireAdmin(), countryHandler.UpdateCountry)    // Admin only
	countries.Delete("/:id", authMiddleware.RequireAdmin(), countryHandler.DeleteCountry) // Admin only

	// Universities routes
	universities := api.Group("/universities")
	universities.Get("/", authMiddleware.Optional(), universityHandler.ListUniversities)           // Public: list published universities
	universities.Get("/:id", authMiddleware.Optional(), universityHandler.GetUniversity)           // Public: resolve by id, slug, or name
	universities.Post("/", authMiddleware.RequireAdmin(), universityHandler.CreateUniversity)      // Admin only
	universities.Put("/:id", authMiddleware.RequireAdmin(), universityHandler.UpdateUniversity)    // Admin only
	universities.Delete("/:id", authMiddleware.RequireAdmin(), universityHandler.DeleteUniversity) // Admin only

	// Courses routes
	courses := api.Group("/courses")
	courses.Get("/", authMiddleware.Optional(), courseHandler.ListCourses)                // Public: list published courses
	courses.Post("/bulk-import", authMiddleware.RequireAdmin(), courseHandler.BulkImport) // Admin only: batch course ingestion
	courses.Get("/:id", authMiddleware.Optional(), courseHandler.GetCourse)               // Public: resolve by id, slug, or program name
	courses.Post("/", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)          // Admin only
	courses.Put("/:id", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)        // Admin only
	courses.Delete("/:id", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)     // Admin only

	// Blog routes
	blogs := api.Group("/blogs")
	blogs.Get("/", authMiddleware.Optional(), blogHandler.ListBlogPosts)            // Public: list published posts
	blogs.Get("/:id", authMiddleware.Optional(), blogHandler.GetBlogPost)           // Public: resolve by id, slug, or title
	blogs.Post("/", authMiddleware.RequireAdmin(), blogHandler.CreateBlogPost)      // Admin only
	blogs.Put("/:id", authMiddleware.RequireAdmin(), blogHandler.UpdateBlogPost)    // Admin only
	blogs.Delete("/:id", authMiddleware.RequireAdmin(), blogHandler.DeleteBlogPost) // Admin only

	// Leads routes. Creation is the public enquiry form; management is admin only.
	leads := api.Group("/leads")
	leads.Post("/", leadHandler.CreateLead)
	leads.Get("/", authMiddleware.RequireAdmin(), leadHandler.ListLeads)
	leads.Get("/:id", authMiddleware.RequireAdmin(), leadHandler.GetLead)
	leads.Put("/:id", authMiddleware.RequireAdmin(), leadHandler.UpdateLeadStatus)
	leads.Delete("/:id", authMiddleware.RequireAdmin(), leadHandler.DeleteLead)

	// Upload routes (admin only)
	uploads := api.Group("/uploads", authMiddleware.RequireAdmin())
	uploads.Post("/", uploadHandler.UploadFile)
	uploads.Delete("/*", uploadHandler.DeleteFile)
}
