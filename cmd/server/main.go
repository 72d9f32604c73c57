package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/AkshayEddula/bibleapp-sub000/internal/cache"
	"github.com/AkshayEddula/bibleapp-sub000/internal/handlers"
	"github.com/AkshayEddula/bibleapp-sub000/internal/httpx"
	"github.com/AkshayEddula/bibleapp-sub000/internal/middleware"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
	"github.com/AkshayEddula/bibleapp-sub000/internal/service"
	"github.com/AkshayEddula/bibleapp-sub000/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Bible Reels Backend",
		// Support avatar uploads up to 5MB + overhead.
		BodyLimit: 8 * 1024 * 1024, // 8MB
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-BA-CSRF",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	unlockCache := cache.NewUnlockCache(redisCache)
	feedCache := cache.NewFeedCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	reelRepo := repository.NewReelRepository(db)
	prayerRepo := repository.NewPrayerRepository(db)
	testimonyRepo := repository.NewTestimonyRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	versionRepo := repository.NewVersionRepository(db)

	// Realtime hub doubles as the notifier for prayer/amen pushes.
	wsHandler := handlers.NewWebSocketHandler()
	hub := wsHandler.GetHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, refreshTokenRepo)
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(statsRepo, feedCache)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	unlockService := service.NewUnlockService(unlockCache)
	prayerService := service.NewPrayerService(prayerRepo, statsService, hub)
	testimonyService := service.NewTestimonyService(testimonyRepo, statsService, hub)
	versionService := service.NewVersionService(versionRepo)

	mediaBaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_API_BASE_URL")), "/")
	reelService := service.NewReelService(reelRepo, unlockService, statsService, feedCache, mediaBaseURL)
	viewerService := service.NewViewerService(unlockService, subscriptionService, reelService.RecordView)

	// Initialize S3/MinIO storage (best-effort; feature endpoints return 503 if missing)
	var s3Store *storage.S3Storage
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: S3 storage not configured: %v", err)
	} else if st, err := storage.NewS3Storage(cfg); err != nil {
		log.Printf("WARNING: Failed to initialize S3 storage: %v", err)
	} else {
		s3Store = st
		log.Printf("S3 storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	avatarService := service.NewAvatarService(userRepo, s3Store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	avatarHandler := handlers.NewAvatarHandler(avatarService)
	mediaHandler := handlers.NewMediaHandler(s3Store)
	reelHandler := handlers.NewReelHandler(reelService, viewerService)
	prayerHandler := handlers.NewPrayerHandler(prayerService)
	testimonyHandler := handlers.NewTestimonyHandler(testimonyService)
	statsHandler := handlers.NewStatsHandler(statsService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	versionHandler := handlers.NewVersionHandler(versionService)

	// Public routes
	api := app.Group("/api", middleware.OriginAllowed())
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Get("/csrf", authHandler.CSRF)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh) // No CSRF required - protected by HttpOnly refresh token
	auth.Post("/logout", middleware.CSRFRequired(), authHandler.Logout)
	api.Get("/users/check-username", userHandler.CheckUsername) // Public endpoint for username check

	// Version endpoint (public - no auth required for update checks)
	api.Get("/version", versionHandler.GetVersion)
	api.Get("/version/check", versionHandler.CheckUpdate)

	// Billing webhook (authenticated by shared secret, not a user token)
	api.Post("/subscription/webhook", subscriptionHandler.Webhook)

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired(), middleware.CSRFRequired())
	protected.Get("/users/me", userHandler.GetCurrentUser)
	protected.Put("/users/me", userHandler.UpdateProfile)
	protected.Post(
		"/users/me/avatar",
		limiter.New(limiter.Config{
			Max:        10,
			Expiration: 10 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				if uid, err := httpx.LocalUint(c, "userID"); err == nil {
					return "avatar:" + strconv.FormatUint(uint64(uid), 10)
				}
				return c.IP()
			},
		}),
		avatarHandler.UploadMyAvatar,
	)
	protected.Delete("/users/me/avatar", avatarHandler.DeleteMyAvatar)
	protected.Get("/media/avatars/*", mediaHandler.GetAvatar)
	protected.Get("/media/reels/*", mediaHandler.GetReelBackground)
	protected.Get("/users/search", userHandler.SearchUsers)
	protected.Get("/users/:identifier", userHandler.GetUser)

	// Reel viewer
	protected.Post("/reels/viewer", reelHandler.OpenViewer)
	protected.Get("/reels", reelHandler.GetFeed)
	protected.Post("/reels/viewer/:session_id/visible", reelHandler.Visible)
	protected.Delete("/reels/viewer/:session_id", reelHandler.CloseViewer)

	// Prayer wall
	protected.Post("/prayers", prayerHandler.Create)
	protected.Get("/prayers", prayerHandler.List)
	protected.Get("/prayers/mine", prayerHandler.ListMine)
	protected.Post("/prayers/:id/pray", prayerHandler.Pray)
	protected.Post("/prayers/:id/answered", prayerHandler.MarkAnswered)
	protected.Delete("/prayers/:id", prayerHandler.Delete)

	// Testimonies
	protected.Post("/testimonies", testimonyHandler.Create)
	protected.Get("/testimonies", testimonyHandler.List)
	protected.Post("/testimonies/:id/amen", testimonyHandler.Amen)
	protected.Delete("/testimonies/:id", testimonyHandler.Delete)

	// Gamification
	protected.Get("/stats/me", statsHandler.GetMine)
	protected.Get("/stats/leaderboard", statsHandler.Leaderboard)

	// Subscription status
	protected.Get("/subscription", subscriptionHandler.GetStatus)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.CSRFRequired(), middleware.RequireRole("admin"))
	admin.Post("/reels", reelHandler.CreateReel)

	// WebSocket route (websocket upgrade needs special handling)
	app.Use(
		"/ws",
		middleware.OriginAllowed(),
		middleware.AuthRequired(),
		func(c *fiber.Ctx) error {
			// Upgrade to WebSocket
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Bible Reels backend is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
