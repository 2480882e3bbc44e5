package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/config"
	"storefront-service/internal/encryption"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
	"storefront-service/internal/state"
	"storefront-service/internal/workers"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.New()

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Failed to parse Redis URL, continuing with in-memory sessions")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.WithError(err).Warn("Failed to connect to Redis, continuing with in-memory sessions")
				redisClient = nil
			} else {
				log.Info("✓ Connected to Redis for session storage")
			}
		}
	} else {
		log.Info("REDIS_URL not configured, using in-memory sessions")
	}

	// Initialize session stores. Redis when available; otherwise the
	// in-memory store plus the cleanup worker that reaps expired entries.
	var (
		authStore     state.AuthStore
		cartStore     state.CartStore
		wishlistStore state.WishlistStore
		memoryStore   *state.MemoryStore
		cleanupWorker *workers.SessionCleanupWorker
	)
	if redisClient != nil {
		var sealer *encryption.TokenSealer
		if cfg.SessionSealKey != "" {
			var err error
			sealer, err = encryption.NewTokenSealer(cfg.SessionSealKey)
			if err != nil {
				log.WithError(err).Fatal("Failed to initialize token sealer")
			}
			log.Info("✓ Session token sealing enabled")
		}
		redisStore := state.NewRedisStore(redisClient, cfg.SessionTTL, sealer)
		authStore = redisStore
		cartStore = redisStore.CartStore()
		wishlistStore = redisStore.WishlistStore()
	} else {
		memoryStore = state.NewMemoryStore(cfg.SessionTTL)
		authStore = memoryStore
		cartStore = memoryStore.CartStore()
		wishlistStore = memoryStore.WishlistStore()
		cleanupWorker = workers.NewSessionCleanupWorker(memoryStore, cfg.CleanupInterval)
	}

	// Initialize backend API clients
	backend := clients.NewBackend(cfg.APIBaseURL, cfg.RequestTimeout)
	authClient := clients.NewAuthClient(backend)
	productsClient := clients.NewProductsClient(backend)
	cartClient := clients.NewCartClient(backend)
	ordersClient := clients.NewOrdersClient(backend)
	paymentsClient := clients.NewPaymentsClient(backend)
	shippingClient := clients.NewShippingClient(backend)
	searchClient := clients.NewSearchClient(backend)
	analyticsClient := clients.NewAnalyticsClient(backend)
	recommendationsClient := clients.NewRecommendationsClient(backend)
	i18nClient := clients.NewI18nClient(backend)
	log.WithField("apiBaseUrl", cfg.APIBaseURL).Info("✓ Backend API clients initialized")

	// Initialize services
	cartService := services.NewCartService(cartStore, wishlistStore, cartClient, productsClient)
	authService := services.NewAuthService(authStore, authClient, cartService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redisClient)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(cartService)
	catalogHandler := handlers.NewCatalogHandler(productsClient, searchClient, recommendationsClient, i18nClient, authService)
	checkoutHandler := handlers.NewCheckoutHandler(ordersClient, paymentsClient, shippingClient, cartService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsClient, ordersClient)

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Security headers middleware
	router.Use(middleware.SecurityHeaders())

	// Rate limiting middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router.Use(rateLimiter.Middleware())

	// Metrics middleware
	router.Use(middleware.Metrics())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health endpoints
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes - all run behind the session middleware
	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(authService))
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-otp", authHandler.VerifyOTP)
			auth.POST("/register", authHandler.Register)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.GetSession)
			auth.PUT("/profile", middleware.RequireAuthenticated(), authHandler.UpdateProfile)
		}

		v1.PUT("/preferences", authHandler.UpdatePreferences)
		v1.GET("/i18n/:language", catalogHandler.Translations)

		// Catalog - anonymous browsing allowed
		v1.GET("/products", catalogHandler.ListProducts)
		v1.GET("/products/:productId", catalogHandler.GetProduct)
		v1.GET("/products/:productId/recommendations", catalogHandler.ProductRecommendations)
		v1.GET("/search", catalogHandler.Search)
		v1.GET("/search/trending", catalogHandler.Trending)
		v1.GET("/recommendations", catalogHandler.Recommendations)

		// Cart - anonymous sessions get a cart too
		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:itemId", cartHandler.UpdateItem)
			cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/refresh", cartHandler.RefreshCart)
		}

		// Wishlist
		wishlist := v1.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("", wishlistHandler.AddItem)
			wishlist.DELETE("/:productId", wishlistHandler.RemoveItem)
		}

		// Checkout - authenticated only
		checkout := v1.Group("")
		checkout.Use(middleware.RequireAuthenticated())
		{
			checkout.POST("/orders", checkoutHandler.CreateOrder)
			checkout.GET("/orders", checkoutHandler.ListOrders)
			checkout.GET("/orders/:orderId", checkoutHandler.GetOrder)
			checkout.POST("/payments", checkoutHandler.InitiatePayment)
			checkout.GET("/payments/:paymentId", checkoutHandler.GetPayment)
			checkout.POST("/shipping/rates", checkoutHandler.GetShippingRates)
			checkout.GET("/shipping/track/:trackingId", checkoutHandler.TrackShipment)
		}

		// Dashboards - role-gated
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/buyer", middleware.RequireAuthenticated(), dashboardHandler.BuyerDashboard)
			dashboard.GET("/vendor", middleware.RequireRole(models.RoleVendor), dashboardHandler.VendorDashboard)
			dashboard.GET("/vendor/orders/export", middleware.RequireRole(models.RoleVendor), dashboardHandler.ExportVendorOrders)
			dashboard.GET("/admin", middleware.RequireRole(models.RoleAdmin), dashboardHandler.AdminDashboard)
		}
	}

	// Start background workers
	if cleanupWorker != nil {
		cleanupWorker.Start()
		log.Info("✓ Session cleanup worker started")
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.WithField("port", cfg.Port).Info("Starting storefront-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down storefront-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanupWorker != nil {
		cleanupWorker.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Storefront service stopped")
}
