package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/cache"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/config"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/handler"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/sse"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/store"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/worker"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// main is the application entrypoint for the storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Int("sources", len(cfg.Catalog.Sources)).Msg("starting storefront api")

	// 3. Catalog cache: Redis when configured, in-process otherwise
	var (
		redisClient  *cache.RedisClient
		catalogCache cache.CatalogCache
	)
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		catalogCache = cache.NewRedisCatalogCache(redisClient, cfg.Catalog.CacheTTL)
		log.Info().Str("host", cfg.Redis.Host).Msg("catalog cache: redis")
	} else {
		catalogCache = cache.NewMemoryCatalogCache(cfg.Catalog.CacheTTL)
		log.Info().Msg("catalog cache: memory")
	}

	// 4. Storefront backend client
	storeAPI := storeapi.NewClient(cfg.StoreAPI.BaseURL, cfg.StoreAPI.Timeout, storeapi.WithDebug(cfg.Env == "development"))

	// 5. Membership store and its SSE subscribers
	memberships := store.New()
	hub := sse.NewHub()
	memberships.Subscribe(sse.NewHubNotifier(hub))

	// 6. Initialize services
	assembler := catalog.NewAssembler(cfg.Assets.StaticBaseURL, cfg.Assets.PlaceholderImageURL)
	catalogSvc := service.NewCatalogService(storeAPI, catalogCache, memberships, assembler, cfg.Catalog.Sources)
	wishlistSvc := service.NewWishlistService(storeAPI, memberships, assembler)
	cartSvc := service.NewCartService(storeAPI, memberships, assembler)
	checkoutSvc := service.NewCheckoutService(storeAPI, memberships, assembler, cfg.Payment.KeySecret)
	orderSvc := service.NewOrderService(storeAPI)
	profileSvc := service.NewProfileService(storeAPI)

	tokenParser := session.NewTokenParser(cfg.JWTSecret)
	if !tokenParser.Verifies() {
		log.Warn().Msg("JWT_SECRET not set: tokens are forwarded to the backend unverified")
	}

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(storeAPI, redisClient),
		Catalog:  handler.NewCatalogHandler(catalogSvc, storeAPI),
		Wishlist: handler.NewWishlistHandler(wishlistSvc),
		Cart:     handler.NewCartHandler(cartSvc),
		Checkout: handler.NewCheckoutHandler(checkoutSvc),
		Order:    handler.NewOrderHandler(orderSvc),
		Profile:  handler.NewProfileHandler(profileSvc),
		SSE:      handler.NewSSEHandler(hub, memberships, tokenParser),
	}

	// 8. Initialize middleware
	rateLimiter := middleware.NewInvalidAuthRateLimiter()
	defer rateLimiter.Stop()
	sessionMw := middleware.NewSessionMiddleware(tokenParser, rateLimiter)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewCatalogRefreshWorker(catalogSvc, memberships, cfg.Catalog.RefreshInterval, cfg.Catalog.MembershipIdleTTL).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers, close SSE streams so Shutdown
	// does not wait on them
	cancel()
	hub.Close()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Wishlist *handler.WishlistHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Profile  *handler.ProfileHandler
	SSE      *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMiddleware *middleware.SessionMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Image fallback redirect, no session needed
	router.GET("/v1/images/*path", handlers.Catalog.GetImage)

	// EventSource cannot send headers; the token comes in the query string
	router.GET("/v1/events", handlers.SSE.Stream)

	v1 := router.Group("/v1")
	v1.Use(sessionMiddleware.Handle())
	{
		// Catalog (anonymous or signed in)
		v1.GET("/catalog/sources", handlers.Catalog.GetSources)
		v1.GET("/catalog/:source", handlers.Catalog.GetCatalog)
		v1.POST("/catalog/:source/retry", handlers.Catalog.RetryCatalog)
		v1.GET("/products/:id", handlers.Catalog.GetProduct)

		shopper := v1.Group("")
		shopper.Use(sessionMiddleware.RequireAuth())
		{
			// Wishlist
			shopper.GET("/wishlist", handlers.Wishlist.GetWishlist)
			shopper.POST("/wishlist", handlers.Wishlist.AddToWishlist)
			shopper.DELETE("/wishlist/:productId", handlers.Wishlist.RemoveFromWishlist)
			shopper.POST("/wishlist/:productId/toggle", handlers.Wishlist.ToggleWishlist)

			// Cart
			shopper.GET("/cart", handlers.Cart.GetCart)
			shopper.POST("/cart", handlers.Cart.AddToCart)
			shopper.DELETE("/cart", handlers.Cart.ClearCart)
			shopper.PUT("/cart/:productId", handlers.Cart.UpdateCartItem)
			shopper.DELETE("/cart/:productId", handlers.Cart.RemoveFromCart)

			// Checkout
			shopper.POST("/checkout", handlers.Checkout.Checkout)
			shopper.POST("/checkout/verify", handlers.Checkout.VerifyPayment)

			// Orders
			shopper.GET("/orders", handlers.Order.GetOrders)
			shopper.GET("/orders/:id", handlers.Order.GetOrder)

			// Profile
			shopper.GET("/profile", handlers.Profile.GetProfile)
			shopper.PUT("/profile", handlers.Profile.UpdateProfile)
		}
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
