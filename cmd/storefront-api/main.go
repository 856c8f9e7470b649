package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	authapp "github.com/wyfcoding/storefront/internal/auth/application"
	authmysql "github.com/wyfcoding/storefront/internal/auth/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/auth/infrastructure/token"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	cartapp "github.com/wyfcoding/storefront/internal/cart/application"
	cartmysql "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	catalogredis "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/redis"
	cataloghttp "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/storefront/internal/order/application"
	ordermysql "github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/storefront/internal/order/interfaces/http"
	wishlistapp "github.com/wyfcoding/storefront/internal/wishlist/application"
	wishlistmysql "github.com/wyfcoding/storefront/internal/wishlist/infrastructure/persistence/mysql"
	wishlisthttp "github.com/wyfcoding/storefront/internal/wishlist/interfaces/http"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
	"github.com/wyfcoding/storefront/pkg/ratelimit"
	"golang.org/x/sync/errgroup"
)

const categoryCacheTTL = 5 * time.Minute

var configPath = flag.String("config", "configs/storefront-api/config.toml", "config file path")

func main() {
	flag.Parse()
	ctx := context.Background()

	// 1. Config
	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	if err := logging.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	logging.Info(ctx, "Starting service", "service", cfg.ServiceName, "version", cfg.Version, "env", cfg.Environment)

	// 3. Metrics
	metricsImpl := metrics.New(cfg.ServiceName)

	// 4. Database
	database, err := db.Init(ctx, cfg.Database)
	if err != nil {
		logging.Fatal(ctx, "failed to connect database", "error", err)
	}
	defer database.Close()

	models := append(authmysql.Models(), catalogmysql.Models()...)
	models = append(models, cartmysql.Models()...)
	models = append(models, wishlistmysql.Models()...)
	models = append(models, ordermysql.Models()...)
	if err := database.AutoMigrate(models...); err != nil {
		logging.Fatal(ctx, "failed to migrate database", "error", err)
	}

	// 5. Redis（可选）：分类缓存与限流
	var (
		redisCache    *cache.RedisCache
		categoryCache catalogdomain.CategoryCache
	)
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.New(ctx, cfg.Redis)
		if err != nil {
			logging.Error(ctx, "failed to init redis, continuing without cache", "error", err)
		} else {
			defer redisCache.Close()
			categoryCache = catalogredis.NewCategoryCache(redisCache, categoryCacheTTL)
		}
	}

	// 6. Kafka
	producer := mq.NewProducer(ctx, cfg.Kafka)
	defer producer.Close()
	publisher := mq.NewPublisher(producer)

	// 7. Repositories
	gdb := database.DB
	tx := db.NewTransactor(gdb)
	userRepo := authmysql.NewUserRepository(gdb)
	catalogRepo := catalogmysql.NewCatalogRepository(gdb)
	cartRepo := cartmysql.NewCartRepository(gdb)
	productChecker := cartmysql.NewProductChecker(gdb)
	wishlistRepo := wishlistmysql.NewWishlistRepository(gdb)
	orderRepo := ordermysql.NewOrderRepository(gdb)
	checkoutRepo := ordermysql.NewCheckoutRepository(gdb)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.ServiceName)

	// 8. Application Services
	catalogCmd := catalogapp.NewCatalogCommandService(catalogRepo, categoryCache, publisher)
	catalogQuery := catalogapp.NewCatalogQueryService(catalogRepo, categoryCache)
	cartCmd := cartapp.NewCartCommandService(cartRepo, productChecker, publisher, metricsImpl)
	cartQuery := cartapp.NewCartQueryService(cartRepo)
	authCmd := authapp.NewAuthCommandService(userRepo, cartCmd, tokens, tx, publisher, metricsImpl)
	wishlistSvc := wishlistapp.NewWishlistService(wishlistRepo, productChecker, publisher, metricsImpl)
	orderCmd := orderapp.NewOrderCommandService(checkoutRepo, orderRepo, tx, publisher, metricsImpl)

	if cfg.Seed {
		if _, err := catalogCmd.Seed(ctx); err != nil {
			logging.Error(ctx, "failed to seed catalog", "error", err)
		}
	}

	// 9. Interfaces
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.GinRecoveryMiddleware(),
		middleware.GinLoggingMiddleware(),
		middleware.GinCORSMiddleware(cfg.HTTP.AllowedOrigins),
		middleware.GinMetricsMiddleware(metricsImpl),
	)
	if cfg.RateLimit.Enabled && redisCache != nil {
		limit := ratelimit.Limit{Rate: cfg.RateLimit.Limit, Period: cfg.RateLimit.Period}
		r.Use(middleware.RateLimitMiddleware(ratelimit.NewRedisRateLimiter(redisCache), limit))
	}
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metricsImpl.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	authhttp.NewHandler(authCmd).RegisterRoutes(api)
	cataloghttp.NewHandler(catalogQuery).RegisterRoutes(api)

	secured := api.Group("", middleware.RequireAuth(tokens))
	carthttp.NewHandler(cartCmd, cartQuery).RegisterRoutes(secured)
	wishlisthttp.NewHandler(wishlistSvc).RegisterRoutes(secured)
	orderhttp.NewOrderHandler(orderCmd).RegisterRoutes(secured)

	// 10. Start
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info(gctx, "HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logging.Info(ctx, "shutting down server...")
		case <-gctx.Done():
			logging.Info(ctx, "context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error(ctx, "server exited with error", "error", err)
	}
}
