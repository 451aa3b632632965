package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rackwise/rackwise/internal/catalog/entity"
	"github.com/rackwise/rackwise/internal/catalog/handler"
	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/catalog/service"
	"github.com/rackwise/rackwise/internal/config"
	"github.com/rackwise/rackwise/internal/middleware"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := newDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	if err := autoMigrate(db); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	rdb := newRedis(cfg.Redis)
	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache disabled", zap.Error(err))
			rdb = nil
		}
		cancel()
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func registerRoutes(router *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": version, "build_time": buildTime})
	})

	api := router.Group("/api/v1")
	if cfg.JWT.Secret != "" {
		api.Use(middleware.JWTAuth(cfg.JWT.Secret))
	}

	baskets := api.Group("/baskets")
	{
		baskets.POST("/import", h.Basket.Import)
		baskets.GET("", h.Basket.List)
		baskets.GET("/:id", h.Basket.Get)
		baskets.GET("/:id/export", h.Basket.Export)
		baskets.DELETE("/:id", h.Basket.Delete)
	}

	api.GET("/capacity/summary", h.Capacity.Summary)

	projects := api.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.GET("/:id", h.Project.Get)
		projects.POST("", h.Project.Create)
		projects.PUT("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if err := zapCfg.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	return zapCfg.Build()
}

func newDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.HardwareBasket{},
		&entity.HardwareModel{},
		&entity.HardwareConfiguration{},
		&entity.HardwarePricing{},
		&entity.SupportTier{},
		&entity.Project{},
	)
}

func newRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
