package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/specdock/specdock/handlers"
	"github.com/specdock/specdock/internal/config"
	"github.com/specdock/specdock/internal/database"
	"github.com/specdock/specdock/internal/spec/handler"
	"github.com/specdock/specdock/internal/spec/repository"
	"github.com/specdock/specdock/internal/spec/service"
	"github.com/specdock/specdock/internal/storage"
	"github.com/specdock/specdock/pkg/metrics"
	"github.com/specdock/specdock/pkg/middleware"
)

var startTime = time.Now()

func main() {
	initLogging(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logrus.Fatalf("failed to open database %q: %v", cfg.Database.URL, err)
	}
	repo := repository.NewGormRepo(db)
	if err := repo.Migrate(); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	// optional original-bytes archive
	var archive service.Archive
	if acfg := storage.LoadArchiveConfig(); acfg.Endpoint != "" {
		a, err := storage.NewSpecArchive(acfg)
		if err != nil {
			logrus.Warnf("upload archive disabled: %v", err)
		} else {
			logrus.Infof("upload archive enabled (bucket %s)", acfg.Bucket)
			archive = a
		}
	}

	svc := service.NewService(repo, archive)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS for dev/test: common headers plus OPTIONS handling.
	// Production deployments should sit behind a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Redis is only used by the optional rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: the database is the only hard dependency
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"database": false, "archive": archive != nil}
		sqlDB, err := db.DB()
		if err == nil && sqlDB.Ping() == nil {
			deps["database"] = true
		}
		if !deps["database"] {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	handlers.RegisterPages(r, svc, cfg.Upload.MaxBytes)
	handler.RegisterSpecRoutes(r, svc, cfg.Upload.MaxBytes)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("starting specdock on %s (database %s)", addr, cfg.Database.URL)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}

// initLogging configures logrus from LOG_LEVEL (debug|info|warn|error).
func initLogging(level string) {
	logrus.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
