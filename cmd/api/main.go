package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"charm-money/internal/config"
	"charm-money/internal/db"
	"charm-money/internal/email"
	apihttp "charm-money/internal/http"
	"charm-money/internal/metrics"
	"charm-money/internal/repository"
	"charm-money/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	resultRepo := repository.NewPgResultRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		limiter     = service.NewMemoryRateLimiter(cfg.SubmitRateWindow(), cfg.SubmitRateLimit)
		cache       = service.NewNopResultCache()
		tokenStore  = service.NewMemoryShareTokenStore()
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, cfg.SubmitRateWindow(), cfg.SubmitRateLimit)
			cache = service.NewRedisResultCache(redisClient, cfg.ResultCacheTTL())
			tokenStore = service.NewRedisShareTokenStore(redisClient)
		}
		cancel()
		defer redisClient.Close()
	}

	if cfg.ShareTokenSecret == "" {
		logger.Warn("share token secret not configured, send-result disabled")
	}
	tokens := service.NewShareTokenServiceWithStore(cfg.ShareTokenSecret, cfg.ShareTokenTTL(), tokenStore)

	resultSvc := service.NewResultService(service.ResultServiceConfig{
		Logger:        logger,
		Results:       resultRepo,
		EmailSender:   emailSender,
		Limiter:       limiter,
		Cache:         cache,
		Tokens:        tokens,
		Recorder:      metrics.NewRecorder(),
		DefaultLocale: cfg.DefaultLocale,
		MaxRetries:    cfg.CodeMaxRetries,
	})

	resultHandler := apihttp.NewResultHandler(logger, resultSvc, cfg.PublicBaseURL)
	referenceHandler := apihttp.NewReferenceHandler(logger)
	router := apihttp.NewRouter(logger, resultHandler, referenceHandler, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
