package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gastropos/internal/cache"
	"gastropos/internal/config"
	"gastropos/internal/domain"
	"gastropos/internal/export"
	"gastropos/internal/httpapi"
	"gastropos/internal/insight"
	"gastropos/internal/logger"
	"gastropos/internal/metrics"
	"gastropos/internal/service"
	"gastropos/internal/store"
	"gastropos/internal/store/kv"
	pgstore "gastropos/internal/store/postgres"
	redisstore "gastropos/internal/store/redis"
)

func main() {
	cfg := config.Load()
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	closers := make([]func() error, 0, 2)
	defer func() {
		for _, closeFn := range closers {
			if err := closeFn(); err != nil {
				log.Warn("close error", zap.Error(err))
			}
		}
	}()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closers = append(closers, redisClient.Close)
	}

	backend, err := openBackend(startCtx, cfg, redisClient, log)
	if err != nil {
		return err
	}
	if c, ok := backend.(interface{ Close() error }); ok {
		closers = append(closers, c.Close)
	}

	repo, err := kv.Open(startCtx, backend, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := seedSettings(startCtx, repo, cfg); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	recorder := metrics.New()
	opts := []service.Option{
		service.WithLocation(loc),
		service.WithMetrics(recorder),
		service.WithLogger(log),
	}
	sink, err := openSink(startCtx, cfg, log)
	if err != nil {
		return err
	}
	if sink != nil {
		opts = append(opts, service.WithExportSink(sink))
	}

	svc := service.New(repo, newAdvisor(startCtx, cfg, redisClient, log), opts...)
	api := httpapi.New(svc, httpapi.Options{
		AllowedOrigin:         cfg.AllowedOrigin,
		Logger:                log,
		Metrics:               recorder,
		InsightLimitPerMinute: cfg.InsightLimitPerMinute,
	})

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("POS backend listening", zap.String("addr", cfg.Address()), zap.String("timezone", loc.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openBackend picks postgres, then redis, then process memory.
func openBackend(ctx context.Context, cfg config.Config, redisClient *redis.Client, log *zap.Logger) (kv.KV, error) {
	switch {
	case cfg.DatabaseURL != "":
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres unavailable and DATABASE_URL is set: %w", err)
		}
		log.Info("repository: postgres")
		return pg, nil
	case redisClient != nil:
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis unavailable and REDIS_ADDR is set: %w", err)
		}
		log.Info("repository: redis", zap.String("addr", cfg.RedisAddr))
		return redisstore.New(redisClient, redisstore.DefaultPrefix), nil
	default:
		log.Warn("repository: in-memory, data is lost on restart")
		return kv.NewMemoryKV(), nil
	}
}

// seedSettings applies APP_NAME and APP_PHONE while the stored settings are
// still the defaults.
func seedSettings(ctx context.Context, repo store.Settings, cfg config.Config) error {
	current, err := repo.GetSettings(ctx)
	if err != nil {
		return err
	}
	if current != domain.DefaultAppConfig() {
		return nil
	}
	if cfg.AppName == "" && cfg.AppPhone == "" {
		return nil
	}
	if cfg.AppName != "" {
		current.AppName = cfg.AppName
	}
	current.Phone = cfg.AppPhone
	_, err = repo.UpdateSettings(ctx, current)
	return err
}

func newAdvisor(ctx context.Context, cfg config.Config, redisClient *redis.Client, log *zap.Logger) *insight.Advisor {
	var cacheStore cache.InsightCache = cache.NoopInsightCache{}
	if redisClient != nil {
		redisCache := cache.NewRedisInsightCache(redisClient)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, using noop insight cache", zap.Error(err))
		} else {
			cacheStore = redisCache
		}
	}

	var gen insight.Generator
	if cfg.GeminiAPIKey != "" {
		gen = insight.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		log.Info("insights: gemini", zap.String("model", cfg.GeminiModel))
	} else {
		log.Info("insights: disabled, GEMINI_API_KEY not set")
	}
	return insight.NewAdvisor(gen, cacheStore, cfg.InsightTTL(), log)
}

func openSink(ctx context.Context, cfg config.Config, log *zap.Logger) (export.Sink, error) {
	switch {
	case cfg.S3Enabled():
		sink, err := export.NewS3Sink(ctx, export.S3Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			Endpoint:     cfg.S3Endpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.S3Prefix,
			UseSSL:       cfg.S3UseSSL,
			UsePathStyle: cfg.S3UsePathStyle,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("export sink: %w", err)
		}
		log.Info("exports: s3", zap.String("bucket", cfg.S3Bucket))
		return sink, nil
	case cfg.ExportDir != "":
		sink, err := export.NewFileSink(cfg.ExportDir)
		if err != nil {
			return nil, fmt.Errorf("export sink: %w", err)
		}
		log.Info("exports: directory", zap.String("dir", cfg.ExportDir))
		return sink, nil
	default:
		return nil, nil
	}
}

func validateConfig(cfg config.Config) error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a known zone: %w", cfg.Timezone, err)
	}
	if cfg.S3Enabled() && (cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_BUCKET is set")
	}
	if cfg.InsightLimitPerMinute < 1 {
		return fmt.Errorf("INSIGHT_LIMIT_PER_MINUTE must be at least 1")
	}
	return nil
}
