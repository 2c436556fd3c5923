package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/auth"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/config"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/database"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/event"
	handler "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/handler/http"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/health"
	pkgkafka "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/kafka"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/middleware"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/repository/postgres"
	redisrepo "github.com/mFatihGorhan/lux-fashion-website-sub001/internal/repository/redis"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/service"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/internal/tracing"
	"github.com/mFatihGorhan/lux-fashion-website-sub001/migrations"
)

// App wires together all dependencies and runs the wishlist service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "wishlist",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "wishlist")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize the Redis read cache. The cache is best-effort: when Redis
	// is unreachable the service runs uncached against PostgreSQL.
	var cache service.Cache
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("redis unavailable, wishlist cache disabled",
			slog.String("error", err.Error()),
		)
		redisClient = nil
	} else {
		cache = redisrepo.NewWishlistCache(redisClient, time.Duration(cfg.CacheTTLSecs)*time.Second)
		logger.Info("connected to Redis",
			slog.String("addr", fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)),
		)
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Parse session token expiry.
	sessionExpiry, err := time.ParseDuration(cfg.SessionExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse session token expiry %q: %w", cfg.SessionExpiry, err)
	}

	// Build the dependency graph.
	sessions := auth.NewSessionManager(cfg.SessionSecret, sessionExpiry)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	eventProducer := event.NewProducer(producer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, cache, eventProducer, logger)

	// Health checks. Kafka and Redis are best-effort dependencies and do not
	// affect readiness.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		WishlistService: wishlistService,
		TokenIssuer:     sessions,
		TokenValidator: func(token string) (*middleware.Claims, error) {
			claims, err := sessions.Validate(token)
			if err != nil {
				return nil, err
			}
			return &middleware.Claims{SessionID: claims.SessionID}, nil
		},
		HealthHandler: healthHandler,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush spans from drained requests)
// 3. Kafka producer
// 4. Redis client
// 5. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
