package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/auth"
	"github.com/lumistudy/tutor-api/internal/config"
	"github.com/lumistudy/tutor-api/internal/contextcache"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/handlers"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/middleware"
	"github.com/lumistudy/tutor-api/internal/queue"
	"github.com/lumistudy/tutor-api/internal/services/ai"
	"github.com/lumistudy/tutor-api/internal/services/sentiment"
	"github.com/lumistudy/tutor-api/internal/telemetry"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("open_router_configured", cfg.OpenRouterConfigured()),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "tutor-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Connect to database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
		}
	}()

	zapLogger.Info("connected_to_database")

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
	}
	migrateCancel()

	// Connect to Redis for rate limiting
	redisLimiter, err := middleware.NewRedisRateLimiter(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
	}
	defer func() {
		if err := redisLimiter.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("connected_to_redis")

	// Connect to RabbitMQ for mood rollup jobs. The queue is optional: without
	// it chats still work, rollups just never refresh.
	jobQueue := connectQueue(cfg, zapLogger)
	if jobQueue != nil {
		defer func() {
			if err := jobQueue.Close(); err != nil {
				zapLogger.Warn("failed_to_close_rabbitmq_connection", zap.Error(err))
			}
		}()
	}

	// Initialize repositories
	userRepo := database.NewUserRepository(db)
	subjectRepo := database.NewSubjectRepository(db)
	messageRepo := database.NewChatMessageRepository(db)
	moodRepo := database.NewMoodLogRepository(db)
	summaryRepo := database.NewMoodSummaryRepository(db)

	// Initialize services
	issuer := auth.NewSessionIssuer(cfg.JWTSecret)
	cache := contextcache.New()

	var provider ai.CompletionProvider
	if cfg.OpenRouterConfigured() {
		provider = ai.NewOpenRouterProviderWithLogger(
			cfg.OpenRouterKey,
			cfg.AIBaseURL,
			cfg.AIModel,
			zapLogger,
			debugMode,
		)
		zapLogger.Info("initialized_completion_provider", zap.String("model", cfg.AIModel))
	} else {
		zapLogger.Warn("completion_provider_not_configured_using_fallback_replies")
	}

	chatService := ai.NewChatService(
		provider,
		sentiment.NewKeywordEstimator(),
		subjectRepo,
		messageRepo,
		moodRepo,
		cache,
		zapLogger,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, issuer, zapLogger)
	userHandler := handlers.NewUserHandler()
	chatHandler := handlers.NewChatHandler(chatService, jobQueue, zapLogger)
	uploadHandler := handlers.NewUploadHandler(cache, zapLogger)
	historyHandler := handlers.NewHistoryHandler(messageRepo, moodRepo, subjectRepo, zapLogger)
	subjectHandler := handlers.NewSubjectHandler(subjectRepo, zapLogger)
	summaryHandler := handlers.NewMoodSummaryHandler(summaryRepo, zapLogger)
	healthChecker := handlers.NewHealthChecker(db, redisLimiter, jobQueue, cfg.OpenRouterConfigured())

	// Setup router
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("tutor-api"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.UploadMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(redisLimiter, cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	apiRouter := r.PathPrefix("/api").Subrouter()

	// Public routes
	apiRouter.HandleFunc("/health", healthChecker.HealthCheck).Methods("GET")
	subjectHandler.RegisterRoutes(apiRouter)

	// Auth routes, rate limited to slow credential stuffing
	publicAuthRouter := apiRouter.PathPrefix("").Subrouter()
	publicAuthRouter.Use(rateLimitMW)
	authHandler.RegisterRoutes(publicAuthRouter)

	// Protected routes
	protectedRouter := apiRouter.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.Auth(issuer, userRepo, zapLogger))
	protectedRouter.Use(rateLimitMW)
	userHandler.RegisterRoutes(protectedRouter)
	chatHandler.RegisterRoutes(protectedRouter)
	uploadHandler.RegisterRoutes(protectedRouter)
	historyHandler.RegisterRoutes(protectedRouter)
	summaryHandler.RegisterRoutes(protectedRouter)

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

// connectQueue dials RabbitMQ with exponential backoff to ride out broker
// startup delays. Returns nil when no URL is configured or every attempt
// fails; the server runs without rollups in that case.
func connectQueue(cfg *config.Config, zapLogger *zap.Logger) queue.JobQueue {
	if cfg.RabbitMQURL == "" {
		zapLogger.Warn("rabbitmq_not_configured_mood_rollups_disabled")
		return nil
	}

	const maxRetries = 5
	const initialDelay = 2 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
		if err == nil {
			zapLogger.Info("connected_to_rabbitmq")
			return jobQueue
		}

		lastErr = err
		delay := initialDelay * time.Duration(1<<uint(attempt))
		if delay > 30*time.Second {
			delay = 30 * time.Second
		}
		zapLogger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		time.Sleep(delay)
	}

	zapLogger.Warn("rabbitmq_unavailable_mood_rollups_disabled", zap.Error(lastErr))
	return nil
}
