package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/telehealth-assistant/docs"
	pkgvalidator "github.com/johnquangdev/telehealth-assistant/pkg/validator"

	"github.com/johnquangdev/telehealth-assistant/internal/adapter/handler"
	"github.com/johnquangdev/telehealth-assistant/internal/domain/entities"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/external/livekit"
	httpmw "github.com/johnquangdev/telehealth-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/notify"
	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/telehealth-assistant/internal/usecase/ai"
	alertuse "github.com/johnquangdev/telehealth-assistant/internal/usecase/alert"
	appointmentuse "github.com/johnquangdev/telehealth-assistant/internal/usecase/appointment"
	"github.com/johnquangdev/telehealth-assistant/internal/usecase/assistant"
	symptomuse "github.com/johnquangdev/telehealth-assistant/internal/usecase/symptom"
	pkgai "github.com/johnquangdev/telehealth-assistant/pkg/ai"
	"github.com/johnquangdev/telehealth-assistant/pkg/config"
	"github.com/johnquangdev/telehealth-assistant/pkg/jwt"
)

// @title           Telehealth Assistant API
// @version         1.0
// @description     Voice command pipeline, appointments and emergency alerts for the telehealth app

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	// Store backend
	log.Printf("📦 Connecting to %s store...", cfg.Database.Backend)
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.close()

	// Redis pub/sub
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	broker := notify.NewRedisBroker(redisClient, logger)

	// Optional Kafka sink for alert events
	kafkaPublisher := notify.NewKafkaPublisher(&cfg.Kafka)
	if kafkaPublisher != nil {
		log.Printf("📨 Publishing alerts to Kafka topic %s", cfg.Kafka.AlertTopic)
		defer kafkaPublisher.Close()
	}

	// Object storage for call transcripts
	log.Println("🗄️  Connecting to MinIO...")
	var archive aiuse.TranscriptArchive
	minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		logger.Warn("object storage unavailable, call transcripts will not be archived", zap.Error(err))
	} else {
		archive = minioClient
	}

	// LiveKit
	log.Println("🎥 Initializing LiveKit client...")
	livekitClient := livekit.NewClient(&cfg.LiveKit)
	if cfg.LiveKit.UseMock {
		log.Println("⚠️  LiveKit running in MOCK mode (no real server needed)")
	} else {
		log.Printf("✅ LiveKit connected to: %s", cfg.LiveKit.URL)
	}

	// AI clients
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)

	// Use cases
	alertService := alertuse.NewService(store.alerts, notify.NewFanout(broker, kafkaPublisher), broker, logger)
	appointmentService := appointmentuse.NewService(store.appointments, livekitClient, logger)
	symptomService := symptomuse.NewService(store.symptoms)
	aiService := aiuse.NewService(groqClient, store.summaries, store.appointments, archive, alertService, 0, logger)

	// Voice command pipeline
	log.Println("🗣️  Initializing voice command pipeline...")
	policy, err := assistant.NewWritePolicy(
		cfg.Assistant.WritePolicy,
		cfg.Assistant.RetryInitialInterval,
		cfg.Assistant.RetryMaxElapsed,
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to build write policy: %v", err)
	}
	classifier := assistant.NewClassifier(
		groqClient,
		entities.IntentProfile(cfg.Assistant.IntentProfile),
		pkgai.CompletionOptions{Temperature: cfg.Assistant.Temperature, MaxTokens: cfg.Assistant.MaxTokens},
		logger,
	)
	dispatcher := assistant.NewDispatcher(
		classifier,
		store.appointments,
		store.symptoms,
		alertService,
		policy,
		broker,
		cfg.Assistant.DefaultDoctorID,
		logger,
	)
	logger.Info("voice pipeline ready",
		zap.String("intent_profile", string(classifier.Profile())),
		zap.String("write_policy", policy.Name()))

	// Handlers
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	healthDeps := map[string]handler.Pinger{
		"store": handler.PingFunc(store.ping),
		"redis": handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
	}
	if minioClient != nil {
		healthDeps["storage"] = minioClient
	}

	router := handler.NewRouter(
		handler.NewHealthHandler(cfg.Server.Environment, healthDeps, logger),
		handler.NewAssistantHandler(dispatcher, classifier, asmClient, aiService, cfg.Assistant.ClassificationTimeout, logger),
		handler.NewAppointmentHandler(appointmentService, aiService, logger),
		handler.NewSymptomHandler(symptomService, logger),
		handler.NewAlertHandler(alertService, cfg.Server.AllowedOrigins, logger),
		handler.NewWebhookHandler(appointmentService, dispatcher, cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.Voice.Secret, cfg.Assistant.ClassificationTimeout, logger),
		httpmw.EchoAuth(jwtManager),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
