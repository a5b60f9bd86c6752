package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/mostafa-azimi/touring-app-sub000/pkg/cloudevents"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/kafka"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/metrics"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/middleware"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/mongodb"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/resilience"

	apihttp "github.com/mostafa-azimi/touring-app-sub000/internal/api/http"
	"github.com/mostafa-azimi/touring-app-sub000/internal/application"
	kafkaInfra "github.com/mostafa-azimi/touring-app-sub000/internal/infrastructure/kafka"
	mongoRepo "github.com/mostafa-azimi/touring-app-sub000/internal/infrastructure/mongodb"
	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
)

const serviceName = "touring-api"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting touring API")

	config := loadConfig()
	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)

	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	kafkaProducer := kafka.NewProducer(config.Kafka)
	defer kafkaProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceTouringAPI)

	db := mongoClient.Database()
	tourRepo := mongoRepo.NewTourRepository(db)
	participantRepo := mongoRepo.NewParticipantRepository(db)
	teamRepo := mongoRepo.NewTeamMemberRepository(db)
	extrasRepo := mongoRepo.NewExtraCustomerRepository(db)
	warehouseRepo := mongoRepo.NewWarehouseRepository(db)
	swagRepo := mongoRepo.NewSwagItemRepository(db)
	settingsRepo := mongoRepo.NewSettingsRepository(db)

	if err := extrasRepo.SeedDefaults(ctx); err != nil {
		logger.WithError(err).Warn("Failed to seed extra customer pool")
	}

	tokenManager := shiphero.NewTokenManager(
		shiphero.DefaultTokenManagerConfig(config.AuthURL),
		mongoRepo.NewRefreshTokenSource(settingsRepo),
		logger,
	)
	tokenManager.Start(ctx)
	defer tokenManager.Stop()

	breaker := resilience.NewCircuitBreaker(
		resilience.DefaultCircuitBreakerConfig("shiphero"),
		logger.Logger,
		func(name string, from, to gobreaker.State) {
			m.SetCircuitBreakerState(name, int(to))
			if to == gobreaker.StateOpen {
				m.RecordCircuitBreakerTrip(name)
			}
		},
	)
	apiClient := shiphero.NewClient(shiphero.DefaultConfig(config.APIEndpoint), tokenManager, breaker)

	publisher := kafkaInfra.NewEventPublisher(kafkaProducer, eventFactory, logger, m)

	tourService := application.NewTourService(tourRepo, participantRepo, teamRepo, warehouseRepo, publisher, logger)
	catalogService := application.NewCatalogService(warehouseRepo, teamRepo, swagRepo, extrasRepo, settingsRepo, logger)
	finalizationService := application.NewFinalizationService(
		tourRepo, participantRepo, teamRepo, extrasRepo,
		swagRepo, settingsRepo, warehouseRepo,
		apiClient, publisher, logger, m,
	)
	cancellationService := application.NewCancellationService(tourRepo, apiClient, publisher, logger, m)

	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	tourHandlers := apihttp.NewTourHandlers(tourService, finalizationService, cancellationService, logger)
	catalogHandlers := apihttp.NewCatalogHandlers(catalogService, logger)
	proxyHandlers := apihttp.NewProxyHandlers(apiClient, logger)
	apihttp.RegisterRoutes(router, tourHandlers, catalogHandlers, proxyHandlers)

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr  string
	APIEndpoint string
	AuthURL     string
	MongoDB     *mongodb.Config
	Kafka       *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "touring")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaConfig.ClientID = serviceName

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		APIEndpoint: getEnv("SHIPHERO_API_URL", "https://public-api.shiphero.com/graphql"),
		AuthURL:     getEnv("SHIPHERO_AUTH_URL", "https://public-api.shiphero.com/auth/refresh"),
		MongoDB:     mongoConfig,
		Kafka:       kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
