package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diet-challenge-api/src/infrastructure/di"
	"diet-challenge-api/src/infrastructure/dummy"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/rest/middlewares"
	"diet-challenge-api/src/infrastructure/rest/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}
}

func main() {
	_ = godotenv.Load()

	env := getEnvOrDefault("GO_ENV", "development")
	var loggerInstance *logger.Logger
	var err error

	if env == "development" {
		loggerInstance, err = logger.NewDevelopmentLogger()
	} else {
		loggerInstance, err = logger.NewLogger()
	}

	if err != nil {
		panic(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() {
		_ = loggerInstance.Log.Sync()
	}()

	loggerInstance.Info("Starting diet-challenge-api application")

	serverConfig := loadServerConfig()

	appContext, err := di.SetupDependencies(loggerInstance)
	if err != nil {
		loggerInstance.Panic("Error initializing application context", zap.Error(err))
	}

	if err := appContext.Scheduler.Start(); err != nil {
		loggerInstance.Panic("Error starting scheduler", zap.Error(err))
	}

	dummyCtx, stopDummy := context.WithCancel(context.Background())
	if dummy.Enabled() {
		generator := dummy.NewGenerator(appContext.ChallengerRepository, loggerInstance)
		go generator.Run(dummyCtx)
	}

	router := setupRouter(appContext, loggerInstance)
	server := setupServer(router, serverConfig.Port)

	go func() {
		loggerInstance.Info("Server starting", zap.String("port", serverConfig.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	loggerInstance.Info("Shutting down")
	stopDummy()
	appContext.Scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error("Server shutdown failed", zap.Error(err))
	}
}

func setupRouter(appContext *di.ApplicationContext, loggerInstance *logger.Logger) *gin.Engine {
	env := getEnvOrDefault("GO_ENV", "development")
	if env == "development" {
		loggerInstance.SetupGinWithZapLoggerInDevelopment()
	} else {
		loggerInstance.SetupGinWithZapLogger()
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(middlewares.ErrorHandler())
	router.Use(middlewares.CommonHeaders())
	router.Use(loggerInstance.GinZapLogger())

	routes.ApplicationRouter(router, appContext)
	return router
}

func setupServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
