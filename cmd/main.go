// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/generation"
	"github.com/Kumkum15/Review-System/internal/handlers"
	"github.com/Kumkum15/Review-System/internal/repository"
	"github.com/Kumkum15/Review-System/internal/service"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, tempLogger)
	log.Println("Log Config Loaded...")
	slog.SetDefault(logger)

	slog.Info("Application starting...", slog.String("app", config.Cfg.App.Name), slog.String("version", config.AppVersion))

	// 1. Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if config.Cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error migrating database", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Database migrated")
	}

	// 2. Dependency Injection
	client, err := generation.NewClient(config.Cfg.Generation, logger)
	if err != nil {
		slog.Error("Error initializing generation client", slog.Any("error", err))
		os.Exit(1)
	}
	generator := generation.NewGenerator(client)

	mailer, err := service.NewMailer(context.Background(), &config.Cfg, logger)
	if err != nil {
		slog.Error("Error initializing mailer", slog.Any("error", err))
		os.Exit(1)
	}

	submissionRepo := repository.NewGormSubmissionRepository()
	submissionService := service.NewSubmissionService(db, submissionRepo, generator, mailer, &config.Cfg)
	authService := service.NewAuthService(&config.Cfg)

	submissionHandler := handlers.NewSubmissionHandler(submissionService, config.Cfg.App)
	authHandler := handlers.NewAuthHandler(authService)

	// 3. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:            logger,
		CORS:              config.Cfg.CORS,
		AuthEnabled:       config.Cfg.Auth.Enabled,
		TrustProxyHeaders: config.Cfg.Server.TrustProxyHeaders,
		RateLimit:         config.Cfg.RateLimit,
		MetricsRecorder:   metricsprom.NewRecorder(metricsprom.Config{Registry: prometheus.DefaultRegisterer}),
		DB:                sqlDB,
	}, submissionHandler, authHandler, authService)

	// 4. Start Server
	// 1投稿で生成APIを最大3回並列に呼ぶので WriteTimeout は生成タイムアウトより長くする
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: config.Cfg.Generation.Timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は設定のログレベルと APP_ENV からロガーを作ります。
// APP_ENV=dev なら tint、それ以外は JSON。
func newLogger(level string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
