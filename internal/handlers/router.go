package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/webutil"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpmetrics "github.com/slok/go-http-metrics/metrics"
	metricsmiddleware "github.com/slok/go-http-metrics/middleware"
	metricsstd "github.com/slok/go-http-metrics/middleware/std"
	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 60 * time.Second

// Pinger はヘルスチェックで使うDB接続 (*sql.DB を想定)
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterConfig はルーターの構築に必要な設定と依存をまとめたもの
type RouterConfig struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	AuthEnabled bool
	// X-Forwarded-For / X-Real-IP をクライアントIPとして使う (信頼できるプロキシの後ろでのみ true)
	TrustProxyHeaders bool
	RateLimit         config.RateLimitConfig
	RequestTimeout    time.Duration
	// nil の場合はHTTPメトリクスを記録しない
	MetricsRecorder httpmetrics.Recorder
	DB              Pinger
}

// NewRouter はミドルウェアとルーティングを設定した http.Handler を返します
func NewRouter(rc RouterConfig, submissionHandler *SubmissionHandler, authHandler *AuthHandler, verifier middleware.TokenVerifier) http.Handler {
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := rc.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	if rc.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   rc.CORS.AllowedOrigins,
		AllowedMethods:   rc.CORS.AllowedMethods,
		AllowedHeaders:   rc.CORS.AllowedHeaders,
		ExposedHeaders:   rc.CORS.ExposedHeaders,
		AllowCredentials: rc.CORS.AllowCredentials,
		MaxAge:           rc.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	// ハンドラIDにはルートパターンを使い、パスパラメータで系列が増えないようにする
	measure := func(handlerID string) func(http.Handler) http.Handler {
		if rc.MetricsRecorder == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		mdlw := metricsmiddleware.New(metricsmiddleware.Config{Recorder: rc.MetricsRecorder})
		return metricsstd.HandlerProvider(handlerID, mdlw)
	}

	rps, burst := rc.RateLimit.RequestsPerSecond, rc.RateLimit.Burst
	if rps <= 0 {
		rps = config.DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = config.DefaultRateLimitBurst
	}
	limiter := middleware.NewIPRateLimiter(rate.Limit(rps), burst)

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// --- Public routes ---
		r.With(measure("/api/v1/submit"), limiter.Handler).Post("/submit", submissionHandler.CreateSubmission)

		if rc.AuthEnabled {
			r.With(measure("/api/v1/admin/login"), limiter.Handler).Post("/admin/login", authHandler.Login)
		}

		// --- Admin routes ---
		r.Group(func(r chi.Router) {
			if rc.AuthEnabled {
				logger.Info("Applying JWT authentication middleware to admin routes")
				r.Use(middleware.JWTAuthMiddleware(verifier))
			} else {
				logger.Warn("Admin authentication is disabled; admin routes are publicly accessible")
			}

			r.With(measure("/api/v1/submissions")).Get("/submissions", submissionHandler.ListSubmissions)
			r.With(measure("/api/v1/submissions/{id}")).Get("/submissions/{id}", submissionHandler.GetSubmission)
			r.With(measure("/api/v1/stats")).Get("/stats", submissionHandler.GetStats)
			r.With(measure("/api/v1/stats/timeline")).Get("/stats/timeline", submissionHandler.GetTimeline)
		})
	})

	// Health Check
	r.Get("/health", healthHandler(rc.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		appErr := model.NewAppError("NOT_FOUND", "指定されたリソースが見つかりません。", "", model.ErrNotFound)
		webutil.HandleError(w, middleware.GetLogger(r.Context()), appErr)
	})

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
				webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
				return
			}
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	}
}
