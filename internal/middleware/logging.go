package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
}

// sensitiveBodyFields はデバッグ出力するJSONボディ内でマスキングするキー
var sensitiveBodyFields = map[string]bool{
	"password":     true,
	"access_token": true,
}

// maxLoggedBodyBytes を超えるボディはデバッグログに出さない
const maxLoggedBodyBytes = 4096

// responseLogger は http.ResponseWriter をラップし、ステータスコードとレスポンスボディを記録します。
type responseLogger struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
	body       *bytes.Buffer
}

func newResponseLogger(w http.ResponseWriter, captureBody bool) *responseLogger {
	rl := &responseLogger{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
	if captureBody {
		rl.body = new(bytes.Buffer)
	}
	return rl
}

func (rl *responseLogger) WriteHeader(statusCode int) {
	rl.statusCode = statusCode
	rl.ResponseWriter.WriteHeader(statusCode)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	n, err := rl.ResponseWriter.Write(b)
	rl.bytesOut += n
	if rl.body != nil && rl.body.Len() < maxLoggedBodyBytes {
		rl.body.Write(b[:n])
	}
	return n, err
}

// Flush は、ラップされたResponseWriterがhttp.Flusherを実装している場合にFlushを呼び出します。
func (rl *responseLogger) Flush() {
	if flusher, ok := rl.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// LoggingMiddleware はリクエスト/レスポンスのログ出力を一元管理するミドルウェアです。
// リクエストID付きのロガーをコンテキストに格納し、下位レイヤーは GetLogger で取り出します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
			ctx := context.WithValue(r.Context(), logCtxKey{}, requestLogger)
			r = r.WithContext(ctx)

			debug := logger.Enabled(ctx, slog.LevelDebug)

			// リクエストボディの先頭だけ読み取り、残りと繋げて再セットする (デバッグ時のみ)
			var reqBodyBytes []byte
			if debug && r.Body != nil {
				reqBodyBytes, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(reqBodyBytes), r.Body), r.Body}
			}

			rl := newResponseLogger(w, debug)
			next.ServeHTTP(rl, r)

			latency := time.Since(startTime)

			logLevel := slog.LevelInfo
			if rl.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if rl.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			requestLogger.LogAttrs(ctx, logLevel, "Request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", rl.statusCode),
				slog.Int("bytes_out", rl.bytesOut),
				slog.Float64("latency_ms", float64(latency.Nanoseconds())/1e6),
			)

			if debug {
				requestLogger.Debug("Request detail",
					slog.Any("headers", formatHeaders(r.Header)),
					slog.String("body", maskBody(reqBodyBytes)),
				)
				requestLogger.Debug("Response detail",
					slog.Int("status", rl.statusCode),
					slog.Any("headers", formatHeaders(rl.Header())),
					slog.String("body", maskBody(rl.body.Bytes())),
				)
			}
		})
	}
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はロガーをコンテキストに格納します (主にテストとバックグラウンド処理用)
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

// maskBody はJSONボディのトップレベルにあるセンシティブなキーを伏せた文字列を返します
func maskBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	// 途中で切れたボディはマスキングできないので中身を出さない
	if len(body) > maxLoggedBodyBytes {
		return "[body truncated]"
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		// JSONオブジェクトでなければそのまま
		return string(body)
	}
	for k := range obj {
		if sensitiveBodyFields[strings.ToLower(k)] {
			obj[k] = "[MASKED]"
		}
	}
	masked, err := json.Marshal(obj)
	if err != nil {
		return "[unloggable body]"
	}
	return string(masked)
}
