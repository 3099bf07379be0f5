package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/webutil"

	"golang.org/x/time/rate"
)

// 最後のアクセスからこの時間が経ったIPのリミッタは破棄する。掃除もこの間隔で1回だけ行う。
const limiterIdleTTL = 10 * time.Minute

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter はIPアドレスごとのトークンバケットを管理します。
// 投稿1件につき外部生成APIを3回呼ぶため、公開POSTエンドポイントに適用します。
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	rate      rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     r,
		burst:    burst,
		now:      time.Now,
	}
}

func (i *IPRateLimiter) allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	l, ok := i.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.limiters[ip] = l
	}
	l.lastSeen = now
	if now.Sub(i.lastSweep) >= limiterIdleTTL {
		i.evictLocked(now)
		i.lastSweep = now
	}
	return l.limiter.AllowN(now, 1)
}

// evictLocked は一定時間アクセスのないIPを削除する。mu を保持して呼ぶこと。
func (i *IPRateLimiter) evictLocked(now time.Time) {
	for ip, l := range i.limiters {
		if now.Sub(l.lastSeen) > limiterIdleTTL {
			delete(i.limiters, ip)
		}
	}
}

// Handler はIP単位でレート制限するミドルウェアを返します。
// キーは r.RemoteAddr。chi の RealIP を前に置くと X-Forwarded-For の値がキーになるので、
// そのヘッダーを上書きする信頼できるプロキシの後ろでだけ RealIP を有効にすること。
func (i *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !i.allow(ip) {
			logger := GetLogger(r.Context())
			logger.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			appErr := model.NewAppError("RATE_LIMITED", "リクエストが多すぎます。しばらくしてから再度お試しください。", "", model.ErrTooManyRequests)
			webutil.HandleError(w, logger, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
