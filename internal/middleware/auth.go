package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/webutil"
)

// TokenVerifier はBearerトークンを検証し、クレームを返します
type TokenVerifier interface {
	VerifyToken(ctx context.Context, tokenString string) (*model.AdminClaims, error)
}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証するミドルウェア
func JWTAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			// 1. Authorization ヘッダーからトークンを取得
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Fields(authHeader)
			if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 2. 署名・アルゴリズム・有効期限の検証はサービス側で行う
			claims, err := verifier.VerifyToken(r.Context(), headerParts[1])
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, err)
				return
			}

			// 以降の管理者APIのログはトークンID付きになる
			logger = logger.With("admin_token_id", claims.ID)
			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), logger)))
		})
	}
}
