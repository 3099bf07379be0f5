//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService は管理者のログインとトークン検証を行います
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	VerifyToken(ctx context.Context, tokenString string) (*model.AdminClaims, error)
}

type authService struct {
	cfg *config.Config
	now func() time.Time
}

// NewAuthService は AuthService の新しいインスタンスを生成します
func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg, now: time.Now}
}

// Login は管理者パスワードを検証し、JWTを返します
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	if s.cfg.Auth.AdminPasswordHash == "" || s.cfg.JWT.SecretKey == "" {
		logger.Error("Login failed: admin password hash or JWT secret is not configured")
		return nil, model.NewAppError("AUTH_NOT_CONFIGURED", "管理者認証が設定されていません。", "", model.ErrInternalServer)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.AdminPasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Error("Login failed: invalid admin password hash", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部エラー", "", err)
		}
		logger.Warn("Login failed: password mismatch")
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "パスワードが正しくありません。", "password", model.ErrUnauthorized)
	}

	now := s.now()
	ttl := s.cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = config.DefaultAccessTokenTTL
	}
	claims := &model.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.App.Name,
			Subject:   model.AdminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの生成に失敗しました。", "", err)
	}

	logger.Info("Admin login successful", "token_id", claims.ID)
	return &model.LoginResponse{
		AccessToken: signedToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

// VerifyToken は署名・アルゴリズム・有効期限を検証します。
// 署名は正しいが sub が管理者でないトークンは ErrForbidden を返します。
func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.NewAppError("TOKEN_EXPIRED", "トークンの有効期限が切れています。", "", model.ErrUnauthorized)
		}
		return nil, model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", fmt.Errorf("%w: %v", model.ErrUnauthorized, err))
	}
	if claims.Subject != model.AdminSubject {
		return nil, model.NewAppError("FORBIDDEN", "管理者権限がありません。", "", model.ErrForbidden)
	}
	return claims, nil
}
