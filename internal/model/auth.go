package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminSubject は管理者トークンの sub クレーム
const AdminSubject = "admin"

// LoginRequest は管理者ログインAPIのリクエストボディ
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // 秒
}

// AdminClaims はJWTに含めるクレーム
type AdminClaims struct {
	jwt.RegisteredClaims // 標準クレーム (iss, sub, exp, jti など) を埋め込む
}
