// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "review-system"
	AppVersion = "1.0.0"
)

// 生成プロバイダ
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderNone        = "none"
)

// デフォルト設定値
const (
	DefaultServerPort           = ":8000"
	DefaultDatabaseURL          = "sqlite://./submissions.db"
	DefaultLogLevel             = "info"
	DefaultMaxReviewLength      = 5000
	DefaultMaxPageSize          = 100
	DefaultGenerationProvider   = ProviderHuggingFace
	DefaultGenerationTimeout    = 25 * time.Second
	DefaultOpenAIModel          = "gpt-4o-mini"
	DefaultAccessTokenTTL       = 12 * time.Hour
	DefaultRateLimitRPS         = 1.0
	DefaultRateLimitBurst       = 5
	DefaultAlertRatingThreshold = 2
	DefaultAuthEnabled          = false
)

const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.3"
