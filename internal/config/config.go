// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
	// リバースプロキシ (Render など) が X-Forwarded-For を上書きする環境でのみ true にする
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

type DatabaseConfig struct {
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Name            string `mapstructure:"name"`
	MaxReviewLength int    `mapstructure:"max_review_length"`
	DefaultPageSize int    `mapstructure:"default_page_size"`
	MaxPageSize     int    `mapstructure:"max_page_size"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// GenerationConfig は外部テキスト生成APIの設定
type GenerationConfig struct {
	Provider string        `mapstructure:"provider"` // "huggingface" | "openai" | "none"
	URL      string        `mapstructure:"url"`
	APIToken string        `mapstructure:"api_token"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"` // bcrypt
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// AlertConfig は低評価レビュー通知の設定
type AlertConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	RatingThreshold int    `mapstructure:"rating_threshold"`
	To              string `mapstructure:"to"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log" | "ses"
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" | "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	App        AppConfig        `mapstructure:"app"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Generation GenerationConfig `mapstructure:"generation"`
	Auth       AuthConfig       `mapstructure:"auth"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Alert      AlertConfig      `mapstructure:"alert"`
	Mailer     MailerConfig     `mapstructure:"mailer"`
	SES        SESConfig        `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_GENERATION_PROVIDER のように接頭辞 + "_" 区切りで上書きできる
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// ホスティング環境でよく使われる環境変数名を紐付け
	v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("generation.api_token", "APP_GENERATION_API_TOKEN", "HF_API_TOKEN", "OPENAI_API_KEY")
	v.BindEnv("auth.enabled", "APP_AUTH_ENABLED", "AUTH_ENABLED")
	v.BindEnv("auth.admin_password_hash", "APP_AUTH_ADMIN_PASSWORD_HASH", "ADMIN_PASSWORD_HASH")
	v.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY", "JWT_SECRET")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// PORT (Render/Heroku 形式) は番号だけが来るので、設定ファイルより優先する
	if port := v.GetString("port"); port != "" {
		cfg.Server.Port = ":" + strings.TrimPrefix(port, ":")
	}

	applyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Generation Provider: %s", Cfg.Generation.Provider)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("server.trust_proxy_headers", false)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"*"})
	v.BindEnv("port", "PORT")
}

// applyDefaults はゼロ値の項目にデフォルト値を設定します。
// 設定ファイルを使わないテストからも呼ばれます。
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Database.URL == "" {
		log.Printf("Database URL not set, using default '%s'", DefaultDatabaseURL)
		cfg.Database.URL = DefaultDatabaseURL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.MaxReviewLength <= 0 {
		cfg.App.MaxReviewLength = DefaultMaxReviewLength
	}
	if cfg.App.MaxPageSize <= 0 {
		cfg.App.MaxPageSize = DefaultMaxPageSize
	}
	if cfg.App.DefaultPageSize <= 0 || cfg.App.DefaultPageSize > cfg.App.MaxPageSize {
		cfg.App.DefaultPageSize = cfg.App.MaxPageSize
	}
	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = DefaultGenerationProvider
	}
	cfg.Generation.Provider = strings.ToLower(cfg.Generation.Provider)
	if cfg.Generation.URL == "" && cfg.Generation.Provider == ProviderHuggingFace {
		cfg.Generation.URL = DefaultHuggingFaceURL
	}
	if cfg.Generation.Model == "" && cfg.Generation.Provider == ProviderOpenAI {
		cfg.Generation.Model = DefaultOpenAIModel
	}
	if cfg.Generation.Timeout <= 0 {
		cfg.Generation.Timeout = DefaultGenerationTimeout
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}
	if cfg.Alert.RatingThreshold <= 0 {
		cfg.Alert.RatingThreshold = DefaultAlertRatingThreshold
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = "log"
	}
	if cfg.Auth.Enabled && (cfg.Auth.AdminPasswordHash == "" || cfg.JWT.SecretKey == "") {
		log.Println("Warning: auth is enabled but admin_password_hash or jwt.secret_key is empty; admin login will always fail.")
	}
}

// Default はファイルや環境変数を読まずにデフォルト値だけで構成した Config を返します
func Default() *Config {
	cfg := &Config{
		Database: DatabaseConfig{AutoMigrate: true},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		},
	}
	applyDefaults(cfg)
	return cfg
}
