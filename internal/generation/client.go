// Package generation は外部のテキスト生成APIを呼び出し、失敗時には
// 決定的なフォールバック文言に置き換える処理をまとめたものです。
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kumkum15/Review-System/internal/config"
)

var (
	ErrEmptyOutput     = errors.New("generation returned empty text")
	ErrUnexpectedShape = errors.New("generation response has an unexpected shape")
)

// StatusError は2xx以外のレスポンス
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("generation endpoint returned status %d", e.StatusCode)
}

// Client はプロンプトから1つのテキストを生成します。
// ネットワークエラー・非2xx・想定外のレスポンス形式はすべて error で返します。
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewClient は設定に応じたクライアントを返します。provider が "none" の場合は nil を返し、
// Generator は常にフォールバック文言を使います。
func NewClient(cfg config.GenerationConfig, logger *slog.Logger) (Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case config.ProviderHuggingFace:
		logger.Info("Initializing Hugging Face generation client...", slog.String("url", cfg.URL), slog.Duration("timeout", cfg.Timeout))
		return NewHuggingFaceClient(cfg.URL, cfg.APIToken, cfg.Timeout), nil
	case config.ProviderOpenAI:
		logger.Info("Initializing OpenAI generation client...", slog.String("model", cfg.Model), slog.Duration("timeout", cfg.Timeout))
		return NewOpenAIClient(cfg.URL, cfg.APIToken, cfg.Model, cfg.Timeout), nil
	case config.ProviderNone:
		logger.Info("Generation provider disabled, fallback text will always be used")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
}
