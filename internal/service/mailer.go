//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"log/slog"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/middleware"
)

const (
	MailerTypeLog = "log"
	MailerTypeSES = "ses"
)

// Mailer は通知メールの送信を抽象化します
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---

// LogMailer は送信せずにログへ出力するだけの実装 (開発用)
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Mailer, error) {
	switch cfg.Mailer.Type {
	case MailerTypeSES:
		logger.Info("Initializing SES mailer...", "region", cfg.SES.Region)
		m, err := NewSESMailer(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return m, nil
	case MailerTypeLog, "":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
