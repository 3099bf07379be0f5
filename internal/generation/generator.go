package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Kumkum15/Review-System/internal/metrics"
	"github.com/Kumkum15/Review-System/internal/middleware"

	"golang.org/x/sync/errgroup"
)

// 生成するテキストの種類。メトリクスとログのラベルにも使う
const (
	KindUserResponse = "user_response"
	KindSummary      = "summary"
	KindActions      = "actions"
)

// Result は1件のレビューに対する生成結果。各フィールドは必ず空でない
type Result struct {
	UserResponse string
	Summary      string
	Actions      string
}

// Generator は Client を呼び出し、失敗した場合はフォールバック文言を返します。
// client が nil の場合は常にフォールバックします。
type Generator struct {
	client Client
}

func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// UserResponse は投稿者向けの返信を生成します
func (g *Generator) UserResponse(ctx context.Context, rating int, review string) string {
	return g.generate(ctx, KindUserResponse, userResponsePrompt(rating, review), func() string {
		return FallbackUserResponse(rating)
	})
}

// Summary はレビューの要約を生成します
func (g *Generator) Summary(ctx context.Context, review string) string {
	return g.generate(ctx, KindSummary, summaryPrompt(review), func() string {
		return FallbackSummary(review)
	})
}

// Actions は社内向けのアクション項目を生成します
func (g *Generator) Actions(ctx context.Context, rating int, review string) string {
	return g.generate(ctx, KindActions, actionsPrompt(rating, review), func() string {
		return FallbackActions(rating)
	}, normalizeActions)
}

// Generate は3種類のテキストを並行して生成します。失敗はフォールバックに置き換わるので
// エラーは返しません。
func (g *Generator) Generate(ctx context.Context, rating int, review string) Result {
	var res Result
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res.UserResponse = g.UserResponse(egCtx, rating, review)
		return nil
	})
	eg.Go(func() error {
		res.Summary = g.Summary(egCtx, review)
		return nil
	})
	eg.Go(func() error {
		res.Actions = g.Actions(egCtx, rating, review)
		return nil
	})
	_ = eg.Wait()
	return res
}

func (g *Generator) generate(ctx context.Context, kind, prompt string, fallback func() string, post ...func(string) string) string {
	logger := middleware.GetLogger(ctx).With(slog.String("generation_kind", kind))

	if g.client == nil {
		metrics.GenerationFallbacks.WithLabelValues(kind).Inc()
		return fallback()
	}

	start := time.Now()
	text, err := g.client.Generate(ctx, prompt)
	metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err == nil {
		for _, fn := range post {
			text = fn(text)
		}
		if strings.TrimSpace(text) == "" {
			err = ErrEmptyOutput
		}
	}

	if err != nil {
		metrics.GenerationRequests.WithLabelValues(kind, outcomeOf(err)).Inc()
		metrics.GenerationFallbacks.WithLabelValues(kind).Inc()
		logger.WarnContext(ctx, "Generation failed, using fallback text",
			slog.String("outcome", outcomeOf(err)),
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)),
		)
		return fallback()
	}

	metrics.GenerationRequests.WithLabelValues(kind, "success").Inc()
	logger.DebugContext(ctx, "Generation succeeded", slog.Duration("elapsed", time.Since(start)))
	return text
}

// outcomeOf はエラーをメトリクス用のラベルに分類します
func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return "timeout"
	case errors.As(err, &statusErr):
		return "bad_status"
	case errors.Is(err, ErrUnexpectedShape):
		return "bad_shape"
	case errors.Is(err, ErrEmptyOutput):
		return "empty"
	default:
		return "error"
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// normalizeActions はモデル出力を "- item" 形式の行だけに揃えます。
// 箇条書きでない行しかない場合は空文字を返し、フォールバックさせます。
func normalizeActions(text string) string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, marker) {
				items = append(items, strings.TrimSpace(strings.TrimPrefix(line, marker)))
				break
			}
		}
		if n := numberedPrefixLen(line); n > 0 {
			items = append(items, strings.TrimSpace(line[n:]))
		}
	}
	if len(items) == 0 {
		return ""
	}
	return FormatActions(items)
}

// numberedPrefixLen は "1. " や "2) " の長さを返します。該当しなければ 0
func numberedPrefixLen(line string) int {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(line) {
		return 0
	}
	if (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return i + 2
	}
	return 0
}
