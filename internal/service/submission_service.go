//go:generate mockery --name SubmissionService --output ./mocks --outpkg mocks --case=underscore
//go:generate mockery --name ResponseGenerator --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/generation"
	"github.com/Kumkum15/Review-System/internal/metrics"
	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/repository"

	"github.com/montanaflynn/stats"
	"gorm.io/gorm"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *model.CreateSubmissionRequest) (*model.Submission, error)
	ListSubmissions(ctx context.Context, query model.SubmissionListQuery) ([]*model.Submission, error)
	GetSubmission(ctx context.Context, id uint) (*model.Submission, error)
	GetStats(ctx context.Context) (*model.StatsResponse, error)
	GetTimeline(ctx context.Context) ([]model.TimelinePoint, error)
}

// ResponseGenerator は生成テキスト3種を返します。失敗時もフォールバック文言で埋めて返す
type ResponseGenerator interface {
	Generate(ctx context.Context, rating int, review string) generation.Result
}

type submissionService struct {
	db        *gorm.DB
	repo      repository.SubmissionRepository
	generator ResponseGenerator
	mailer    Mailer
	cfg       *config.Config
}

func NewSubmissionService(db *gorm.DB, repo repository.SubmissionRepository, generator ResponseGenerator, mailer Mailer, cfg *config.Config) SubmissionService {
	return &submissionService{
		db:        db,
		repo:      repo,
		generator: generator,
		mailer:    mailer,
		cfg:       cfg,
	}
}

// CreateSubmission はテキストを生成してからレビューを保存します
func (s *submissionService) CreateSubmission(ctx context.Context, req *model.CreateSubmissionRequest) (*model.Submission, error) {
	logger := middleware.GetLogger(ctx).With(slog.Int("rating", req.Rating))

	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, model.NewAppError("VALIDATION_ERROR", "評価は1から5の整数で入力してください。", "rating", model.ErrInvalidInput)
	}

	generated := s.generator.Generate(ctx, req.Rating, req.Review)

	submission := &model.Submission{
		Rating:            req.Rating,
		Review:            req.Review,
		GeneratedResponse: generated.UserResponse,
		GeneratedSummary:  generated.Summary,
		GeneratedActions:  generated.Actions,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, submission)
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return nil, model.NewAppError("VALIDATION_ERROR", "評価は1から5の整数で入力してください。", "rating", err)
		}
		logger.Error("Failed to create submission", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビューの保存に失敗しました。", "", err)
	}

	metrics.SubmissionsCreated.WithLabelValues(strconv.Itoa(submission.Rating)).Inc()
	logger.Info("Submission created", slog.Uint64("submission_id", uint64(submission.ID)))

	s.sendLowRatingAlert(ctx, submission)
	return submission, nil
}

// sendLowRatingAlert は低評価レビューを通知します。送信失敗はログのみ
func (s *submissionService) sendLowRatingAlert(ctx context.Context, submission *model.Submission) {
	alert := s.cfg.Alert
	if !alert.Enabled || s.mailer == nil || alert.To == "" || submission.Rating > alert.RatingThreshold {
		return
	}
	logger := middleware.GetLogger(ctx)

	subject := fmt.Sprintf("[%s] Low rating received (%d/5)", s.cfg.App.Name, submission.Rating)
	body := fmt.Sprintf(
		"Submission #%d\nRating: %d/5\n\nReview:\n%s\n\nSummary:\n%s\n\nSuggested actions:\n%s\n",
		submission.ID, submission.Rating, submission.Review, submission.GeneratedSummary, submission.GeneratedActions,
	)
	if err := s.mailer.Send(ctx, alert.To, subject, body); err != nil {
		logger.Warn("Failed to send low rating alert", "error", err, "submission_id", submission.ID)
	}
}

func (s *submissionService) ListSubmissions(ctx context.Context, query model.SubmissionListQuery) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx)

	if query.Rating != nil && (*query.Rating < model.MinRating || *query.Rating > model.MaxRating) {
		return nil, model.NewAppError("INVALID_QUERY_PARAM", "評価は1から5の整数で指定してください。", "rating", model.ErrInvalidInput)
	}
	if query.Limit <= 0 {
		query.Limit = s.cfg.App.DefaultPageSize
	}
	if maxSize := s.cfg.App.MaxPageSize; maxSize > 0 && query.Limit > maxSize {
		query.Limit = maxSize
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	submissions, err := s.repo.List(ctx, s.db, query)
	if err != nil {
		logger.Error("Failed to list submissions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビュー一覧の取得に失敗しました。", "", err)
	}
	if submissions == nil {
		submissions = []*model.Submission{}
	}
	return submissions, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id uint) (*model.Submission, error) {
	logger := middleware.GetLogger(ctx).With(slog.Uint64("submission_id", uint64(id)))

	submission, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Submission not found")
			return nil, model.NewAppError("SUBMISSION_NOT_FOUND", "指定されたレビューが見つかりません。", "id", model.ErrNotFound)
		}
		logger.Error("Failed to get submission", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビューの取得に失敗しました。", "", err)
	}
	return submission, nil
}

// GetStats は件数・平均・中央値・評価ごとの件数を返します
func (s *submissionService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	logger := middleware.GetLogger(ctx)

	ratings, err := s.repo.Ratings(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load ratings", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計情報の取得に失敗しました。", "", err)
	}

	resp := &model.StatsResponse{Distribution: model.NewDistribution()}
	values := make(stats.Float64Data, 0, len(ratings))
	skipped := 0
	for _, r := range ratings {
		if r < model.MinRating || r > model.MaxRating {
			skipped++
			continue
		}
		resp.Distribution[strconv.Itoa(r)]++
		values = append(values, float64(r))
	}
	if skipped > 0 {
		logger.Warn("Skipped submissions with out-of-range rating", "count", skipped)
	}

	resp.Total = int64(len(values))
	if resp.Total == 0 {
		return resp, nil
	}

	if resp.AverageRating, err = values.Mean(); err != nil {
		logger.Error("Failed to compute mean rating", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計情報の計算に失敗しました。", "", err)
	}
	if resp.MedianRating, err = values.Median(); err != nil {
		logger.Error("Failed to compute median rating", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計情報の計算に失敗しました。", "", err)
	}
	return resp, nil
}

func (s *submissionService) GetTimeline(ctx context.Context) ([]model.TimelinePoint, error) {
	logger := middleware.GetLogger(ctx)

	points, err := s.repo.CountByDay(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load timeline", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "日別の件数の取得に失敗しました。", "", err)
	}
	if points == nil {
		points = []model.TimelinePoint{}
	}
	return points, nil
}
