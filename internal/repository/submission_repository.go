//go:generate mockery --name SubmissionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// PostgreSQL の check_violation
const pgCheckViolation = "23514"

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *model.Submission) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Submission, error)
	List(ctx context.Context, db *gorm.DB, query model.SubmissionListQuery) ([]*model.Submission, error)
	Ratings(ctx context.Context, db *gorm.DB) ([]int, error)
	CountByDay(ctx context.Context, db *gorm.DB) ([]model.TimelinePoint, error)
}

type gormSubmissionRepository struct{}

func NewGormSubmissionRepository() SubmissionRepository {
	return &gormSubmissionRepository{}
}

func (r *gormSubmissionRepository) Create(ctx context.Context, tx *gorm.DB, submission *model.Submission) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(submission)
	if result.Error != nil {
		if isCheckViolation(result.Error) {
			logger.Warn("Check constraint violation on create submission",
				"error", result.Error,
				"rating", submission.Rating,
			)
			return fmt.Errorf("gormSubmissionRepository.Create: %w", model.ErrInvalidInput)
		}
		logger.Error("Error creating submission in DB",
			"error", result.Error,
			"rating", submission.Rating,
		)
		return fmt.Errorf("gormSubmissionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSubmissionRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submission model.Submission
	result := db.WithContext(ctx).Where("id = ?", id).First(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding submission by ID in DB",
			"error", result.Error,
			"submission_id", id,
		)
		return nil, fmt.Errorf("gormSubmissionRepository.FindByID: %w", result.Error)
	}
	return &submission, nil
}

// List は新しい順に返す。created_at が同じ場合は id の降順。
func (r *gormSubmissionRepository) List(ctx context.Context, db *gorm.DB, query model.SubmissionListQuery) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submissions []*model.Submission

	q := db.WithContext(ctx).Model(&model.Submission{})
	if query.Rating != nil {
		q = q.Where("rating = ?", *query.Rating)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}

	result := q.Order("created_at DESC").Order("id DESC").Find(&submissions)
	if result.Error != nil {
		logger.Error("Error listing submissions in DB", "error", result.Error)
		return nil, fmt.Errorf("gormSubmissionRepository.List: %w", result.Error)
	}
	return submissions, nil
}

// Ratings は集計用に rating 列だけを取り出す
func (r *gormSubmissionRepository) Ratings(ctx context.Context, db *gorm.DB) ([]int, error) {
	logger := middleware.GetLogger(ctx)
	var ratings []int
	result := db.WithContext(ctx).Model(&model.Submission{}).Pluck("rating", &ratings)
	if result.Error != nil {
		logger.Error("Error plucking ratings in DB", "error", result.Error)
		return nil, fmt.Errorf("gormSubmissionRepository.Ratings: %w", result.Error)
	}
	return ratings, nil
}

// CountByDay はUTC日付ごとの件数を古い順で返す。
// 日付関数は PostgreSQL と SQLite で挙動が異なるため、Go 側で集計する。
func (r *gormSubmissionRepository) CountByDay(ctx context.Context, db *gorm.DB) ([]model.TimelinePoint, error) {
	logger := middleware.GetLogger(ctx)
	var createdAts []time.Time
	result := db.WithContext(ctx).Model(&model.Submission{}).Pluck("created_at", &createdAts)
	if result.Error != nil {
		logger.Error("Error plucking created_at in DB", "error", result.Error)
		return nil, fmt.Errorf("gormSubmissionRepository.CountByDay: %w", result.Error)
	}

	counts := make(map[string]int64)
	for _, t := range createdAts {
		counts[t.UTC().Format(time.DateOnly)]++
	}
	points := make([]model.TimelinePoint, 0, len(counts))
	for date, count := range counts {
		points = append(points, model.TimelinePoint{Date: date, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck
	}
	return false
}
