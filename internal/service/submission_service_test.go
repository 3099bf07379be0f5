package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/generation"
	"github.com/Kumkum15/Review-System/internal/model"
	repoMocks "github.com/Kumkum15/Review-System/internal/repository/mocks"
	"github.com/Kumkum15/Review-System/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
// トランザクションを張るためだけに使うので、マイグレーションは不要
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.App.DefaultPageSize = 20
	cfg.App.MaxPageSize = 50
	return cfg
}

var generated = generation.Result{
	UserResponse: "Thanks!",
	Summary:      "Great coffee",
	Actions:      "- a\n- b\n- c",
}

func TestSubmissionService_CreateSubmission(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tests := []struct {
		name         string
		req          *model.CreateSubmissionRequest
		alert        config.AlertConfig
		setupMock    func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer)
		wantErr      error
		wantCode     string
		wantResponse string
	}{
		{
			name: "正常系: 生成結果を保存して返す",
			req:  &model.CreateSubmissionRequest{Rating: 5, Review: "Great coffee."},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 5, "Great coffee.").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(s *model.Submission) bool {
					return s.Rating == 5 && s.GeneratedResponse == "Thanks!" && s.GeneratedSummary == "Great coffee" && s.GeneratedActions == "- a\n- b\n- c"
				})).Run(func(args mock.Arguments) {
					args.Get(2).(*model.Submission).ID = 1
				}).Return(nil).Once()
			},
			wantResponse: "Thanks!",
		},
		{
			name:  "正常系: 低評価は通知メールを送る",
			req:   &model.CreateSubmissionRequest{Rating: 1, Review: "Cold."},
			alert: config.AlertConfig{Enabled: true, RatingThreshold: 2, To: "owner@example.com"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 1, "Cold.").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Submission")).Return(nil).Once()
				m.On("Send", ctx, "owner@example.com", "[review-system] Low rating received (1/5)", mock.AnythingOfType("string")).
					Return(nil).Once()
			},
			wantResponse: "Thanks!",
		},
		{
			name:  "正常系: 通知メールの送信失敗はエラーにしない",
			req:   &model.CreateSubmissionRequest{Rating: 2, Review: ""},
			alert: config.AlertConfig{Enabled: true, RatingThreshold: 2, To: "owner@example.com"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 2, "").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Submission")).Return(nil).Once()
				m.On("Send", ctx, "owner@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
					Return(errors.New("ses unavailable")).Once()
			},
			wantResponse: "Thanks!",
		},
		{
			name:  "正常系: 閾値より高い評価は通知しない",
			req:   &model.CreateSubmissionRequest{Rating: 3, Review: "OK."},
			alert: config.AlertConfig{Enabled: true, RatingThreshold: 2, To: "owner@example.com"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 3, "OK.").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Submission")).Return(nil).Once()
			},
			wantResponse: "Thanks!",
		},
		{
			name:      "異常系: 評価が範囲外",
			req:       &model.CreateSubmissionRequest{Rating: 6, Review: "?"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {},
			wantErr:   model.ErrInvalidInput,
			wantCode:  "VALIDATION_ERROR",
		},
		{
			name: "異常系: CHECK制約違反",
			req:  &model.CreateSubmissionRequest{Rating: 5, Review: "x"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 5, "x").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Submission")).
					Return(model.ErrInvalidInput).Once()
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: "VALIDATION_ERROR",
		},
		{
			name: "異常系: DBエラー",
			req:  &model.CreateSubmissionRequest{Rating: 4, Review: "x"},
			setupMock: func(r *repoMocks.SubmissionRepository, g *mocks.ResponseGenerator, m *mocks.Mailer) {
				g.On("Generate", ctx, 4, "x").Return(generated).Once()
				r.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Submission")).
					Return(errors.New("disk full")).Once()
			},
			wantCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.SubmissionRepository)
			gen := new(mocks.ResponseGenerator)
			mailer := new(mocks.Mailer)
			tt.setupMock(repo, gen, mailer)

			cfg := testConfig()
			cfg.Alert = tt.alert
			svc := NewSubmissionService(db, repo, gen, mailer, cfg)

			got, err := svc.CreateSubmission(ctx, tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.req.Rating, got.Rating)
				assert.Equal(t, tt.req.Review, got.Review)
				assert.Equal(t, tt.wantResponse, got.GeneratedResponse)
			}

			repo.AssertExpectations(t)
			gen.AssertExpectations(t)
			mailer.AssertExpectations(t)
		})
	}
}

func TestSubmissionService_ListSubmissions(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	rating := 4
	badRating := 0

	tests := []struct {
		name      string
		query     model.SubmissionListQuery
		setupMock func(r *repoMocks.SubmissionRepository)
		wantLen   int
		wantErr   error
	}{
		{
			name:  "正常系: limit 未指定はデフォルト値",
			query: model.SubmissionListQuery{},
			setupMock: func(r *repoMocks.SubmissionRepository) {
				r.On("List", ctx, db, model.SubmissionListQuery{Limit: 20}).
					Return([]*model.Submission{{ID: 2}, {ID: 1}}, nil).Once()
			},
			wantLen: 2,
		},
		{
			name:  "正常系: limit は上限で切り詰める",
			query: model.SubmissionListQuery{Rating: &rating, Limit: 500, Offset: 10},
			setupMock: func(r *repoMocks.SubmissionRepository) {
				r.On("List", ctx, db, model.SubmissionListQuery{Rating: &rating, Limit: 50, Offset: 10}).
					Return(nil, nil).Once()
			},
			wantLen: 0,
		},
		{
			name:      "異常系: 評価の絞り込みが範囲外",
			query:     model.SubmissionListQuery{Rating: &badRating},
			setupMock: func(r *repoMocks.SubmissionRepository) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name:  "異常系: DBエラー",
			query: model.SubmissionListQuery{Limit: 5},
			setupMock: func(r *repoMocks.SubmissionRepository) {
				r.On("List", ctx, db, model.SubmissionListQuery{Limit: 5}).
					Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.SubmissionRepository)
			tt.setupMock(repo)
			svc := NewSubmissionService(db, repo, nil, nil, testConfig())

			got, err := svc.ListSubmissions(ctx, tt.query)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, model.ErrInvalidInput) {
					assert.ErrorIs(t, err, model.ErrInvalidInput)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Len(t, got, tt.wantLen)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSubmissionService_GetSubmission(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	t.Run("正常系", func(t *testing.T) {
		repo := new(repoMocks.SubmissionRepository)
		want := &model.Submission{ID: 7, Rating: 3, CreatedAt: time.Now()}
		repo.On("FindByID", ctx, db, uint(7)).Return(want, nil).Once()

		got, err := NewSubmissionService(db, repo, nil, nil, testConfig()).GetSubmission(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("異常系: 見つからない", func(t *testing.T) {
		repo := new(repoMocks.SubmissionRepository)
		repo.On("FindByID", ctx, db, uint(99)).Return(nil, model.ErrNotFound).Once()

		got, err := NewSubmissionService(db, repo, nil, nil, testConfig()).GetSubmission(ctx, 99)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, model.ErrNotFound)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "SUBMISSION_NOT_FOUND", appErr.Detail.Code)
		repo.AssertExpectations(t)
	})
}

func TestSubmissionService_GetStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tests := []struct {
		name    string
		ratings []int
		repoErr error
		want    *model.StatsResponse
	}{
		{
			name:    "正常系: 0件",
			ratings: []int{},
			want: &model.StatsResponse{
				Distribution: model.Distribution{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
			},
		},
		{
			name:    "正常系: 複数件",
			ratings: []int{5, 4, 4, 1},
			want: &model.StatsResponse{
				Total:         4,
				AverageRating: 3.5,
				MedianRating:  4,
				Distribution:  model.Distribution{"1": 1, "2": 0, "3": 0, "4": 2, "5": 1},
			},
		},
		{
			name:    "正常系: 範囲外の評価は除外",
			ratings: []int{5, 0, 3, 9},
			want: &model.StatsResponse{
				Total:         2,
				AverageRating: 4,
				MedianRating:  4,
				Distribution:  model.Distribution{"1": 0, "2": 0, "3": 1, "4": 0, "5": 1},
			},
		},
		{
			name:    "異常系: DBエラー",
			repoErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repoMocks.SubmissionRepository)
			repo.On("Ratings", ctx, db).Return(tt.ratings, tt.repoErr).Once()

			got, err := NewSubmissionService(db, repo, nil, nil, testConfig()).GetStats(ctx)

			if tt.repoErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want.Total, got.Total)
				assert.InDelta(t, tt.want.AverageRating, got.AverageRating, 1e-9)
				assert.InDelta(t, tt.want.MedianRating, got.MedianRating, 1e-9)
				assert.Equal(t, tt.want.Distribution, got.Distribution)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSubmissionService_GetTimeline(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	repo := new(repoMocks.SubmissionRepository)
	repo.On("CountByDay", ctx, db).Return(nil, nil).Once()

	got, err := NewSubmissionService(db, repo, nil, nil, testConfig()).GetTimeline(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}
