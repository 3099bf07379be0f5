package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Kumkum15/Review-System/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmissionHandler_CreateSubmission(t *testing.T) {
	created := &model.Submission{
		ID:                1,
		Rating:            4,
		Review:            "Nice place.",
		GeneratedResponse: "Thanks!",
		GeneratedSummary:  "Nice place",
		GeneratedActions:  "- a\n- b\n- c",
		CreatedAt:         time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		body          interface{}
		setupMock     func(s *testServer)
		wantStatus    int
		wantCode      string
		wantField     string
		checkResponse func(t *testing.T, body []byte)
	}{
		{
			name: "正常系: 保存したレコードを返す",
			body: map[string]interface{}{"rating": 4, "review": "Nice place."},
			setupMock: func(s *testServer) {
				s.submissions.On("CreateSubmission", mock.Anything, &model.CreateSubmissionRequest{Rating: 4, Review: "Nice place."}).
					Return(created, nil).Once()
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var got map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &got))
				assert.EqualValues(t, 1, got["id"])
				assert.EqualValues(t, 4, got["rating"])
				assert.Equal(t, "Thanks!", got["user_response"])
				assert.Equal(t, "Nice place", got["summary"])
				assert.Equal(t, "- a\n- b\n- c", got["actions"])
				assert.Equal(t, "2026-10-01T09:00:00Z", got["created_at"])
			},
		},
		{
			name: "正常系: レビューは空でもよい",
			body: map[string]interface{}{"rating": 5, "review": ""},
			setupMock: func(s *testServer) {
				s.submissions.On("CreateSubmission", mock.Anything, &model.CreateSubmissionRequest{Rating: 5}).
					Return(&model.Submission{ID: 2, Rating: 5}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "異常系: review キーがない",
			body:       `{"rating":2}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "review",
		},
		{
			name:       "異常系: review が null",
			body:       `{"rating":2,"review":null}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "review",
		},
		{
			name:       "異常系: 評価が0",
			body:       map[string]interface{}{"rating": 0, "review": "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "rating",
		},
		{
			name:       "異常系: 評価が6",
			body:       map[string]interface{}{"rating": 6, "review": "x"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "rating",
		},
		{
			name:       "異常系: 評価が文字列",
			body:       `{"rating":"5","review":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "rating",
		},
		{
			name:       "異常系: 評価が小数",
			body:       `{"rating":3.5,"review":""}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "rating",
		},
		{
			name:       "異常系: レビューが長すぎる",
			body:       map[string]interface{}{"rating": 3, "review": strings.Repeat("あ", 21)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "review",
		},
		{
			name:       "異常系: 不正なJSON",
			body:       `{"rating":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "異常系: 未知のフィールド",
			body:       `{"rating":3,"stars":3}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: サービスエラー",
			body: map[string]interface{}{"rating": 2, "review": "bad"},
			setupMock: func(s *testServer) {
				s.submissions.On("CreateSubmission", mock.Anything, mock.AnythingOfType("*model.CreateSubmissionRequest")).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レビューの保存に失敗しました。", "", errors.New("db down"))).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			rr := s.do(t, http.MethodPost, "/api/v1/submit", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.wantCode != "" {
				detail := decodeError(t, rr)
				assert.Equal(t, tt.wantCode, detail.Code)
				assert.Equal(t, tt.wantField, detail.Field)
				assert.NotEmpty(t, detail.Message)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, rr.Body.Bytes())
			}
		})
	}
}

func TestSubmissionHandler_ListSubmissions(t *testing.T) {
	four := 4

	tests := []struct {
		name       string
		target     string
		setupMock  func(s *testServer)
		wantStatus int
		wantField  string
		wantLen    int
	}{
		{
			name:   "正常系: 条件なし",
			target: "/api/v1/submissions",
			setupMock: func(s *testServer) {
				s.submissions.On("ListSubmissions", mock.Anything, model.SubmissionListQuery{}).
					Return([]*model.Submission{{ID: 2}, {ID: 1}}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
		{
			name:   "正常系: 絞り込みとページング",
			target: "/api/v1/submissions?rating=4&limit=10&offset=20",
			setupMock: func(s *testServer) {
				s.submissions.On("ListSubmissions", mock.Anything, model.SubmissionListQuery{Rating: &four, Limit: 10, Offset: 20}).
					Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "異常系: rating が範囲外",
			target:     "/api/v1/submissions?rating=9",
			wantStatus: http.StatusBadRequest,
			wantField:  "rating",
		},
		{
			name:       "異常系: limit が上限超え",
			target:     "/api/v1/submissions?limit=51",
			wantStatus: http.StatusBadRequest,
			wantField:  "limit",
		},
		{
			name:       "異常系: offset が負",
			target:     "/api/v1/submissions?offset=-1",
			wantStatus: http.StatusBadRequest,
			wantField:  "offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			rr := s.do(t, http.MethodGet, tt.target, nil)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				detail := decodeError(t, rr)
				assert.Equal(t, "INVALID_QUERY_PARAM", detail.Code)
				assert.Equal(t, tt.wantField, detail.Field)
				return
			}
			var got []model.Submission
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Len(t, got, tt.wantLen)
			// 0件でも null ではなく [] を返す
			assert.True(t, strings.HasPrefix(rr.Body.String(), "["))
		})
	}
}

func TestSubmissionHandler_GetSubmission(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMock  func(s *testServer)
		wantStatus int
		wantCode   string
	}{
		{
			name: "正常系",
			id:   "7",
			setupMock: func(s *testServer) {
				s.submissions.On("GetSubmission", mock.Anything, uint(7)).
					Return(&model.Submission{ID: 7, Rating: 3}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "異常系: 見つからない",
			id:   "99",
			setupMock: func(s *testServer) {
				s.submissions.On("GetSubmission", mock.Anything, uint(99)).
					Return(nil, model.NewAppError("SUBMISSION_NOT_FOUND", "指定されたレビューが見つかりません。", "id", model.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "SUBMISSION_NOT_FOUND",
		},
		{
			name:       "異常系: 数字ではない",
			id:         "abc",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_URL_PARAM",
		},
		{
			name:       "異常系: 0",
			id:         "0",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_URL_PARAM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			rr := s.do(t, http.MethodGet, "/api/v1/submissions/"+tt.id, nil)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rr).Code)
			}
		})
	}
}

func TestSubmissionHandler_GetStats(t *testing.T) {
	s := newTestServer(t, false)
	s.submissions.On("GetStats", mock.Anything).Return(&model.StatsResponse{
		Total:         3,
		AverageRating: 4,
		MedianRating:  4,
		Distribution:  model.Distribution{"1": 0, "2": 0, "3": 1, "4": 1, "5": 1},
	}, nil).Once()

	rr := s.do(t, http.MethodGet, "/api/v1/stats", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"total":3,"average_rating":4,"median_rating":4,"distribution":{"1":0,"2":0,"3":1,"4":1,"5":1}}`,
		rr.Body.String())
}

func TestSubmissionHandler_GetTimeline(t *testing.T) {
	s := newTestServer(t, false)
	s.submissions.On("GetTimeline", mock.Anything).Return([]model.TimelinePoint{
		{Date: "2026-10-01", Count: 2},
		{Date: "2026-10-03", Count: 1},
	}, nil).Once()

	rr := s.do(t, http.MethodGet, "/api/v1/stats/timeline", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"date":"2026-10-01","count":2},{"date":"2026-10-03","count":1}]`, rr.Body.String())
}
