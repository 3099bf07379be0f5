package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/handlers"
	"github.com/Kumkum15/Review-System/internal/model"
	svcMocks "github.com/Kumkum15/Review-System/internal/service/mocks"

	"github.com/stretchr/testify/require"
)

// --- ヘルパー: テスト用ルーターのセットアップ ---
type testServer struct {
	router      http.Handler
	submissions *svcMocks.SubmissionService
	auth        *svcMocks.AuthService
}

func newTestServer(t *testing.T, authEnabled bool) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.App.MaxReviewLength = 20
	cfg.App.MaxPageSize = 50

	submissionService := new(svcMocks.SubmissionService)
	authService := new(svcMocks.AuthService)

	router := handlers.NewRouter(
		handlers.RouterConfig{
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
			CORS:        cfg.CORS,
			AuthEnabled: authEnabled,
			RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		},
		handlers.NewSubmissionHandler(submissionService, cfg.App),
		handlers.NewAuthHandler(authService),
		authService,
	)

	t.Cleanup(func() {
		submissionService.AssertExpectations(t)
		authService.AssertExpectations(t)
	})
	return &testServer{router: router, submissions: submissionService, auth: authService}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		if bodyStr, ok := body.(string); ok {
			reqBody = strings.NewReader(bodyStr)
		} else {
			jsonData, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(jsonData)
		}
	}
	req := httptest.NewRequest(method, target, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}
