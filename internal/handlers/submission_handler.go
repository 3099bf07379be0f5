package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/Kumkum15/Review-System/internal/config"
	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/service"
	"github.com/Kumkum15/Review-System/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	service         service.SubmissionService
	maxReviewLength int
	maxPageSize     int
}

func NewSubmissionHandler(s service.SubmissionService, appCfg config.AppConfig) *SubmissionHandler {
	return &SubmissionHandler{
		service:         s,
		maxReviewLength: appCfg.MaxReviewLength,
		maxPageSize:     appCfg.MaxPageSize,
	}
}

// createSubmissionBody は review キーの有無を区別するためのデコード先
type createSubmissionBody struct {
	Rating int     `json:"rating"`
	Review *string `json:"review"`
}

// CreateSubmission は評価とレビューを受け取り、生成テキスト付きで保存したレコードを返します
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "CreateSubmission"))

	var body createSubmissionBody
	if err := webutil.DecodeJSONBody(r, &body); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		// "rating": "5" のような型違いはフィールド名付きで返す
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			appErr := model.NewAppError("VALIDATION_ERROR", typeErr.Field+"の形式が正しくありません。", typeErr.Field, model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	req := model.CreateSubmissionRequest{Rating: body.Rating}
	if body.Review != nil {
		req.Review = *body.Review
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err), slog.Int("rating", req.Rating))
		webutil.HandleError(w, logger, err)
		return
	}
	// 空文字は許可するが、キー自体の省略は不可
	if body.Review == nil {
		logger.Warn("Review field missing")
		appErr := model.NewAppError("VALIDATION_ERROR", "レビューは必須項目です。", "review", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if h.maxReviewLength > 0 && utf8.RuneCountInString(req.Review) > h.maxReviewLength {
		logger.Warn("Review too long", slog.Int("length", utf8.RuneCountInString(req.Review)))
		appErr := model.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("レビューは%d文字以下で入力してください。", h.maxReviewLength),
			"review",
			model.ErrInvalidInput,
		)
		webutil.HandleError(w, logger, appErr)
		return
	}

	submission, err := h.service.CreateSubmission(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating submission in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Submission created successfully", slog.Uint64("submission_id", uint64(submission.ID)))
	webutil.RespondWithJSON(w, http.StatusOK, submission, logger)
}

// ListSubmissions は保存済みのレビューを新しい順に返します
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ListSubmissions"))

	query, err := h.parseListQuery(r)
	if err != nil {
		logger.Warn("Invalid query parameter", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	submissions, err := h.service.ListSubmissions(r.Context(), query)
	if err != nil {
		logger.Error("Error listing submissions in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if submissions == nil {
		submissions = []*model.Submission{}
	}
	logger.Info("Submissions listed successfully", slog.Int("count", len(submissions)))
	webutil.RespondWithJSON(w, http.StatusOK, submissions, logger)
}

func (h *SubmissionHandler) parseListQuery(r *http.Request) (model.SubmissionListQuery, error) {
	var query model.SubmissionListQuery
	values := r.URL.Query()

	if raw := values.Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < model.MinRating || rating > model.MaxRating {
			return query, model.NewAppError("INVALID_QUERY_PARAM", "ratingは1から5の整数で指定してください。", "rating", model.ErrInvalidInput)
		}
		query.Rating = &rating
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || (h.maxPageSize > 0 && limit > h.maxPageSize) {
			return query, model.NewAppError("INVALID_QUERY_PARAM", fmt.Sprintf("limitは1から%dの整数で指定してください。", h.maxPageSize), "limit", model.ErrInvalidInput)
		}
		query.Limit = limit
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return query, model.NewAppError("INVALID_QUERY_PARAM", "offsetは0以上の整数で指定してください。", "offset", model.ErrInvalidInput)
		}
		query.Offset = offset
	}
	return query, nil
}

// GetSubmission はIDで1件取得します
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetSubmission"))

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		logger.Warn("Invalid submission ID format", slog.String("id", idStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "IDの形式が正しくありません。", "id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.Uint64("submission_id", id))

	submission, err := h.service.GetSubmission(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Submission not found")
		} else {
			logger.Error("Error getting submission in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, submission, logger)
}
