package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/model"
	"github.com/Kumkum15/Review-System/internal/service"
	"github.com/Kumkum15/Review-System/internal/webutil"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login は管理者パスワードを検証し、アクセストークンを返します
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed for login", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		logger.Warn("Login failed", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Login successful")
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
