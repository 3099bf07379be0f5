package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Kumkum15/Review-System/internal/middleware"
	"github.com/Kumkum15/Review-System/internal/webutil"
)

// GetStats は件数・平均・中央値・評価ごとの件数を返します
func (h *SubmissionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetStats"))

	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		logger.Error("Error getting stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Debug("Stats computed", slog.Int64("total", stats.Total))
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// GetTimeline は日別 (UTC) の投稿件数を古い順に返します
func (h *SubmissionHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetTimeline"))

	points, err := h.service.GetTimeline(r.Context())
	if err != nil {
		logger.Error("Error getting timeline in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, points, logger)
}
