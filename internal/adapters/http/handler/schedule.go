package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/core/export"
	"github.com/ogurasousui/shift-scheduler/internal/core/schedule"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
	"github.com/ogurasousui/shift-scheduler/internal/platform/metrics"
)

// ScheduleHandler は自動スケジュールとエクスポートの HTTP 実装です。
type ScheduleHandler struct {
	scheduler schedule.UseCase
	exporter  export.UseCase
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewScheduleHandler は ScheduleHandler を生成します。
func NewScheduleHandler(scheduler schedule.UseCase, exporter export.UseCase, m *metrics.Metrics, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, exporter: exporter, metrics: m, logger: logger}
}

// AutoSchedule は期間内のシフトをラウンドロビンで生成し直します。
func (h *ScheduleHandler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	var req autoScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.scheduler.AutoSchedule(r.Context(), schedule.AutoScheduleInput{
		StartDate:  start,
		EndDate:    end,
		ShiftTypes: req.ShiftTypes,
	})
	if err != nil {
		h.metrics.ObserveAutoSchedule(0, err)
		writeError(w, r, h.logger, err)
		return
	}
	h.metrics.ObserveAutoSchedule(result.Created, nil)

	logging.FromContext(r.Context(), h.logger).Info("auto schedule completed",
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("created", result.Created),
		zap.Int64("replaced", result.Replaced),
	)

	writeJSON(w, http.StatusCreated, messageResponse{Message: result.Message()})
}

// Export は全シフトを xlsx ファイルとして返します。
func (h *ScheduleHandler) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.exporter.Export(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		logging.FromContext(r.Context(), h.logger).Warn("failed to stream export file", zap.Error(err))
	}
}
