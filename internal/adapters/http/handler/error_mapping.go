package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/core/export"
	"github.com/ogurasousui/shift-scheduler/internal/core/schedule"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
)

const (
	codeInvalidRequest = "invalid_request"
	codeValidation     = "validation_error"
	codeNotFound       = "not_found"
	codeDuplicateShift = "duplicate_shift"
	codeNoActiveStaff  = "no_active_staff"
	codeNoData         = "no_data"
	codeExportFailed   = "export_failed"
	codeInternal       = "internal"
)

func toErrorResponse(err error) (int, errorResponse) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, errorResponse{Detail: reqErr.message, Code: codeInvalidRequest, Fields: reqErr.fields}
	}

	switch {
	case errors.Is(err, staff.ErrStaffNotFound):
		return http.StatusNotFound, errorResponse{Detail: "Staff not found", Code: codeNotFound}
	case errors.Is(err, shift.ErrShiftNotFound):
		return http.StatusNotFound, errorResponse{Detail: "Shift record not found", Code: codeNotFound}
	case errors.Is(err, shift.ErrDuplicateShift):
		return http.StatusBadRequest, errorResponse{Detail: err.Error(), Code: codeDuplicateShift}
	case errors.Is(err, schedule.ErrNoActiveStaff):
		return http.StatusBadRequest, errorResponse{Detail: "No active staff available for scheduling.", Code: codeNoActiveStaff}
	case errors.Is(err, staff.ErrInvalidID),
		errors.Is(err, staff.ErrInvalidName),
		errors.Is(err, staff.ErrInvalidAge),
		errors.Is(err, staff.ErrInvalidPosition),
		errors.Is(err, shift.ErrInvalidID),
		errors.Is(err, shift.ErrInvalidStaffID),
		errors.Is(err, shift.ErrInvalidDate),
		errors.Is(err, shift.ErrInvalidType),
		errors.Is(err, schedule.ErrInvalidShiftType),
		errors.Is(err, schedule.ErrRangeTooLarge):
		return http.StatusBadRequest, errorResponse{Detail: err.Error(), Code: codeValidation}
	case errors.Is(err, export.ErrNoData):
		return http.StatusNotFound, errorResponse{Detail: "No shift data found to export", Code: codeNoData}
	case errors.Is(err, export.ErrExport):
		return http.StatusInternalServerError, errorResponse{Detail: "Failed to generate export file", Code: codeExportFailed}
	default:
		return http.StatusInternalServerError, errorResponse{Detail: "Internal server error", Code: codeInternal}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, fallback *zap.Logger, err error) {
	status, body := toErrorResponse(err)

	logger := logging.FromContext(r.Context(), fallback)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.Int("status", status), zap.String("code", body.Code), zap.Error(err))
	}

	writeJSON(w, status, body)
}
