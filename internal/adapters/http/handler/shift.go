package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// ShiftHandler はシフト API の HTTP 実装です。
type ShiftHandler struct {
	svc    shift.UseCase
	logger *zap.Logger
}

// NewShiftHandler は ShiftHandler を生成します。
func NewShiftHandler(svc shift.UseCase, logger *zap.Logger) *ShiftHandler {
	return &ShiftHandler{svc: svc, logger: logger}
}

// Create は重複を確認した上でシフトを登録します。
func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	date, err := parseDate(req.ShiftDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.svc.CreateShift(r.Context(), shift.CreateShiftInput{
		StaffID: req.StaffID,
		Date:    date,
		Type:    req.ShiftType,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftResponse(created))
}

// List は全シフトをスタッフ名付きで返します。
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListShifts(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]shiftResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toShiftResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get はシフトを 1 件返します。
func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	found, err := h.svc.GetShift(r.Context(), shift.GetShiftInput{ID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftResponse(found))
}

// Update はシフトを上書きします。
func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req shiftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	date, err := parseDate(req.ShiftDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	updated, err := h.svc.UpdateShift(r.Context(), shift.UpdateShiftInput{
		ID:      id,
		StaffID: req.StaffID,
		Date:    date,
		Type:    req.ShiftType,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toShiftResponse(updated))
}

// Delete はシフトを削除します。
func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.DeleteShift(r.Context(), shift.DeleteShiftInput{ID: id}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
