package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

// StaffHandler はスタッフ API の HTTP 実装です。
type StaffHandler struct {
	svc    staff.UseCase
	logger *zap.Logger
}

// NewStaffHandler は StaffHandler を生成します。
func NewStaffHandler(svc staff.UseCase, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{svc: svc, logger: logger}
}

// Create はスタッフを登録します。
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.svc.CreateStaff(r.Context(), staff.CreateStaffInput{
		Name:     req.Name,
		Age:      req.Age,
		Position: req.Position,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStaffResponse(created))
}

// List は有効なスタッフを返します。
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListStaff(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toStaffResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get はスタッフを 1 件返します。
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	found, err := h.svc.GetStaff(r.Context(), staff.GetStaffInput{ID: id})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(found))
}

// Update はスタッフ情報を上書きします。
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	updated, err := h.svc.UpdateStaff(r.Context(), staff.UpdateStaffInput{
		ID:       id,
		Name:     req.Name,
		Age:      req.Age,
		Position: req.Position,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toStaffResponse(updated))
}

// Delete はスタッフを論理削除します。
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.svc.DeleteStaff(r.Context(), staff.DeleteStaffInput{ID: id}); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
