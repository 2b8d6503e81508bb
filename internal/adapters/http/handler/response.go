package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

type staffResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Position string `json:"position"`
	IsActive bool   `json:"is_active"`
}

type shiftResponse struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staff_id"`
	ShiftDate string `json:"shift_date"`
	ShiftType string `json:"shift_type"`
	StaffName string `json:"staff_name"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func toStaffResponse(s *staff.Staff) staffResponse {
	return staffResponse{
		ID:       s.ID,
		Name:     s.Name,
		Age:      s.Age,
		Position: s.Position,
		IsActive: s.IsActive,
	}
}

func toShiftResponse(v *shift.View) shiftResponse {
	return shiftResponse{
		ID:        v.ID,
		StaffID:   v.StaffID,
		ShiftDate: v.Date.Format(shift.DateLayout),
		ShiftType: v.Type,
		StaffName: v.StaffName,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
