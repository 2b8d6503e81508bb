package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// requestError はリクエストの形式不備を表します。
type requestError struct {
	message string
	fields  map[string]string
}

func (e *requestError) Error() string {
	return e.message
}

func decodeJSON(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return &requestError{message: fmt.Sprintf("invalid request body: %v", err)}
	}

	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &requestError{message: "validation failed"}
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = validationMessage(fe)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+fields[name])
	}
	return &requestError{message: "validation failed: " + strings.Join(parts, "; "), fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	}
	return "is invalid"
}

func pathID(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &requestError{message: fmt.Sprintf("invalid %s %q", key, raw), fields: map[string]string{key: "must be a positive integer"}}
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(shift.DateLayout, raw)
	if err != nil {
		return time.Time{}, &requestError{message: fmt.Sprintf("invalid date %q", raw)}
	}
	return d, nil
}

type staffRequest struct {
	Name     string `json:"name" validate:"required"`
	Age      int    `json:"age" validate:"gte=18"`
	Position string `json:"position" validate:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type shiftRequest struct {
	StaffID   int64  `json:"staff_id" validate:"gt=0"`
	ShiftDate string `json:"shift_date" validate:"required,datetime=2006-01-02"`
	ShiftType string `json:"shift_type" validate:"required"`
}

type autoScheduleRequest struct {
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	ShiftTypes []string `json:"shift_types" validate:"required,dive,required"`
}
