package shift

import (
	"context"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

// Repository はシフト永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, s *Shift) (*Shift, error)
	Update(ctx context.Context, s *Shift) (*Shift, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Shift, error)
	// FindByStaffAndDate は (staff_id, shift_date) が完全一致するシフトを返します。
	FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*Shift, error)
	// List は全シフトを ID 昇順で返します。
	List(ctx context.Context) ([]*Shift, error)
	// DeleteInRange は start 以上 end 以下の日付を持つシフトをスタッフに関係なく削除します。
	DeleteInRange(ctx context.Context, start, end time.Time) (int64, error)
	// CreateBatch は複数のシフトをまとめて登録し、登録件数を返します。
	CreateBatch(ctx context.Context, shifts []*Shift) (int64, error)
}

// StaffDirectory はスタッフ名の解決に使う参照専用の抽象です。
type StaffDirectory interface {
	FindByID(ctx context.Context, id int64) (*staff.Staff, error)
	ListAll(ctx context.Context) ([]*staff.Staff, error)
}
