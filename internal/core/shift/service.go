package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service はシフト台帳に関するユースケースをまとめます。
type Service struct {
	repo      Repository
	directory StaffDirectory
	clock     Clock
	tx        TransactionManager
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	CreateShift(ctx context.Context, in CreateShiftInput) (*View, error)
	GetShift(ctx context.Context, in GetShiftInput) (*View, error)
	ListShifts(ctx context.Context) ([]*View, error)
	UpdateShift(ctx context.Context, in UpdateShiftInput) (*View, error)
	DeleteShift(ctx context.Context, in DeleteShiftInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, directory StaffDirectory, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, directory: directory, clock: clock, tx: tx}
}

// CreateShiftInput はシフト登録時の入力です。
type CreateShiftInput struct {
	StaffID int64
	Date    time.Time
	Type    string
}

// UpdateShiftInput はシフト更新時の入力です。全項目を上書きします。
type UpdateShiftInput struct {
	ID      int64
	StaffID int64
	Date    time.Time
	Type    string
}

// GetShiftInput はシフト取得時の入力です。
type GetShiftInput struct {
	ID int64
}

// DeleteShiftInput はシフト削除時の入力です。
type DeleteShiftInput struct {
	ID int64
}

// CreateShift は同一スタッフ・同一日のシフトが無いことを確認してから登録します。
func (s *Service) CreateShift(ctx context.Context, in CreateShiftInput) (*View, error) {
	fields, err := normalizeFields(in.StaffID, in.Date, in.Type)
	if err != nil {
		return nil, err
	}

	var created *View
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureNoConflict(txCtx, fields.StaffID, fields.Date); err != nil {
			return err
		}

		now := s.clock.Now()
		fields.CreatedAt = now
		fields.UpdatedAt = now

		result, err := s.repo.Create(txCtx, &fields)
		if err != nil {
			return err
		}

		name, err := s.staffName(txCtx, result.StaffID)
		if err != nil {
			return err
		}
		created = &View{Shift: *result, StaffName: name}
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateShift はシフトを上書きします。登録時と異なり重複チェックは行いません。
func (s *Service) UpdateShift(ctx context.Context, in UpdateShiftInput) (*View, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	fields, err := normalizeFields(in.StaffID, in.Date, in.Type)
	if err != nil {
		return nil, err
	}

	var updated *View
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.StaffID = fields.StaffID
		existing.Date = fields.Date
		existing.Type = fields.Type
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		name, err := s.staffName(txCtx, result.StaffID)
		if err != nil {
			return err
		}
		updated = &View{Shift: *result, StaffName: name}
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteShift はシフトを物理削除します。
func (s *Service) DeleteShift(ctx context.Context, in DeleteShiftInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetShift はシフトをスタッフ名付きで取得します。
func (s *Service) GetShift(ctx context.Context, in GetShiftInput) (*View, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var found *View
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		name, err := s.staffName(txCtx, result.StaffID)
		if err != nil {
			return err
		}
		found = &View{Shift: *result, StaffName: name}
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListShifts は全シフトを返します。スタッフ名は無効化済みスタッフも含めて解決し、
// 解決できない場合は staff.UnknownName になります。
func (s *Service) ListShifts(ctx context.Context) ([]*View, error) {
	var views []*View
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		shifts, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}

		names, err := s.nameIndex(txCtx)
		if err != nil {
			return err
		}

		views = make([]*View, 0, len(shifts))
		for _, sh := range shifts {
			views = append(views, &View{Shift: *sh, StaffName: staff.DisplayName(names, sh.StaffID)})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return views, nil
}

func (s *Service) ensureNoConflict(ctx context.Context, staffID int64, date time.Time) error {
	existing, err := s.repo.FindByStaffAndDate(ctx, staffID, date)
	if err != nil && !errors.Is(err, ErrShiftNotFound) {
		return err
	}
	if existing == nil {
		return nil
	}

	name, err := s.staffName(ctx, staffID)
	if err != nil {
		return err
	}
	return &DuplicateShiftError{StaffName: name, Date: date}
}

func (s *Service) staffName(ctx context.Context, staffID int64) (string, error) {
	if s.directory == nil {
		return staff.UnknownName, nil
	}
	member, err := s.directory.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.UnknownName, nil
		}
		return "", err
	}
	return member.Name, nil
}

func (s *Service) nameIndex(ctx context.Context) (map[int64]string, error) {
	if s.directory == nil {
		return map[int64]string{}, nil
	}
	members, err := s.directory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return staff.NameIndex(members), nil
}

func normalizeFields(staffID int64, date time.Time, rawType string) (Shift, error) {
	if staffID <= 0 {
		return Shift{}, ErrInvalidStaffID
	}
	if strings.TrimSpace(rawType) == "" {
		return Shift{}, ErrInvalidType
	}
	return Shift{StaffID: staffID, Date: NormalizeDate(date), Type: rawType}, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	return nil
}
