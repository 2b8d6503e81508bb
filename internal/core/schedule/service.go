package schedule

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
)

// MaxRangeDays は 1 回の自動スケジュールで扱える最大日数です。
const MaxRangeDays = 366

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// ActiveStaffLister は有効なスタッフを ID 昇順で返します。
type ActiveStaffLister interface {
	ListActive(ctx context.Context) ([]*staff.Staff, error)
}

// ShiftReplacer は期間内のシフトを入れ替えるための永続化操作です。
type ShiftReplacer interface {
	DeleteInRange(ctx context.Context, start, end time.Time) (int64, error)
	CreateBatch(ctx context.Context, shifts []*shift.Shift) (int64, error)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// UseCase は自動スケジュールの公開インターフェースです。
type UseCase interface {
	AutoSchedule(ctx context.Context, in AutoScheduleInput) (*AutoScheduleResult, error)
}

// Service はラウンドロビン方式の自動スケジュールを提供します。
type Service struct {
	staff  ActiveStaffLister
	shifts ShiftReplacer
	clock  Clock
	tx     TransactionManager
}

// NewService は Service を生成します。
func NewService(staffLister ActiveStaffLister, shifts ShiftReplacer, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{staff: staffLister, shifts: shifts, clock: clock, tx: tx}
}

// AutoScheduleInput は自動スケジュールの入力です。StartDate と EndDate は両端を含みます。
type AutoScheduleInput struct {
	StartDate  time.Time
	EndDate    time.Time
	ShiftTypes []string
}

// AutoScheduleResult は自動スケジュールの結果です。
type AutoScheduleResult struct {
	Created   int
	Replaced  int64
	StartDate time.Time
	EndDate   time.Time
}

// Message は利用者向けの結果メッセージを返します。
func (r *AutoScheduleResult) Message() string {
	return fmt.Sprintf("Successfully generated %d shifts from %s to %s.",
		r.Created, r.StartDate.Format(shift.DateLayout), r.EndDate.Format(shift.DateLayout))
}

// AutoSchedule は期間内の既存シフトをすべて削除し、有効なスタッフをラウンドロビンで割り当て直します。
// 削除と登録は 1 つのトランザクションで行われ、途中で失敗した場合はどちらも反映されません。
// StartDate が EndDate より後の場合は何も削除せず 0 件を返します。
func (s *Service) AutoSchedule(ctx context.Context, in AutoScheduleInput) (*AutoScheduleResult, error) {
	shiftTypes, err := validateShiftTypes(in.ShiftTypes)
	if err != nil {
		return nil, err
	}

	start := shift.NormalizeDate(in.StartDate)
	end := shift.NormalizeDate(in.EndDate)
	if days := CountDays(start, end); days > MaxRangeDays {
		return nil, fmt.Errorf("%d days: %w", days, ErrRangeTooLarge)
	}
	dates := EnumerateDates(start, end)

	result := &AutoScheduleResult{StartDate: start, EndDate: end}
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		members, err := s.staff.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("schedule: list active staff: %w", err)
		}
		if len(members) == 0 {
			return ErrNoActiveStaff
		}

		if len(dates) == 0 {
			return nil
		}

		replaced, err := s.shifts.DeleteInRange(txCtx, start, end)
		if err != nil {
			return fmt.Errorf("schedule: delete shifts in range: %w", err)
		}
		result.Replaced = replaced

		planned := Plan(staffIDs(members), dates, shiftTypes)
		if len(planned) == 0 {
			return nil
		}

		now := s.clock.Now()
		for _, p := range planned {
			p.CreatedAt = now
			p.UpdatedAt = now
		}

		created, err := s.shifts.CreateBatch(txCtx, planned)
		if err != nil {
			return fmt.Errorf("schedule: create shifts: %w", err)
		}
		result.Created = int(created)
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func staffIDs(members []*staff.Staff) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	slices.Sort(ids)
	return ids
}

// validateShiftTypes は空白のみのラベルを拒否し、それ以外は受け取ったまま返します。
func validateShiftTypes(raw []string) ([]string, error) {
	for i, t := range raw {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("shift_types[%d]: %w", i, ErrInvalidShiftType)
		}
	}
	return slices.Clone(raw), nil
}
