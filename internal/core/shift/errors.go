package shift

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrShiftNotFound はシフトが存在しない場合に返却されます。
	ErrShiftNotFound = errors.New("shift: not found")
	// ErrDuplicateShift は同一スタッフ・同一日のシフトが既に存在する場合に返却されます。
	ErrDuplicateShift = errors.New("shift: duplicate shift")
	// ErrInvalidID はIDが不正な場合に返却されます。
	ErrInvalidID = errors.New("shift: invalid id")
	// ErrInvalidStaffID はスタッフIDが不正な場合に返却されます。
	ErrInvalidStaffID = errors.New("shift: invalid staff id")
	// ErrInvalidDate は日付を保存できない場合に返却されます。
	ErrInvalidDate = errors.New("shift: invalid date")
	// ErrInvalidType はシフト種別が空の場合に返却されます。
	ErrInvalidType = errors.New("shift: invalid shift type")
)

// DuplicateShiftError は重複したシフトの登録を表します。
// メッセージはそのまま利用者へ表示できる形式です。
type DuplicateShiftError struct {
	StaffName string
	Date      time.Time
}

func (e *DuplicateShiftError) Error() string {
	return fmt.Sprintf("Conflict: %s already has a shift scheduled on %s.", e.StaffName, e.Date.Format(DateLayout))
}

// Is により errors.Is(err, ErrDuplicateShift) が成立します。
func (e *DuplicateShiftError) Is(target error) bool {
	return target == ErrDuplicateShift
}
