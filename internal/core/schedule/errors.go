package schedule

import "errors"

var (
	// ErrNoActiveStaff は有効なスタッフが 1 人もいない場合に返却されます。
	ErrNoActiveStaff = errors.New("schedule: no active staff available")
	// ErrInvalidShiftType はシフト種別に空文字列が含まれる場合に返却されます。
	ErrInvalidShiftType = errors.New("schedule: invalid shift type")
	// ErrRangeTooLarge は対象期間が MaxRangeDays を超える場合に返却されます。
	ErrRangeTooLarge = errors.New("schedule: date range too large")
)
