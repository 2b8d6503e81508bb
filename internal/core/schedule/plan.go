package schedule

import (
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// Plan は日付とシフト種別の組ごとにスタッフをラウンドロビンで割り当てます。
// 日付は与えられた順、シフト種別は呼び出し元の順序のまま(重複も含めて)処理し、
// 1 組ごとにキューを 1 つ進めます。スタッフ数がシフト種別数より少ない場合、
// 同じスタッフが同じ日に複数の種別を受け持つことがあります。
func Plan(staffIDs []int64, dates []time.Time, shiftTypes []string) []*shift.Shift {
	if len(staffIDs) == 0 || len(dates) == 0 || len(shiftTypes) == 0 {
		return nil
	}

	queue := newRotation(staffIDs)
	planned := make([]*shift.Shift, 0, len(dates)*len(shiftTypes))
	for _, day := range dates {
		for _, shiftType := range shiftTypes {
			planned = append(planned, &shift.Shift{
				StaffID: queue.next(),
				Date:    day,
				Type:    shiftType,
			})
		}
	}
	return planned
}
