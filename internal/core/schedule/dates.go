package schedule

import (
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

const secondsPerDay = 24 * 60 * 60

// CountDays は start から end までの日数を両端を含めて返します。
// start が end より後の場合は 0 です。日付を列挙せずに計算します。
func CountDays(start, end time.Time) int64 {
	start = shift.NormalizeDate(start)
	end = shift.NormalizeDate(end)
	if start.After(end) {
		return 0
	}
	return (end.Unix()-start.Unix())/secondsPerDay + 1
}

// EnumerateDates は start から end までの日付を昇順で返します(両端を含む)。
// start が end より後の場合は空です。
func EnumerateDates(start, end time.Time) []time.Time {
	days := CountDays(start, end)
	if days == 0 {
		return nil
	}

	start = shift.NormalizeDate(start)
	end = shift.NormalizeDate(end)
	dates := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
