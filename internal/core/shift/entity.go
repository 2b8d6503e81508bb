package shift

import "time"

// DateLayout はシフト日付の表示・入出力形式です。
const DateLayout = "2006-01-02"

// Shift はスタッフ 1 名に対する 1 日分のシフト割り当てです。
// StaffID は弱参照であり、参照先が存在しなくても構いません。
type Shift struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View は表示用にスタッフ名を解決したシフトです。
type View struct {
	Shift
	StaffName string
}

// NormalizeDate は時刻成分を切り捨て UTC の日付に揃えます。
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
