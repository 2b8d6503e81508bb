package staff

import "time"

const (
	// MinAge はスタッフとして登録できる最小年齢です。
	MinAge = 18
	// UnknownName は参照先のスタッフが見つからない場合の表示名です。
	UnknownName = "Unknown"
)

// Staff はスタッフエンティティです。削除は IsActive を false にする論理削除で表現します。
type Staff struct {
	ID        int64
	Name      string
	Age       int
	Position  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
