package schedule

// rotation はスタッフ ID の循環キューです。先頭を取り出したら末尾へ戻します。
// 呼び出しごとに作り直し、呼び出しをまたいで状態を持ちません。
type rotation struct {
	members []int64
	head    int
}

func newRotation(ids []int64) *rotation {
	members := make([]int64, len(ids))
	copy(members, ids)
	return &rotation{members: members}
}

// next は先頭のスタッフを返し、そのスタッフをキューの末尾へ回します。
func (r *rotation) next() int64 {
	id := r.members[r.head]
	r.head = (r.head + 1) % len(r.members)
	return id
}
