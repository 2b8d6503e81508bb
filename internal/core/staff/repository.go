package staff

import (
	"context"
	"time"
)

// Repository はスタッフ永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, s *Staff) (*Staff, error)
	Update(ctx context.Context, s *Staff) (*Staff, error)
	Deactivate(ctx context.Context, id int64, at time.Time) error
	FindByID(ctx context.Context, id int64) (*Staff, error)
	// ListActive は有効なスタッフを ID 昇順で返します。
	ListActive(ctx context.Context) ([]*Staff, error)
	// ListAll は無効化済みを含む全スタッフを ID 昇順で返します。
	ListAll(ctx context.Context) ([]*Staff, error)
}
