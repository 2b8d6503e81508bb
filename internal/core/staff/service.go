package staff

import (
	"context"
	"fmt"
	"strings"
	"time"
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

// Service はスタッフ名簿に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase はスタッフユースケースの公開インターフェースです。
type UseCase interface {
	CreateStaff(ctx context.Context, in CreateStaffInput) (*Staff, error)
	GetStaff(ctx context.Context, in GetStaffInput) (*Staff, error)
	ListStaff(ctx context.Context) ([]*Staff, error)
	UpdateStaff(ctx context.Context, in UpdateStaffInput) (*Staff, error)
	DeleteStaff(ctx context.Context, in DeleteStaffInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateStaffInput はスタッフ登録時の入力です。
type CreateStaffInput struct {
	Name     string
	Age      int
	Position string
}

// UpdateStaffInput はスタッフ更新時の入力です。IsActive が nil の場合は現在の状態を維持します。
type UpdateStaffInput struct {
	ID       int64
	Name     string
	Age      int
	Position string
	IsActive *bool
}

// GetStaffInput はスタッフ取得時の入力です。
type GetStaffInput struct {
	ID int64
}

// DeleteStaffInput はスタッフ削除時の入力です。
type DeleteStaffInput struct {
	ID int64
}

// CreateStaff は新しいスタッフを有効状態で登録します。
func (s *Service) CreateStaff(ctx context.Context, in CreateStaffInput) (*Staff, error) {
	name, position, err := normalizeProfile(in.Name, in.Age, in.Position)
	if err != nil {
		return nil, err
	}

	var created *Staff
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Staff{
			Name:      name,
			Age:       in.Age,
			Position:  position,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetStaff はスタッフを取得します。無効化済みのスタッフも返します。
func (s *Service) GetStaff(ctx context.Context, in GetStaffInput) (*Staff, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var found *Staff
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// ListStaff は有効なスタッフを ID 昇順で返します。
func (s *Service) ListStaff(ctx context.Context) ([]*Staff, error) {
	var members []*Staff
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListActive(txCtx)
		if err != nil {
			return err
		}
		members = result
		return nil
	}); err != nil {
		return nil, err
	}

	if members == nil {
		members = []*Staff{}
	}
	return members, nil
}

// UpdateStaff はスタッフ情報を上書きします。
func (s *Service) UpdateStaff(ctx context.Context, in UpdateStaffInput) (*Staff, error) {
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	name, position, err := normalizeProfile(in.Name, in.Age, in.Position)
	if err != nil {
		return nil, err
	}

	var updated *Staff
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.Name = name
		existing.Age = in.Age
		existing.Position = position
		if in.IsActive != nil {
			existing.IsActive = *in.IsActive
		}
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteStaff はスタッフを論理削除します。既存のシフトは残ります。
func (s *Service) DeleteStaff(ctx context.Context, in DeleteStaffInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Deactivate(txCtx, in.ID, s.clock.Now())
	})
}

// DisplayName は ID に対応する表示名を返します。解決できない場合は UnknownName です。
func DisplayName(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return UnknownName
}

// NameIndex はスタッフ一覧から ID と名前の対応表を作ります。
func NameIndex(members []*Staff) map[int64]string {
	names := make(map[int64]string, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		names[m.ID] = m.Name
	}
	return names
}

func normalizeProfile(rawName string, age int, rawPosition string) (string, string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", "", ErrInvalidName
	}
	if age < MinAge {
		return "", "", ErrInvalidAge
	}
	position := strings.TrimSpace(rawPosition)
	if position == "" {
		return "", "", ErrInvalidPosition
	}
	return name, position, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("id %d: %w", id, ErrInvalidID)
	}
	return nil
}
