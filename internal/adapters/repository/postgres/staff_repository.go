package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/shift-scheduler/internal/core/staff"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

const (
	checkViolationCode        = "23514"
	notNullViolation          = "23502"
	stringDataRightTruncation = "22001"

	staffAgeCheckConstraint  = "staff_age_check"
	shiftTypeCheckConstraint = "shifts_shift_type_check"
)

const staffColumns = `id, name, age, position, is_active, created_at, updated_at`

// StaffRepository は PostgreSQL を利用したスタッフ永続化の実装です。
type StaffRepository struct {
	pool pgdb.Queryer
}

// NewStaffRepository は StaffRepository を生成します。
func NewStaffRepository(pool pgdb.Queryer) *StaffRepository {
	return &StaffRepository{pool: pool}
}

// Create はスタッフを新規作成します。
func (r *StaffRepository) Create(ctx context.Context, s *staff.Staff) (*staff.Staff, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO staff (name, age, position, is_active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+staffColumns,
		s.Name,
		s.Age,
		s.Position,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
	)

	created, err := scanStaff(row)
	if err != nil {
		return nil, translateStaffPgError(err)
	}
	return created, nil
}

// Update はスタッフ情報を上書きします。
func (r *StaffRepository) Update(ctx context.Context, s *staff.Staff) (*staff.Staff, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE staff
           SET name = $1,
               age = $2,
               position = $3,
               is_active = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING `+staffColumns,
		s.Name,
		s.Age,
		s.Position,
		s.IsActive,
		s.UpdatedAt,
		s.ID,
	)

	updated, err := scanStaff(row)
	if err != nil {
		return nil, translateStaffPgError(err)
	}
	return updated, nil
}

// Deactivate はスタッフを論理削除します。
func (r *StaffRepository) Deactivate(ctx context.Context, id int64, at time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `UPDATE staff SET is_active = FALSE, updated_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return translateStaffPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}

// FindByID は ID でスタッフを取得します。無効化済みのスタッフも返します。
func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*staff.Staff, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)

	found, err := scanStaff(row)
	if err != nil {
		return nil, translateStaffPgError(err)
	}
	return found, nil
}

// ListActive は有効なスタッフを ID 昇順で返します。
func (r *StaffRepository) ListActive(ctx context.Context) ([]*staff.Staff, error) {
	return r.list(ctx, `SELECT `+staffColumns+` FROM staff WHERE is_active = TRUE ORDER BY id ASC`)
}

// ListAll は全スタッフを ID 昇順で返します。
func (r *StaffRepository) ListAll(ctx context.Context) ([]*staff.Staff, error) {
	return r.list(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY id ASC`)
}

func (r *StaffRepository) list(ctx context.Context, query string) ([]*staff.Staff, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, translateStaffPgError(err)
	}
	defer rows.Close()

	members := make([]*staff.Staff, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, translateStaffPgError(err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStaffPgError(err)
	}
	return members, nil
}

func scanStaff(row pgx.Row) (*staff.Staff, error) {
	var s staff.Staff
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Age,
		&s.Position,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, staff.ErrStaffNotFound
		}
		return nil, err
	}
	return &s, nil
}

func translateStaffPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return staff.ErrStaffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			if pgErr.ConstraintName == staffAgeCheckConstraint {
				return staff.ErrInvalidAge
			}
		case notNullViolation:
			switch pgErr.ColumnName {
			case "name":
				return staff.ErrInvalidName
			case "position":
				return staff.ErrInvalidPosition
			}
		case stringDataRightTruncation:
			if pgErr.ColumnName == "position" {
				return fmt.Errorf("%w: %s", staff.ErrInvalidPosition, pgErr.Message)
			}
			return fmt.Errorf("%w: %s", staff.ErrInvalidName, pgErr.Message)
		}
	}

	return err
}
